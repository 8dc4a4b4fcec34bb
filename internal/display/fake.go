package display

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpString OpKind = iota
	OpRect
	OpLine
	OpPoint
	OpClear
	OpBackground
)

// Op is one recorded draw call.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 int
	Scale          int
	Width          int
	Text           string
	Color          Color
}

// Recorder is a test double that records every draw call.
type Recorder struct {
	Ops []Op
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// DrawString records a text draw.
func (r *Recorder) DrawString(x, y, scale int, s string, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpString, X0: x, Y0: y, Scale: scale, Text: s, Color: c})
}

// FillRect records a rectangle fill.
func (r *Recorder) FillRect(x0, y0, x1, y1 int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c})
}

// DrawLine records a line draw.
func (r *Recorder) DrawLine(x0, y0, x1, y1, width int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

// DrawPoint records a point draw.
func (r *Recorder) DrawPoint(x, y int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpPoint, X0: x, Y0: y, Color: c})
}

// Clear records a screen clear.
func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

// SetBackground records the background color.
func (r *Recorder) SetBackground(c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpBackground, Color: c})
}

// Reset discards recorded ops.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Strings returns all non-black text draws in order (black draws are
// erases of previous values).
func (r *Recorder) Strings() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpString && op.Color != Black {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasString reports whether a non-black draw of s was recorded.
func (r *Recorder) HasString(s string) bool {
	for _, t := range r.Strings() {
		if t == s {
			return true
		}
	}
	return false
}
