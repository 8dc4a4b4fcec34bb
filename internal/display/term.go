package display

import (
	"io"
	"strings"
)

// ANSI escape codes for the terminal panel.
const (
	ansiHome    = "\033[H"
	ansiClear   = "\033[2J\033[H"
	ansiHideCur = "\033[?25l"
	ansiShowCur = "\033[?25h"
)

// Font cell size at scale 1.
const (
	cellW = 6
	cellH = 8
)

// Term renders the 96x96 panel as a character grid on a terminal. It
// stands in for the OLED driver during development and simulation:
// draw calls mutate an in-memory cell buffer and Flush repaints the
// terminal in place.
type Term struct {
	w     io.Writer
	cells [Height / cellH][Width / cellW]rune
	dirty bool
}

// NewTerm creates a terminal panel writing to w.
func NewTerm(w io.Writer) *Term {
	t := &Term{w: w}
	t.reset()
	io.WriteString(w, ansiClear+ansiHideCur)
	return t
}

func (t *Term) reset() {
	for y := range t.cells {
		for x := range t.cells[y] {
			t.cells[y][x] = ' '
		}
	}
	t.dirty = true
}

func (t *Term) set(px, py int, r rune) {
	cx, cy := px/cellW, py/cellH
	if cy < 0 || cy >= len(t.cells) || cx < 0 || cx >= len(t.cells[0]) {
		return
	}
	t.cells[cy][cx] = r
	t.dirty = true
}

// DrawString places the text into the grid. Scale widens the glyph
// advance the same way the panel font does.
func (t *Term) DrawString(x, y, scale int, s string, c Color) {
	erase := c == Black
	for i, ch := range s {
		if erase {
			t.set(x+i*cellW*scale, y, ' ')
		} else {
			t.set(x+i*cellW*scale, y, ch)
		}
	}
}

// FillRect fills the covered cells; black fills erase.
func (t *Term) FillRect(x0, y0, x1, y1 int, c Color) {
	r := '█'
	if c == Black {
		r = ' '
	}
	for y := y0; y <= y1; y += cellH {
		for x := x0; x <= x1; x += cellW {
			t.set(x, y, r)
		}
	}
}

// DrawLine plots the line with a shallow Bresenham walk.
func (t *Term) DrawLine(x0, y0, x1, y1, width int, c Color) {
	steps := abs(x1-x0) + abs(y1-y0)
	if steps == 0 {
		t.DrawPoint(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		t.DrawPoint(x, y, c)
	}
}

// DrawPoint sets one cell.
func (t *Term) DrawPoint(x, y int, c Color) {
	r := '·'
	if c == Black {
		r = ' '
	}
	t.set(x, y, r)
}

// Clear wipes the grid.
func (t *Term) Clear() {
	t.reset()
}

// SetBackground is a no-op on the terminal panel.
func (t *Term) SetBackground(c Color) {}

// Flush repaints the terminal if anything changed since the last call.
func (t *Term) Flush() {
	if !t.dirty {
		return
	}
	var b strings.Builder
	b.WriteString(ansiHome)
	b.WriteString("+" + strings.Repeat("-", len(t.cells[0])) + "+\r\n")
	for y := range t.cells {
		b.WriteString("|")
		b.WriteString(string(t.cells[y][:]))
		b.WriteString("|\r\n")
	}
	b.WriteString("+" + strings.Repeat("-", len(t.cells[0])) + "+\r\n")
	io.WriteString(t.w, b.String())
	t.dirty = false
}

// Restore re-enables the cursor; call on shutdown.
func (t *Term) Restore() {
	io.WriteString(t.w, ansiShowCur)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
