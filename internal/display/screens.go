package display

import (
	"fmt"

	"github.com/sweeney/stepwatch/internal/clock"
)

// MenuItems are the main menu rows, in cursor order.
var MenuItems = []string{"PedometerGraph", "12H/24H", "Set Time", "Set Date", "Exit"}

// Renderer draws the watch screens, suppressing redundant draws via a
// DiffCache. Screens that are repainted wholesale (menu layouts) call
// Clear and then Invalidate so diffed fields repaint too.
type Renderer struct {
	d     Display
	cache *DiffCache
}

// NewRenderer creates a Renderer over the given display.
func NewRenderer(d Display) *Renderer {
	return &Renderer{d: d, cache: NewDiffCache()}
}

// Invalidate forces the next render of every field.
func (r *Renderer) Invalidate() {
	r.cache.Invalidate()
}

// Clear wipes the screen and invalidates the cache.
func (r *Renderer) Clear() {
	r.d.Clear()
	r.cache.Invalidate()
}

// swapText erases the previous value (drawn over in black) and draws
// the new one, but only when the field changed.
func (r *Renderer) swapText(f Field, x, y, scale int, v string, c Color) {
	prev, changed := r.cache.Swap(f, v)
	if !changed {
		return
	}
	if prev != "" {
		r.d.DrawString(x, y, scale, prev, Black)
	}
	if v != "" {
		r.d.DrawString(x, y, scale, v, c)
	}
}

// ClockFace renders the home screen: time digits, AM/PM marker, date,
// pace number, and the animated foot icon.
func (r *Renderer) ClockFace(t clock.Time, use12h bool, pace float64, blink bool) {
	hours := t.Hours
	pm := false
	if use12h {
		hours, pm = t.Clock12()
	}

	// Fold the format flag into the hour value so a 12h/24h switch
	// repaints the digits.
	hourVal := fmt.Sprintf("%02d:%v", hours, use12h)
	if _, changed := r.cache.Swap(FieldHours, hourVal); changed {
		r.d.FillRect(8, 45, 32, 61, Black)
		r.d.DrawString(8, 45, 2, fmt.Sprintf("%02d", hours), White)
		r.d.DrawString(32, 45, 2, ":", White)
	}

	if _, changed := r.cache.Swap(FieldMinutes, fmt.Sprintf("%02d", t.Minutes)); changed {
		r.d.FillRect(40, 45, 64, 61, Black)
		r.d.DrawString(40, 45, 2, fmt.Sprintf("%02d", t.Minutes), White)
		r.d.DrawString(64, 45, 2, ":", White)
	}

	if _, changed := r.cache.Swap(FieldSeconds, fmt.Sprintf("%02d", t.Seconds)); changed {
		r.d.FillRect(72, 45, 96, 61, Black)
		r.d.DrawString(72, 45, 2, fmt.Sprintf("%02d", t.Seconds), White)
	}

	marker := ""
	if use12h {
		marker = "AM"
		if pm {
			marker = "PM"
		}
	}
	if _, changed := r.cache.Swap(FieldAMPM, marker); changed {
		r.d.FillRect(0, 85, 20, 93, Black)
		if marker != "" {
			r.d.DrawString(0, 85, 1, marker, White)
		}
	}

	if _, changed := r.cache.Swap(FieldDate, fmt.Sprintf("%02d/%02d", t.Day, t.Month)); changed {
		r.d.FillRect(65, 85, 95, 93, Black)
		r.d.DrawString(65, 85, 1, fmt.Sprintf("%02d", t.Day), White)
		r.d.DrawString(77, 85, 1, "/", White)
		r.d.DrawString(83, 85, 1, fmt.Sprintf("%02d", t.Month), White)
	}

	paceText := ""
	if pace > 0.5 {
		paceText = fmt.Sprintf("%d", int(pace+0.5))
	}
	r.swapText(FieldPace, 25, 2, 1, paceText, White)

	iconVal := ""
	if pace > 0 {
		iconVal = fmt.Sprintf("foot:%v", blink)
	}
	if _, changed := r.cache.Swap(FieldIcon, iconVal); changed {
		r.d.FillRect(0, 0, 15, 15, Black)
		if iconVal != "" {
			frame := FootIcon1
			if !blink {
				frame = FootIcon2
			}
			Blit(r.d, 0, 0, frame, White)
		}
	}
}

// MainMenu repaints the whole menu screen: items, cursor, and the
// AM/PM marker for 12-hour mode. The clock strip is drawn separately
// by MenuClock so it can tick without repainting the list.
func (r *Renderer) MainMenu(selection int, t clock.Time, use12h bool) {
	r.Clear()
	for i, item := range MenuItems {
		y := 20 + i*12
		r.d.DrawString(10, y, 1, item, White)
		if i == selection {
			r.d.DrawString(4, y, 1, ">", White)
		}
	}
	if use12h {
		_, pm := t.Clock12()
		marker := "AM"
		if pm {
			marker = "PM"
		}
		r.d.DrawString(0, 80, 1, marker, White)
	}
	r.MenuClock(t, use12h)
}

// MenuClock diff-draws the running time strip at the bottom of the
// main menu.
func (r *Renderer) MenuClock(t clock.Time, use12h bool) {
	hours := t.Hours
	if use12h {
		hours, _ = t.Clock12()
	}
	v := fmt.Sprintf("%02d:%02d:%02d", hours, t.Minutes, t.Seconds)
	if _, changed := r.cache.Swap(FieldMenuClock, v); changed {
		r.d.FillRect(48, 80, 115, 88, Black)
		r.d.DrawString(48, 80, 1, v, White)
	}
}

// FormatMenu repaints the 12h/24h chooser with the cursor on option
// (0 = 12H, 1 = 24H).
func (r *Renderer) FormatMenu(option int) {
	r.Clear()
	r.d.DrawString(10, 5, 1, "Format:", White)
	r.d.DrawString(10, 25, 1, "12H", White)
	r.d.DrawString(10, 40, 1, "24H", White)
	y := 25
	if option != 0 {
		y = 40
	}
	r.d.DrawString(4, y, 1, ">", White)
}

// editPage paints the shared set-time/set-date layout: title, two value
// boxes with the selected one framed, and the staged values.
func (r *Renderer) editPage(title string, left, right uint8, field int) {
	r.Clear()
	r.d.FillRect(30, 2, 115, 10, Black)
	r.d.DrawString(6, 10, 2, title, White)

	if field == 0 {
		r.d.FillRect(8, 40, 44, 64, White)
		r.d.FillRect(10, 42, 42, 62, Black)
		r.d.FillRect(50, 40, 86, 64, Black)
		r.d.FillRect(52, 42, 84, 62, Black)
	} else {
		r.d.FillRect(8, 40, 44, 64, Black)
		r.d.FillRect(10, 42, 42, 62, Black)
		r.d.FillRect(50, 40, 86, 64, White)
		r.d.FillRect(52, 42, 84, 62, Black)
	}

	r.d.FillRect(15, 46, 43, 62, Black)
	r.d.DrawString(15, 46, 2, fmt.Sprintf("%02d", left), White)
	r.d.FillRect(55, 46, 83, 62, Black)
	r.d.DrawString(55, 46, 2, fmt.Sprintf("%02d", right), White)
}

// SetTime repaints the set-time page with the staged draft.
func (r *Renderer) SetTime(draft clock.Time, field int) {
	r.editPage("Set Time", draft.Hours, draft.Minutes, field)
}

// SetDate repaints the set-date page with the staged draft.
func (r *Renderer) SetDate(draft clock.Time, field int) {
	r.editPage("Set Date", draft.Day, draft.Month, field)
}

// Graph renders the pace history: gridlines at 30/60/100, x-axis
// ticks, and a polyline of the ring contents.
func (r *Renderer) Graph(history []byte) {
	r.Clear()

	const (
		xLeft     = 5
		xRight    = 90
		baselineY = 90
		topY      = 10
	)

	for _, level := range []int{30, 60, 100} {
		y := baselineY - (level*(baselineY-topY))/100
		for x := xLeft; x <= xRight; x += 3 {
			r.d.DrawPoint(x, y, GhostWhite)
		}
		r.d.DrawString(0, y-10, 1, fmt.Sprintf("%d", level), White)
	}

	for i := 0; i <= 9; i++ {
		xTick := xLeft + i*(xRight-xLeft)/9
		r.d.FillRect(xTick, baselineY-2, xTick+2, baselineY, GhostWhite)
	}

	if len(history) < 2 {
		return
	}
	prevX := xLeft
	prevY := baselineY - (int(history[0])*(baselineY-topY))/100
	for i := 1; i < len(history); i++ {
		x := xLeft + i*(xRight-xLeft)/(len(history)-1)
		y := baselineY - (int(history[i])*(baselineY-topY))/100
		if history[i] > 0 || history[i-1] > 0 {
			r.d.DrawLine(prevX, prevY, x, y, 1, Blue)
		}
		prevX = x
		prevY = y
	}
}

// StepCounter renders the degenerate counter-only mode: total steps and
// raw axis readings, no clock or menu.
func (r *Renderer) StepCounter(total uint32, x, y, z int16) {
	r.swapText(FieldPace, 80, 2, 1, fmt.Sprintf("%d", total), White)
	if _, changed := r.cache.Swap(FieldDate, fmt.Sprintf("%d/%d/%d", x, y, z)); changed {
		r.d.FillRect(20, 20, 96, 80, Black)
		r.d.DrawString(20, 20, 1, fmt.Sprintf("X: %04d", x), White)
		r.d.DrawString(20, 40, 1, fmt.Sprintf("Y: %04d", y), White)
		r.d.DrawString(20, 60, 1, fmt.Sprintf("Z: %04d", z), White)
	}
}

// Fatal renders the unrecoverable-error diagnostic.
func (r *Renderer) Fatal(msg string) {
	r.d.DrawString(0, 20, 1, msg, DarkRed)
}
