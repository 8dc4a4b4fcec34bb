// Package display renders the watch screens through a narrow set of
// draw primitives. All drawing goes through a diff cache so unchanged
// fields are never redrawn (the panel flickers on redundant draws).
package display

// Color is a 16-bit RGB565 color.
type Color uint16

// Panel colors.
const (
	Black      Color = 0x0000
	White      Color = 0xFFFF
	Red        Color = 0xF800
	Green      Color = 0x07E0
	Blue       Color = 0x001F
	DarkRed    Color = 0x8800
	GhostWhite Color = 0xF7BE
	SkyBlue    Color = 0x867D
)

// Screen dimensions in pixels.
const (
	Width  = 96
	Height = 96
)

// Display is the draw-primitive contract provided by the panel driver.
// The core only calls it through the Renderer's change-driven dispatch.
type Display interface {
	// DrawString draws text with its top-left corner at (x, y). A
	// scale of 1 is the 5x7 base font; 2 doubles it.
	DrawString(x, y, scale int, s string, c Color)

	// FillRect fills the rectangle with corners (x0, y0) and (x1, y1).
	FillRect(x0, y0, x1, y1 int, c Color)

	// DrawLine draws a line of the given width between two points.
	DrawLine(x0, y0, x1, y1, width int, c Color)

	// DrawPoint sets a single pixel.
	DrawPoint(x, y int, c Color)

	// Clear fills the whole screen with the background color.
	Clear()

	// SetBackground sets the color used by Clear and erases.
	SetBackground(c Color)
}
