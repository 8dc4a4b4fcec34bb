package display

// Bitmap is a monochrome icon asset: row-major bit rows, most
// significant bit leftmost.
type Bitmap struct {
	Width  int
	Height int
	Rows   []uint16
}

// Blit draws the set bits of bm at (x, y) in the given color.
func Blit(d Display, x, y int, bm Bitmap, c Color) {
	for row := 0; row < bm.Height; row++ {
		bits := bm.Rows[row]
		for col := 0; col < bm.Width; col++ {
			if bits&(1<<(bm.Width-1-col)) != 0 {
				d.DrawPoint(x+col, y+row, c)
			}
		}
	}
}

// The two frames of the walking-foot animation, toggled by the
// timebase blink flag while the pace is nonzero.
var (
	FootIcon1 = Bitmap{Width: 16, Height: 16, Rows: []uint16{
		0x7800, 0xF800, 0xFC00, 0xFC00, 0xFC00, 0x7C1E, 0x783E, 0x047F,
		0x3F9F, 0x1F3E, 0x0C3E, 0x003E, 0x0004, 0x00F0, 0x01F0, 0x00E0,
	}}
	FootIcon2 = Bitmap{Width: 16, Height: 16, Rows: []uint16{
		0x001E, 0x003F, 0x003F, 0x007F, 0x003F, 0x383E, 0x7C1E, 0x7E10,
		0x7E7C, 0x7E78, 0x7C30, 0x3C00, 0x2000, 0x1E00, 0x1F00, 0x0E00,
	}}
)
