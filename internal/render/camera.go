package render

// Camera translates between maze coordinates and screen coordinates.
// World X is multiplied by 2 because tile glyphs occupy 2 terminal
// columns.
type Camera struct {
	OffsetX    int
	OffsetZ    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on world position (cx, cz).
func NewCamera(cx, cz, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cz)
	return c
}

// Center repositions the camera so world position (cx, cz) is in the
// middle of the viewport.
func (c *Camera) Center(cx, cz int) {
	// ViewWidth is in columns; each tile is 2 columns wide.
	c.OffsetX = cx - (c.ViewWidth/2)/2
	c.OffsetZ = cz - c.ViewHeight/2
}

// WorldToScreen converts world (wx, wz) to screen (sx, sy). visible is
// false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wz int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = wz - c.OffsetZ
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}
