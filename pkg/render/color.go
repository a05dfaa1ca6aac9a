package render

// Color holds four integer channels. Intermediate lighting/modulation math
// is allowed to push a channel negative or above 255; Limit clamps it back
// into byte range before the color is written anywhere.
type Color struct {
	R, G, B, A int
}

func RGB(r, g, b int) Color  { return Color{r, g, b, 255} }
func RGBA(r, g, b, a int) Color { return Color{r, g, b, a} }

// Limit clamps every channel to [0, 255] in place.
func (c *Color) Limit() {
	c.R = clampByte(c.R)
	c.G = clampByte(c.G)
	c.B = clampByte(c.B)
	c.A = clampByte(c.A)
}

func clampByte(v int) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}

// Limited returns a copy of c with Limit applied.
func (c Color) Limited() Color {
	l := c
	l.Limit()
	return l
}

var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)
