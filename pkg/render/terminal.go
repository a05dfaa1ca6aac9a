package render

import (
	stdcolor "image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw blits this raster into a terminal screen, two raster rows per
// terminal cell: the upper-half-block glyph "▀" colored with the top
// row as foreground and the bottom row as background. The raster
// should be sized to twice the terminal area's row count.
func (r *Raster) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < r.Width; col++ {
			top := r.GetPixel(col, topY)
			bot := r.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(top),
					Bg: cellColor(bot),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

func cellColor(c Color) stdcolor.Color {
	if c.A == 0 {
		return nil
	}
	return stdcolor.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: uint8(c.A)}
}
