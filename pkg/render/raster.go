package render

import (
	"image"
	"image/png"
	"os"
)

// Raster is a rectangular RGBA8 pixel grid: width*height*4 contiguous
// bytes, four per pixel (r,g,b,a), row-major, rows top-to-bottom. All
// pixel operations are bounds-safe on the byte index: a write whose
// index falls outside the buffer silently no-ops, such a read returns
// opaque black.
type Raster struct {
	Width, Height int
	Data          []uint8
}

// NewRaster allocates a raster cleared to opaque black.
func NewRaster(width, height int) *Raster {
	r := &Raster{Width: width, Height: height, Data: make([]uint8, width*height*4)}
	r.Clear(Black)
	return r
}

// Index returns the byte offset of pixel (x,y): index(x,y) = 4*(x+y*w).
func (r *Raster) Index(x, y int) int {
	return (x + y*r.Width) * 4
}

func (r *Raster) checkIndex(index int) bool {
	return index >= 0 && index+3 < len(r.Data)
}

// Clear fills every pixel with color.
func (r *Raster) Clear(c Color) {
	for i := 0; i < len(r.Data); i += 4 {
		r.Data[i+0] = uint8(c.R)
		r.Data[i+1] = uint8(c.G)
		r.Data[i+2] = uint8(c.B)
		r.Data[i+3] = uint8(c.A)
	}
}

// SetPixel writes a pixel by (x,y). Only the resulting byte index is
// bounds-checked: an index outside the buffer is a no-op, while an x
// outside [0, Width) whose index still lands inside the buffer writes
// into a neighbouring row.
func (r *Raster) SetPixel(x, y int, c Color) {
	r.SetPixelIndex(r.Index(x, y), c)
}

// SetPixelIndex writes a pixel by its byte index. Out-of-range indices
// are a no-op.
func (r *Raster) SetPixelIndex(index int, c Color) {
	if !r.checkIndex(index) {
		return
	}
	r.Data[index+0] = uint8(c.R)
	r.Data[index+1] = uint8(c.G)
	r.Data[index+2] = uint8(c.B)
	r.Data[index+3] = uint8(c.A)
}

// GetPixel reads a pixel by (x,y). Only the resulting byte index is
// bounds-checked: an index outside the buffer returns opaque black,
// while an x outside [0, Width) whose index still lands inside the
// buffer reads from a neighbouring row.
func (r *Raster) GetPixel(x, y int) Color {
	return r.GetPixelIndex(r.Index(x, y))
}

// GetPixelIndex reads a pixel by its byte index. Out-of-range indices
// return opaque black.
func (r *Raster) GetPixelIndex(index int) Color {
	if !r.checkIndex(index) {
		return Black
	}
	return Color{
		R: int(r.Data[index+0]),
		G: int(r.Data[index+1]),
		B: int(r.Data[index+2]),
		A: int(r.Data[index+3]),
	}
}

// LoadFromBuffer bulk-loads a raw RGBA8 buffer of length 4*Width*Height.
func (r *Raster) LoadFromBuffer(buf []uint8) {
	copy(r.Data, buf)
}

// ToImage returns a standard library image backed by a copy of the
// raster's pixels, handy for diagnostics (PNG dump, test fixtures).
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Data)
	return img
}

// SavePNG writes the raster to path as a PNG file.
func (r *Raster) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, r.ToImage())
}
