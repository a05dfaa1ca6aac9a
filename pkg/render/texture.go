package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Texture is a Raster used as a sample source. The core pipeline samples
// it with plain nearest-neighbor getPixel lookups (no mipmaps, no
// bilinear filtering); this type only adds the loading/generation
// helpers that sit outside the renderer's contract.
type Texture struct {
	*Raster
}

func NewTexture(width, height int) *Texture {
	return &Texture{Raster: NewRaster(width, height)}
}

// LoadTexture decodes a PNG or JPEG file into a texture raster.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies a decoded image into a new texture raster.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := NewTexture(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.SetPixel(x, y, Color{R: int(r >> 8), G: int(g >> 8), B: int(b >> 8), A: int(a >> 8)})
		}
	}
	return tex
}

// NewCheckerTexture builds a procedural checkerboard, useful as a
// fallback when no image texture is supplied.
func NewCheckerTexture(width, height, cell int, a, b Color) *Texture {
	tex := NewTexture(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				tex.SetPixel(x, y, a)
			} else {
				tex.SetPixel(x, y, b)
			}
		}
	}
	return tex
}
