package render

import "testing"

func TestNewCheckerTextureAlternates(t *testing.T) {
	a, b := RGB(255, 255, 255), RGB(0, 0, 0)
	tex := NewCheckerTexture(4, 4, 1, a, b)

	if got := tex.GetPixel(0, 0); got != a {
		t.Errorf("GetPixel(0,0) = %+v, want %+v", got, a)
	}
	if got := tex.GetPixel(1, 0); got != b {
		t.Errorf("GetPixel(1,0) = %+v, want %+v", got, b)
	}
	if got := tex.GetPixel(1, 1); got != a {
		t.Errorf("GetPixel(1,1) = %+v, want %+v (both coords flip back)", got, a)
	}
}

func TestNewCheckerTextureCellSize(t *testing.T) {
	a, b := RGB(255, 0, 0), RGB(0, 255, 0)
	tex := NewCheckerTexture(8, 8, 2, a, b)

	if got := tex.GetPixel(0, 0); got != a {
		t.Errorf("GetPixel(0,0) = %+v, want %+v", got, a)
	}
	if got := tex.GetPixel(1, 0); got != a {
		t.Errorf("GetPixel(1,0) = %+v, want %+v (still inside the first 2x2 cell)", got, a)
	}
	if got := tex.GetPixel(2, 0); got != b {
		t.Errorf("GetPixel(2,0) = %+v, want %+v (next cell)", got, b)
	}
}

func TestNewTextureIsOpaqueBlack(t *testing.T) {
	tex := NewTexture(2, 2)
	if got := tex.GetPixel(0, 0); got != Black {
		t.Errorf("GetPixel(0,0) on a fresh texture = %+v, want opaque black", got)
	}
}
