package render

import "testing"

func TestRasterSetGetPixel(t *testing.T) {
	r := NewRaster(4, 4)
	c := RGB(1, 2, 3)
	r.SetPixel(1, 2, c)

	got := r.GetPixel(1, 2)
	if got != c {
		t.Errorf("GetPixel(1,2) = %+v, want %+v", got, c)
	}
}

func TestRasterOutOfBoundsIsNoop(t *testing.T) {
	r := NewRaster(2, 2)
	r.SetPixel(-1, 0, RGB(9, 9, 9))
	r.SetPixel(10, 10, RGB(9, 9, 9))

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := r.GetPixel(x, y); got != Black {
				t.Errorf("GetPixel(%d,%d) = %+v, want untouched black", x, y, got)
			}
		}
	}
}

func TestRasterOutOfBoundsReadIsOpaqueBlack(t *testing.T) {
	r := NewRaster(2, 2)
	if got := r.GetPixel(-1, -1); got != Black {
		t.Errorf("GetPixel(-1,-1) = %+v, want opaque black", got)
	}
	if got := r.GetPixel(5, 5); got != Black {
		t.Errorf("GetPixel(5,5) = %+v, want opaque black", got)
	}
}

func TestRasterClear(t *testing.T) {
	r := NewRaster(3, 3)
	c := RGB(50, 60, 70)
	r.Clear(c)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := r.GetPixel(x, y); got != c {
				t.Errorf("GetPixel(%d,%d) after Clear = %+v, want %+v", x, y, got, c)
			}
		}
	}
}

func TestRasterIndex(t *testing.T) {
	r := NewRaster(5, 5)
	if got, want := r.Index(2, 1), 4*(2+1*5); got != want {
		t.Errorf("Index(2,1) = %d, want %d", got, want)
	}
}
