package render

import (
	"testing"

	"github.com/taigrr/scanraster/pkg/math3d"
)

func TestAmbientContributionIsConstant(t *testing.T) {
	l := NewAmbientLight(math3d.V3(0.2, 0.3, 0.4))
	got := l.Contribution(math3d.V3(100, -50, 7), math3d.V3(0, 1, 0))
	want := math3d.V3(0.2, 0.3, 0.4)
	if got != want {
		t.Errorf("ambient Contribution = %v, want %v", got, want)
	}
}

func TestDirectionalContributionFacesLight(t *testing.T) {
	l := NewDirectionalLight(math3d.V3(1, 1, 1), math3d.V3(0, -1, 0))
	point := math3d.Vec3{}

	facing := l.Contribution(point, math3d.V3(0, 1, 0))
	if facing.X <= 0 {
		t.Errorf("surface facing the light got non-positive contribution %v", facing)
	}

	away := l.Contribution(point, math3d.V3(0, -1, 0))
	if away.X != 0 {
		t.Errorf("surface facing away from the light got %v, want zero", away)
	}
}

func TestPointLightAttenuatesWithDistance(t *testing.T) {
	l := NewPointLight(math3d.V3(1, 1, 1), 10, math3d.V3(0, 0, 0))
	normal := math3d.V3(0, 0, 1)

	near := l.Contribution(math3d.V3(0, 0, -1), normal)
	far := l.Contribution(math3d.V3(0, 0, -9), normal)

	if near.X <= far.X {
		t.Errorf("near contribution %v should exceed far contribution %v", near, far)
	}
}

func TestPointLightBeyondAttenuationIsZero(t *testing.T) {
	l := NewPointLight(math3d.V3(1, 1, 1), 5, math3d.V3(0, 0, 0))
	got := l.Contribution(math3d.V3(0, 0, -20), math3d.V3(0, 0, 1))
	if got != (math3d.Vec3{}) {
		t.Errorf("Contribution beyond attenuation = %v, want zero", got)
	}
}

func TestPointLightNeverNegative(t *testing.T) {
	l := NewPointLight(math3d.V3(1, 1, 1), 10, math3d.V3(0, 0, -5))
	got := l.Contribution(math3d.V3(0, 0, 0), math3d.V3(0, 0, 1))
	if got.X < 0 || got.Y < 0 || got.Z < 0 {
		t.Errorf("Contribution facing away went negative: %v", got)
	}
}
