package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanraster/pkg/math3d"
)

func approxVec3(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestCameraForwardAtZeroOrientation(t *testing.T) {
	c := NewCamera(false, math.Pi/3, 1, 0.1, math3d.Zero3())
	got := c.Forward()
	want := math3d.V3(0, 0, -1)
	if !approxVec3(got, want, 1e-9) {
		t.Errorf("Forward() = %v, want %v", got, want)
	}
}

func TestCameraYawRotatesForward(t *testing.T) {
	c := NewCamera(false, math.Pi/3, 1, 0.1, math3d.Zero3())
	c.SetYaw(math.Pi / 2)
	got := c.Forward()
	want := math3d.V3(-1, 0, 0)
	if !approxVec3(got, want, 1e-9) {
		t.Errorf("Forward() after yaw pi/2 = %v, want %v", got, want)
	}
}

func TestCameraPitchClamped(t *testing.T) {
	c := NewCamera(false, math.Pi/3, 1, 0.1, math3d.Zero3())
	c.SetPitch(math.Pi)
	if c.Pitch > maxPitch || c.Pitch < -maxPitch {
		t.Errorf("Pitch = %v, want clamped within +/- %v", c.Pitch, maxPitch)
	}
}

func TestCameraFrontIgnoresPitch(t *testing.T) {
	c := NewCamera(false, math.Pi/3, 1, 0.1, math3d.Zero3())
	c.SetPitch(math.Pi / 4)
	front := c.Front()
	if math.Abs(front.Y) > 1e-9 {
		t.Errorf("Front().Y = %v, want 0 (ground-plane projection)", front.Y)
	}
}

func TestCameraTransformMovesWorldIntoView(t *testing.T) {
	c := NewCamera(false, math.Pi/3, 1, 0.1, math3d.V3(0, 0, 5))
	transform := c.Transform()
	got := transform.Apply(math3d.V3(0, 0, 0))
	want := math3d.V3(0, 0, -5)
	if !approxVec3(got, want, 1e-9) {
		t.Errorf("view-transform of world origin = %v, want %v", got, want)
	}
}

func TestCameraRightIsPerpendicularToForward(t *testing.T) {
	c := NewCamera(false, math.Pi/3, 1, 0.1, math3d.Zero3())
	c.SetYaw(0.7)
	c.SetPitch(0.3)
	dot := c.Forward().Dot(c.Right())
	if math.Abs(dot) > 1e-9 {
		t.Errorf("Forward . Right = %v, want ~0", dot)
	}
}
