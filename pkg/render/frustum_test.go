package render

import (
	"testing"

	"github.com/taigrr/scanraster/pkg/math3d"
)

func testFrustum() Frustum {
	view := math3d.LookAt(math3d.V3(0, 0, 5), math3d.Zero3(), math3d.Up())
	proj := math3d.Perspective(math3d.Radians(60), 1, 0.1, 100)
	return NewFrustumFromMatrix(proj.Mul(view))
}

func TestAABBCenterAndSize(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))
	if got := box.Center(); got != (math3d.Vec3{}) {
		t.Errorf("Center() = %v, want origin", got)
	}
	if got := box.Size(); got != math3d.V3(2, 4, 6) {
		t.Errorf("Size() = %v, want (2,4,6)", got)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(2, 2, 2))
	if !box.ContainsPoint(math3d.V3(1, 1, 1)) {
		t.Error("box should contain its interior point")
	}
	if box.ContainsPoint(math3d.V3(5, 5, 5)) {
		t.Error("box should not contain a far exterior point")
	}
}

func TestFrustumContainsOriginNearCamera(t *testing.T) {
	f := testFrustum()
	if !f.ContainsPoint(math3d.Zero3()) {
		t.Error("origin should be inside a frustum looking at it from (0,0,5)")
	}
}

func TestFrustumRejectsPointBehindCamera(t *testing.T) {
	f := testFrustum()
	if f.ContainsPoint(math3d.V3(0, 0, 20)) {
		t.Error("a point behind the camera should not be inside the frustum")
	}
}

func TestFrustumIntersectAABBNearOrigin(t *testing.T) {
	f := testFrustum()
	box := NewAABB(math3d.V3(-0.5, -0.5, -0.5), math3d.V3(0.5, 0.5, 0.5))
	if !f.IntersectAABB(box) {
		t.Error("a small box at the origin should intersect a frustum looking at it")
	}
}

func TestFrustumIntersectAABBFarAway(t *testing.T) {
	f := testFrustum()
	box := NewAABB(math3d.V3(999, 999, 999), math3d.V3(1000, 1000, 1000))
	if f.IntersectAABB(box) {
		t.Error("a box far outside the frustum should not intersect")
	}
}
