package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanraster/pkg/math3d"
	"github.com/taigrr/scanraster/pkg/models"
)

func TestTestDepthAcceptsNearer(t *testing.T) {
	r := NewRenderer(NewRaster(2, 2))
	if !r.testDepth(0, 5) {
		t.Fatal("first write to a sentinel-filled slot should be accepted")
	}
	if r.testDepth(0, 10) {
		t.Error("farther depth should be rejected once a nearer value is stored")
	}
	if !r.testDepth(0, 1) {
		t.Error("nearer depth should be accepted")
	}
}

func TestTestDepthDisabledAlwaysAccepts(t *testing.T) {
	r := NewRenderer(NewRaster(2, 2))
	r.EnableDepthTest(false)
	if !r.testDepth(0, 5) {
		t.Fatal("depth test disabled should accept")
	}
	if !r.testDepth(0, 100) {
		t.Error("depth test disabled should accept even a farther value")
	}
}

func TestTestDepthOutOfRangeRejected(t *testing.T) {
	r := NewRenderer(NewRaster(2, 2))
	if r.testDepth(-1, 0) || r.testDepth(1000, 0) {
		t.Error("out-of-range index should always fail the depth test")
	}
}

func TestFogPostProcessLeavesAlphaUntouched(t *testing.T) {
	r := NewRenderer(NewRaster(1, 1))
	r.Image.SetPixel(0, 0, RGBA(200, 200, 200, 128))
	r.depth[0] = 1000 // far past fogEnd, full fog

	r.FogPostProcess(0, 10, RGB(0, 0, 0))

	got := r.Image.GetPixel(0, 0)
	if got.A != 128 {
		t.Errorf("alpha = %d, want untouched 128", got.A)
	}
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("fully-fogged pixel = %+v, want fog color (0,0,0)", got)
	}
}

func TestFogPostProcessNoFogBeforeStart(t *testing.T) {
	r := NewRenderer(NewRaster(1, 1))
	orig := RGB(200, 150, 100)
	r.Image.SetPixel(0, 0, orig)
	r.depth[0] = -5 // before fogStart, no fog

	r.FogPostProcess(0, 10, RGB(0, 0, 0))

	if got := r.Image.GetPixel(0, 0); got != orig {
		t.Errorf("pixel before fog start = %+v, want untouched %+v", got, orig)
	}
}

// singleTriangleMesh is a unit-sized triangle facing +Z, centered at the
// origin, used to exercise the full transform/cull/clip/rasterize chain.
func singleTriangleMesh() *models.Mesh {
	verts := []models.Vertex{
		{Position: math3d.V3(-0.5, -0.5, 0), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0, 0)},
		{Position: math3d.V3(0.5, -0.5, 0), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(1, 0)},
		{Position: math3d.V3(0, 0.5, 0), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0.5, 1)},
	}
	tris := []models.Triangle{{V0: 0, V1: 1, V2: 2}}
	return models.NewMesh(verts, tris, models.MakeFlat)
}

func TestRenderMeshDrawsFacingTriangle(t *testing.T) {
	raster := NewRaster(32, 32)
	renderer := NewRenderer(raster)
	camera := NewCamera(false, math.Pi/3, 1, 0.1, math3d.V3(0, 0, 3))
	tex := NewCheckerTexture(4, 4, 1, White, White)

	renderer.ClearColorDepth(Black)
	renderer.RenderMesh(singleTriangleMesh(), tex, math3d.NewCombined(), camera, nil, LightingNone)

	center := raster.GetPixel(16, 16)
	if center == Black {
		t.Error("a triangle facing the camera should paint its center pixel")
	}
}

// reverseWoundTriangleMesh is the same triangle as singleTriangleMesh,
// but with its vertex order reversed so its face normal points away
// from a camera that would otherwise see singleTriangleMesh head-on.
func reverseWoundTriangleMesh() *models.Mesh {
	verts := []models.Vertex{
		{Position: math3d.V3(-0.5, -0.5, 0), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0, 0)},
		{Position: math3d.V3(0.5, -0.5, 0), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(1, 0)},
		{Position: math3d.V3(0, 0.5, 0), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0.5, 1)},
	}
	tris := []models.Triangle{{V0: 0, V1: 2, V2: 1}}
	return models.NewMesh(verts, tris, models.MakeFlat)
}

func TestRenderMeshCullsBackFacingTriangle(t *testing.T) {
	raster := NewRaster(32, 32)
	renderer := NewRenderer(raster)
	camera := NewCamera(false, math.Pi/3, 1, 0.1, math3d.V3(0, 0, 3))
	tex := NewCheckerTexture(4, 4, 1, White, White)

	renderer.ClearColorDepth(Black)
	renderer.RenderMesh(reverseWoundTriangleMesh(), tex, math3d.NewCombined(), camera, nil, LightingNone)

	if got := raster.GetPixel(16, 16); got != Black {
		t.Errorf("a reverse-wound triangle should be backface-culled, got %+v", got)
	}
}

// clipTestVertex builds a bare renderVertex at the given camera-space
// depth, with placeholder color/uv so lerpRenderVertex has something to
// interpolate.
func clipTestVertex(x, y, z float64) renderVertex {
	return renderVertex{
		XYZ: math3d.V3(x, y, z),
		RGB: math3d.V3(1, 1, 1),
		UV:  math3d.V2(0, 0),
	}
}

func TestClipTriangleAgainstNearPlane(t *testing.T) {
	r := &Renderer{}
	camera := &Camera{NearClip: 0.1}

	tests := []struct {
		name string
		v0   renderVertex
		v1   renderVertex
		v2   renderVertex
		want triResult
	}{
		{
			name: "entirely behind the near plane is removed",
			v0:   clipTestVertex(-1, -1, -0.05),
			v1:   clipTestVertex(1, -1, -0.05),
			v2:   clipTestVertex(0, 1, -0.05),
			want: triRemoved,
		},
		{
			name: "entirely in front of the near plane is kept",
			v0:   clipTestVertex(-1, -1, -2),
			v1:   clipTestVertex(1, -1, -2),
			v2:   clipTestVertex(0, 1, -2),
			want: triKept,
		},
		{
			name: "two vertices too close, one beyond the near plane clips to one triangle",
			v0:   clipTestVertex(-1, -1, -0.05),
			v1:   clipTestVertex(1, -1, -0.05),
			v2:   clipTestVertex(0, 1, -2),
			want: triClippedOne,
		},
		{
			name: "one vertex too close, two beyond the near plane clips to a quad",
			v0:   clipTestVertex(-1, -1, -0.05),
			v1:   clipTestVertex(1, -1, -2),
			v2:   clipTestVertex(0, 1, -2),
			want: triClippedTwo,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.clipTriangle(tc.v0, tc.v1, tc.v2, planeNear, camera)
			if got.result != tc.want {
				t.Errorf("clipTriangle() result = %v, want %v", got.result, tc.want)
			}
		})
	}
}

// straddlingNearPlaneMesh is spec scenario 4: a triangle whose vertices
// are given directly in camera space (an identity transform and a
// camera sitting at the origin make mesh space and camera space
// coincide) straddling a near plane at z=-0.1.
func straddlingNearPlaneMesh() *models.Mesh {
	verts := []models.Vertex{
		{Position: math3d.V3(-1, -1, -0.05), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0, 0)},
		{Position: math3d.V3(1, -1, -2), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(1, 0)},
		{Position: math3d.V3(0, 1, -2), RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0.5, 1)},
	}
	tris := []models.Triangle{{V0: 0, V1: 1, V2: 2}}
	return models.NewMesh(verts, tris, models.MakeFlat)
}

func TestRenderMeshStraddlingNearPlaneProducesSubTriangles(t *testing.T) {
	raster := NewRaster(32, 32)
	renderer := NewRenderer(raster)
	camera := NewCamera(false, math.Pi/3, 1, 0.1, math3d.Zero3())
	tex := NewCheckerTexture(4, 4, 1, White, White)

	renderer.ClearColorDepth(Black)
	renderer.RenderMesh(straddlingNearPlaneMesh(), tex, math3d.NewCombined(), camera, nil, LightingNone)

	drawn := false
	for y := 0; y < raster.Height && !drawn; y++ {
		for x := 0; x < raster.Width; x++ {
			if raster.GetPixel(x, y) != Black {
				drawn = true
				break
			}
		}
	}
	if !drawn {
		t.Error("a triangle straddling the near plane should still paint the part of it beyond the plane")
	}
}

func TestRenderMeshEntirelyBehindNearPlaneProducesNoPixels(t *testing.T) {
	raster := NewRaster(32, 32)
	renderer := NewRenderer(raster)
	camera := NewCamera(false, math.Pi/3, 1, 0.1, math3d.Zero3())
	tex := NewCheckerTexture(4, 4, 1, White, White)

	mesh := straddlingNearPlaneMesh()
	for i := range mesh.Vertices {
		mesh.Vertices[i].Position.Z = -0.05 // pull the whole triangle inside the near clip distance
	}

	renderer.ClearColorDepth(Black)
	renderer.RenderMesh(mesh, tex, math3d.NewCombined(), camera, nil, LightingNone)

	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			if got := raster.GetPixel(x, y); got != Black {
				t.Fatalf("pixel (%d,%d) = %+v, want untouched black: triangle entirely behind the near plane should produce zero pixels", x, y, got)
			}
		}
	}
}

func TestRenderMeshDepthTestRejectsFartherTriangle(t *testing.T) {
	raster := NewRaster(32, 32)
	renderer := NewRenderer(raster)
	camera := NewCamera(false, math.Pi/3, 1, 0.1, math3d.V3(0, 0, 3))

	near := singleTriangleMesh()
	for i := range near.Vertices {
		near.Vertices[i].RGB = math3d.V3(1, 0, 0)
	}
	far := singleTriangleMesh()
	for i := range far.Vertices {
		far.Vertices[i].Position.Z = -1
		far.Vertices[i].RGB = math3d.V3(0, 0, 1)
	}
	tex := NewCheckerTexture(4, 4, 1, White, White)

	renderer.ClearColorDepth(Black)
	renderer.RenderMesh(near, tex, math3d.NewCombined(), camera, nil, LightingNone)
	renderer.RenderMesh(far, tex, math3d.NewCombined(), camera, nil, LightingNone)

	got := raster.GetPixel(16, 16)
	if got.R == 0 {
		t.Errorf("farther blue triangle drawn after the nearer red one should fail the depth test, got %+v", got)
	}
}
