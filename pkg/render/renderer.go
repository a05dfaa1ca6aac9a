package render

import (
	"math"

	"github.com/taigrr/scanraster/pkg/math3d"
	"github.com/taigrr/scanraster/pkg/models"
)

// depthSentinel fills the depth buffer on clear: larger than any real
// view-space reciprocal depth or orthographic z a scene will produce.
const depthSentinel = 1.0e100

// Lighting selects whether RenderMesh accumulates light contributions
// into vertex color or leaves per-vertex color untouched.
type Lighting int

const (
	LightingNone Lighting = iota
	LightingDiffuse
)

// Renderer owns a color target and its matching depth buffer. The
// per-call vertex and face scratch slices are allocated fresh by each
// RenderMesh call rather than kept on the Renderer.
type Renderer struct {
	Image            *Raster
	depth            []float64
	depthTestEnabled bool
}

// NewRenderer wraps image, clearing the depth buffer and enabling the
// depth test by default.
func NewRenderer(image *Raster) *Renderer {
	r := &Renderer{Image: image}
	r.ClearDepth()
	r.EnableDepthTest(true)
	return r
}

func (r *Renderer) ClearColor(c Color) {
	r.Image.Clear(c)
}

func (r *Renderer) ClearDepth() {
	r.depth = make([]float64, r.Image.Width*r.Image.Height)
	for i := range r.depth {
		r.depth[i] = depthSentinel
	}
}

func (r *Renderer) ClearColorDepth(c Color) {
	r.ClearColor(c)
	r.ClearDepth()
}

func (r *Renderer) EnableDepthTest(enable bool) {
	r.depthTestEnabled = enable
}

// testDepth compares d against the stored depth at index, replacing and
// accepting it if the depth test is disabled or d is the nearer value.
// An out-of-range index always fails.
func (r *Renderer) testDepth(index int, d float64) bool {
	if index < 0 || index >= len(r.depth) {
		return false
	}
	if d < r.depth[index] || !r.depthTestEnabled {
		r.depth[index] = d
		return true
	}
	return false
}

// FogPostProcess blends every pixel toward fogColor by an amount that
// ramps linearly from 0 at fogStart to 1 at fogEnd of its stored depth,
// walking the depth buffer and color buffer in lockstep. Alpha is left
// untouched.
func (r *Renderer) FogPostProcess(fogStart, fogEnd float64, fogColor Color) {
	pixelIndex := 0
	for i := 0; i < len(r.depth); i++ {
		d := r.depth[i]
		fogAmount := (d - fogStart) / (fogEnd - fogStart)
		switch {
		case fogAmount > 1.0:
			fogAmount = 1.0
		case fogAmount < 0.0:
			fogAmount = 0.0
		}
		keptAmount := 1.0 - fogAmount

		pixel := r.Image.GetPixelIndex(pixelIndex)
		pixel.R = int(float64(pixel.R)*keptAmount + float64(fogColor.R)*fogAmount)
		pixel.G = int(float64(pixel.G)*keptAmount + float64(fogColor.G)*fogAmount)
		pixel.B = int(float64(pixel.B)*keptAmount + float64(fogColor.B)*fogAmount)
		r.Image.SetPixelIndex(pixelIndex, pixel)
		pixelIndex += 4
	}
}

// renderVertex is what moves through the transform/clip/raster
// pipeline once lighting has collapsed a source Vertex's normal into
// its color: a position, a color, and a texture coordinate.
type renderVertex struct {
	XYZ math3d.Vec3
	RGB math3d.Vec3
	UV  math3d.Vec2
}

func lerpRenderVertex(v0, v1 renderVertex, t float64) renderVertex {
	return renderVertex{
		XYZ: v0.XYZ.Lerp(v1.XYZ, t),
		RGB: v0.RGB.Lerp(v1.RGB, t),
		UV:  v0.UV.Lerp(v1.UV, t),
	}
}

// RenderMesh transforms mesh by transform, lights it, culls backfaces,
// moves it into camera space, and clips and rasterizes every surviving
// triangle into r.Image and the depth buffer.
func (r *Renderer) RenderMesh(mesh *models.Mesh, texture *Texture, transform math3d.Transform, camera *Camera, lights []LightSource, lighting Lighting) {
	verts := make([]renderVertex, len(mesh.Vertices))

	for i, v := range mesh.Vertices {
		xyz := transform.Apply(v.Position)
		normal := transform.ApplyNormal(v.Normal).Normalize()
		rgb := v.RGB

		if lighting == LightingDiffuse {
			accum := math3d.Vec3{}
			for _, light := range lights {
				accum = accum.Add(light.Contribution(xyz, normal))
			}
			rgb = rgb.Mul(accum)
		}

		verts[i] = renderVertex{XYZ: xyz, RGB: rgb, UV: v.UV}
	}

	renderFace := make([]bool, len(mesh.Triangles))
	if camera.Orthographic {
		camDir := camera.Forward()
		for i := range mesh.Triangles {
			normal := transform.ApplyNormal(mesh.FaceNormals[i])
			renderFace[i] = camDir.Dot(normal) < 0.0
		}
	} else {
		view := camera.Position
		for i, tri := range mesh.Triangles {
			diff := verts[tri.V0].XYZ.Sub(view)
			normal := transform.ApplyNormal(mesh.FaceNormals[i])
			renderFace[i] = diff.Dot(normal) < 0.0
		}
	}

	viewTransform := camera.Transform()
	for i := range verts {
		verts[i].XYZ = viewTransform.Apply(verts[i].XYZ)
	}

	startPlane := planeNear
	if camera.Orthographic {
		startPlane = planeLeft
	}

	for i, tri := range mesh.Triangles {
		if !renderFace[i] {
			continue
		}
		r.doTriangle(verts[tri.V0], verts[tri.V1], verts[tri.V2], startPlane, texture, camera)
	}
}

// clipPlane names a stage in the five-plane homogeneous clip sequence.
type clipPlane int

const (
	planeNear clipPlane = iota
	planeLeft
	planeRight
	planeBottom
	planeTop
	planeNone
)

func nextClipPlane(plane clipPlane) clipPlane {
	switch plane {
	case planeNear:
		return planeLeft
	case planeLeft:
		return planeRight
	case planeRight:
		return planeBottom
	case planeBottom:
		return planeTop
	default:
		return planeNone
	}
}

type edgeResult int

const (
	edgeRemoved edgeResult = iota
	edgeClipped
	edgeKept
)

// sortClip classifies one triangle edge against a plane given the
// edge's two signed coordinates (a for v0, b for v1) and the plane's
// boundary value c. flipped selects which side of the plane is
// "inside" for planes whose normal points the other way (RIGHT, TOP,
// and the NEAR plane's "in front of camera" sense).
func sortClip(v0, v1 renderVertex, a, b, c float64, flipped bool) (edgeResult, renderVertex) {
	if b < a {
		a, b = b, a
		v0, v1 = v1, v0
	}
	if flipped {
		if b < c {
			return edgeKept, renderVertex{}
		}
		if a > c {
			return edgeRemoved, renderVertex{}
		}
	} else {
		if a > c {
			return edgeKept, renderVertex{}
		}
		if b < c {
			return edgeRemoved, renderVertex{}
		}
	}

	t := math3d.GetT(a, b, c)
	return edgeClipped, lerpRenderVertex(v0, v1, t)
}

func (r *Renderer) clipEdge(v0, v1 renderVertex, plane clipPlane, camera *Camera) (edgeResult, renderVertex) {
	switch plane {
	case planeNear:
		return sortClip(v0, v1, v0.XYZ.Z, v1.XYZ.Z, -camera.NearClip, true)
	case planeLeft:
		return sortClip(v0, v1, v0.XYZ.X, v1.XYZ.X, -1.0, false)
	case planeRight:
		return sortClip(v0, v1, v0.XYZ.X, v1.XYZ.X, 1.0, true)
	case planeBottom:
		return sortClip(v0, v1, v0.XYZ.Y, v1.XYZ.Y, -1.0, false)
	case planeTop:
		return sortClip(v0, v1, v0.XYZ.Y, v1.XYZ.Y, 1.0, true)
	default:
		return edgeKept, renderVertex{}
	}
}

type triResult int

const (
	triRemoved triResult = iota
	triClippedOne
	triClippedTwo
	triKept
)

type triangleClip struct {
	result           triResult
	t0v0, t0v1, t0v2 renderVertex
	t1v0, t1v1, t1v2 renderVertex
}

// clipTriangle clips a triangle against plane. When the triangle
// straddles the plane, two of its edges come back CLIPPED; the edges
// (and the v0/v1/v2 labels with them) are rotated until edge v0v1 is
// the one that is not CLIPPED, so the two remaining cases can be read
// off that edge: REMOVED means one vertex is inside and the two cut
// points form a single output triangle with it, KEPT means two
// vertices are inside and the two cut points form a quad with them,
// split into two triangles.
func (r *Renderer) clipTriangle(v0, v1, v2 renderVertex, plane clipPlane, camera *Camera) triangleClip {
	e01, cv01 := r.clipEdge(v0, v1, plane, camera)
	e12, cv12 := r.clipEdge(v1, v2, plane, camera)
	e20, cv20 := r.clipEdge(v2, v0, plane, camera)

	if e01 == edgeRemoved && e12 == edgeRemoved && e20 == edgeRemoved {
		return triangleClip{result: triRemoved}
	}
	if e01 == edgeKept && e12 == edgeKept && e20 == edgeKept {
		return triangleClip{result: triKept, t0v0: v0, t0v1: v1, t0v2: v2}
	}

	if e01 == edgeClipped {
		e01, e12 = e12, e01
		cv01, cv12 = cv12, cv01
		v0, v2 = v2, v0
	}
	if e01 == edgeClipped {
		e01, e20 = e20, e01
		cv01, cv20 = cv20, cv01
		v1, v2 = v2, v1
	}

	if e01 == edgeRemoved {
		return triangleClip{result: triClippedOne, t0v0: cv12, t0v1: cv20, t0v2: v2}
	}
	return triangleClip{
		result: triClippedTwo,
		t0v0:   cv12, t0v1: cv20, t0v2: v0,
		t1v0: cv12, t1v1: v0, t1v2: v1,
	}
}

func (r *Renderer) doTriangle(v0, v1, v2 renderVertex, plane clipPlane, texture *Texture, camera *Camera) {
	if plane == planeNone {
		r.rasterizeTriangle(v0, v1, v2, texture, camera)
		return
	}

	if plane == planeLeft {
		v0 = applyPerspective(v0, texture, camera)
		v1 = applyPerspective(v1, texture, camera)
		v2 = applyPerspective(v2, texture, camera)
	}

	next := nextClipPlane(plane)
	clip := r.clipTriangle(v0, v1, v2, plane, camera)
	switch clip.result {
	case triClippedOne:
		r.doTriangle(clip.t0v0, clip.t0v1, clip.t0v2, next, texture, camera)
	case triClippedTwo:
		r.doTriangle(clip.t0v0, clip.t0v1, clip.t0v2, next, texture, camera)
		r.doTriangle(clip.t1v0, clip.t1v1, clip.t1v2, next, texture, camera)
	case triKept:
		r.doTriangle(v0, v1, v2, next, texture, camera)
	}
}

// applyPerspective converts a camera-space vertex into a projected
// vertex: x/y in roughly [-1, 1] for on-screen points, uv flipped and
// scaled into texel units, and (for the perspective case only) rgb/uv
// premultiplied by 1/z so that the rasterizer's linear interpolation
// across the divided values stays perspective-correct.
func applyPerspective(v renderVertex, texture *Texture, camera *Camera) renderVertex {
	texSize := math3d.V2(float64(texture.Width), float64(texture.Height))

	if camera.Orthographic {
		oneOverFOV := 1.0 / camera.FOV
		v.XYZ.X *= oneOverFOV
		v.XYZ.Y *= camera.Aspect * oneOverFOV
		v.XYZ.Z = -v.XYZ.Z
		v.UV.Y = 1.0 - v.UV.Y
		v.UV = v.UV.Mul(texSize)
		return v
	}

	oneOverZ := 1.0 / (camera.Perspective() * -v.XYZ.Z)
	v.XYZ.X *= oneOverZ
	v.XYZ.Y *= oneOverZ * camera.Aspect
	v.XYZ.Z = oneOverZ
	v.RGB = v.RGB.Scale(oneOverZ)
	v.UV.Y = 1.0 - v.UV.Y
	v.UV = v.UV.Mul(texSize)
	v.UV = v.UV.Scale(oneOverZ)
	return v
}

// lerpVertexIter walks a renderVertex linearly between two endpoints
// one step() at a time, precomputing the per-step increment once
// instead of re-lerping from scratch at every pixel or scanline.
type lerpVertexIter struct {
	value renderVertex
	inc   renderVertex
}

func newLerpVertexIter(v0, v1 renderVertex, startT, incT float64) lerpVertexIter {
	diffXYZ := v1.XYZ.Sub(v0.XYZ)
	diffRGB := v1.RGB.Sub(v0.RGB)
	diffUV := v1.UV.Sub(v0.UV)

	return lerpVertexIter{
		value: renderVertex{
			XYZ: diffXYZ.Scale(startT).Add(v0.XYZ),
			RGB: diffRGB.Scale(startT).Add(v0.RGB),
			UV:  diffUV.Scale(startT).Add(v0.UV),
		},
		inc: renderVertex{
			XYZ: diffXYZ.Scale(incT),
			RGB: diffRGB.Scale(incT),
			UV:  diffUV.Scale(incT),
		},
	}
}

func (l *lerpVertexIter) step() {
	l.value.XYZ = l.value.XYZ.Add(l.inc.XYZ)
	l.value.RGB = l.value.RGB.Add(l.inc.RGB)
	l.value.UV = l.value.UV.Add(l.inc.UV)
}

// rasterizeTriangle converts a fully-clipped, fully-projected triangle
// to screen space and fills it scanline by scanline. The top and
// bottom halves (split at the triangle's middle vertex by y) are each
// walked with a left/right edge interpolator; every scanline is then
// walked pixel by pixel with its own interpolator for z/rgb/uv.
func (r *Renderer) rasterizeTriangle(v0, v1, v2 renderVertex, texture *Texture, camera *Camera) {
	w := float64(r.Image.Width)
	h := float64(r.Image.Height)
	toScreen := func(v *renderVertex) {
		v.XYZ.X = w * 0.5 * (1.0 + v.XYZ.X)
		v.XYZ.Y = h * 0.5 * (1.0 - v.XYZ.Y)
	}
	toScreen(&v0)
	toScreen(&v1)
	toScreen(&v2)

	if v1.XYZ.Y < v0.XYZ.Y {
		v0, v1 = v1, v0
	}
	if v2.XYZ.Y < v1.XYZ.Y {
		v1, v2 = v2, v1
	}
	if v1.XYZ.Y < v0.XYZ.Y {
		v0, v1 = v1, v0
	}

	t := math3d.GetT(v0.XYZ.Y, v2.XYZ.Y, v1.XYZ.Y)
	lin := newLerpVertexIter(v0, v2, t, 0.0)
	v1l := lin.value
	v1r := v1
	if v1r.XYZ.X < v1l.XYZ.X {
		v1l, v1r = v1r, v1l
	}

	ortho := camera.Orthographic

	scanline := func(left, right *lerpVertexIter, y int) {
		lv := left.value
		rv := right.value

		xPixelStart := int(math.Floor(lv.XYZ.X + 0.499))
		xPixelEnd := int(math.Floor(rv.XYZ.X - 0.499))
		xDiff := rv.XYZ.X - lv.XYZ.X
		xTInc := 1.0 / xDiff
		xStartT := (float64(xPixelStart) + 0.5 - lv.XYZ.X) * xTInc
		sc := newLerpVertexIter(lv, rv, xStartT, xTInc)

		pixelIndex := r.Image.Index(xPixelStart, y)
		depthIndex := pixelIndex >> 2

		for x := xPixelStart; x <= xPixelEnd; x++ {
			v := sc.value

			var z float64
			var rgb math3d.Vec3
			var uv math3d.Vec2
			if ortho {
				z = v.XYZ.Z
				rgb = v.RGB
				uv = v.UV
			} else {
				z = 1.0 / v.XYZ.Z
				rgb = v.RGB.Scale(z)
				uv = v.UV.Scale(z)
			}

			pixel := texture.GetPixel(int(uv.X), int(uv.Y))
			pixel.R = int(float64(pixel.R) * rgb.X)
			pixel.G = int(float64(pixel.G) * rgb.Y)
			pixel.B = int(float64(pixel.B) * rgb.Z)
			pixel.Limit()

			if pixel.A > 0 && r.testDepth(depthIndex, z) {
				r.Image.SetPixelIndex(pixelIndex, pixel)
			}

			sc.step()
			pixelIndex += 4
			depthIndex++
		}
		left.step()
		right.step()
	}

	yPixelStart := int(math.Floor(v0.XYZ.Y + 0.5))
	yPixelEnd := int(math.Floor(v1.XYZ.Y - 0.5))
	yDiff := v1.XYZ.Y - v0.XYZ.Y
	yTInc := 1.0 / yDiff
	yStartT := (float64(yPixelStart) + 0.5 - v0.XYZ.Y) * yTInc
	leftEdge := newLerpVertexIter(v0, v1l, yStartT, yTInc)
	rightEdge := newLerpVertexIter(v0, v1r, yStartT, yTInc)
	for y := yPixelStart; y <= yPixelEnd; y++ {
		scanline(&leftEdge, &rightEdge, y)
	}

	yPixelStart = int(math.Floor(v2.XYZ.Y - 0.5))
	yPixelEnd = int(math.Floor(v1.XYZ.Y + 0.5))
	yDiff = v2.XYZ.Y - v1.XYZ.Y
	yTInc = 1.0 / yDiff
	yStartT = (v2.XYZ.Y - (float64(yPixelStart) + 0.5)) * yTInc
	leftEdge = newLerpVertexIter(v2, v1l, yStartT, yTInc)
	rightEdge = newLerpVertexIter(v2, v1r, yStartT, yTInc)
	for y := yPixelStart; y >= yPixelEnd; y-- {
		scanline(&leftEdge, &rightEdge, y)
	}
}
