package models

import (
	"math"

	"github.com/taigrr/scanraster/pkg/math3d"
)

// GenerateUVSphere procedurally builds a unit UV-sphere with the given
// ring/segment resolution: two pole vertices plus rings*(segments+1)
// interior vertices, triangulated into quads between adjacent rings and
// fans at the poles.
func GenerateUVSphere(rings, segments int, shading Shading) *Mesh {
	var verts []Vertex
	var tris []Triangle

	top := math3d.V3(0, 1, 0)
	verts = append(verts, Vertex{Position: top, RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0.5, 1), Normal: top})
	bottom := math3d.V3(0, -1, 0)
	verts = append(verts, Vertex{Position: bottom, RGB: math3d.V3(1, 1, 1), UV: math3d.V2(0.5, 0), Normal: bottom})

	ringAngleInc := math3d.Radians(175) / float64(rings+1)
	segmentAngleInc := math3d.Radians(360) / float64(segments)
	ringAngle := math3d.Radians(2.5)
	vInc := -1.0 / float64(rings+1)
	uInc := -1.0 / float64(segments)
	v := 1.0 + vInc

	for r := 0; r < rings; r++ {
		ringRadius := math.Sin(ringAngle)
		y := math.Cos(ringAngle)

		segmentAngle := 0.0
		u := 1.0
		for s := 0; s <= segments; s++ {
			x := math.Cos(segmentAngle) * ringRadius
			z := math.Sin(segmentAngle) * ringRadius
			pos := math3d.V3(x, y, z)
			verts = append(verts, Vertex{Position: pos, RGB: math3d.V3(1, 1, 1), UV: math3d.V2(u, v), Normal: pos})

			segmentAngle += segmentAngleInc
			u += uInc
		}
		ringAngle += ringAngleInc
		v += vInc
	}

	ring0Index := 2
	ring1Index := ring0Index + segments + 1
	for r := 0; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			tris = append(tris,
				Triangle{V0: s + ring0Index, V1: s + ring0Index + 1, V2: s + ring1Index + 1},
				Triangle{V0: s + ring1Index + 1, V1: s + ring1Index, V2: s + ring0Index},
			)
		}
		ring0Index = ring1Index
		ring1Index += segments + 1
	}

	for s := 0; s < segments; s++ {
		tris = append(tris,
			Triangle{V0: 0, V1: s + 2 + 1, V2: s + 2},
			Triangle{V0: 1, V1: ring0Index + s, V2: ring0Index + s + 1},
		)
	}

	return NewMesh(verts, tris, shading)
}
