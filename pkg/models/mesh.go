// Package models holds the mesh data model and its external loaders
// (OBJ parsing, glTF parsing, procedural UV-sphere generation). These
// loaders are mechanical producers of the data model the rasterizer
// expects; the rasterizer itself only ever sees the finished Mesh.
package models

import "github.com/taigrr/scanraster/pkg/math3d"

// Vertex is (xyz, rgb, uv, normal): world-space position, per-vertex
// color (modulated by lighting at render time), texture coordinates
// with v increasing upward, and a unit-length normal.
type Vertex struct {
	Position math3d.Vec3
	RGB      math3d.Vec3
	UV       math3d.Vec2
	Normal   math3d.Vec3
}

// Triangle is three indices into a Mesh's vertex array. Winding is
// counter-clockwise when viewed from outside for a front face.
type Triangle struct {
	V0, V1, V2 int
}

// Shading selects how Mesh construction assigns per-vertex normals.
type Shading int

const (
	// KeepNormals re-normalizes the author-supplied vertex normals.
	KeepNormals Shading = iota
	// MakeFlat duplicates vertices so every triangle owns three unique
	// copies carrying its face normal, producing a faceted look.
	MakeFlat
)

// Mesh is a vertex array, a triangle index array, and a per-face normal
// array (length equal to the triangle count).
type Mesh struct {
	Vertices    []Vertex
	Triangles   []Triangle
	FaceNormals []math3d.Vec3
}

// NewMesh computes face normals for every triangle, then applies the
// requested shading mode. Face normals are always computed first and
// pushed in triangle order; only afterward does the shading mode decide
// what happens to vertex normals.
func NewMesh(vertices []Vertex, triangles []Triangle, shading Shading) *Mesh {
	m := &Mesh{Vertices: vertices, Triangles: triangles}
	m.computeNormals(shading)
	return m
}

func (m *Mesh) computeNormals(shading Shading) {
	m.FaceNormals = make([]math3d.Vec3, len(m.Triangles))
	for i, tri := range m.Triangles {
		p0 := m.Vertices[tri.V0].Position
		p1 := m.Vertices[tri.V1].Position
		p2 := m.Vertices[tri.V2].Position
		m.FaceNormals[i] = p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	}

	switch shading {
	case KeepNormals:
		for i := range m.Vertices {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
		}
	case MakeFlat:
		newVertices := make([]Vertex, 0, len(m.Triangles)*3)
		newTriangles := make([]Triangle, 0, len(m.Triangles))
		for i, tri := range m.Triangles {
			normal := m.FaceNormals[i]
			v0, v1, v2 := m.Vertices[tri.V0], m.Vertices[tri.V1], m.Vertices[tri.V2]
			v0.Normal, v1.Normal, v2.Normal = normal, normal, normal

			base := len(newVertices)
			newVertices = append(newVertices, v0, v1, v2)
			newTriangles = append(newTriangles, Triangle{base, base + 1, base + 2})
		}
		m.Vertices = newVertices
		m.Triangles = newTriangles
	}
}

// InvertNormals negates every vertex normal and every face normal.
func (m *Mesh) InvertNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Negate()
	}
	for i := range m.FaceNormals {
		m.FaceNormals[i] = m.FaceNormals[i].Negate()
	}
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) }
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// Bounds returns the axis-aligned min/max corners of the vertex positions.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	return
}
