// Package math3d provides the 3D math primitives used by the scanraster
// pipeline: vectors, transform chains, and 4x4 matrices for frustum culling.
package math3d

import "math"

// Vec2 is a plain value object; all operations return a new Vec2 rather
// than mutating the receiver, matching the value semantics the renderer
// relies on when copying attributes down the clip/rasterize pipeline.
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{x, y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a.X * b.X, a.Y * b.Y} }
func (a Vec2) Div(b Vec2) Vec2 { return Vec2{a.X / b.X, a.Y / b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LenSq() float64     { return a.Dot(a) }
func (a Vec2) Len() float64       { return math.Sqrt(a.LenSq()) }

// Normalize must not be called on a zero-length vector; callers hold the
// same precondition the original engine does.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	return Vec2{a.X / l, a.Y / l}
}

func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
