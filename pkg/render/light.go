package render

import "github.com/taigrr/scanraster/pkg/math3d"

// LightKind tags the active variant of a LightSource.
type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
	LightAmbient
)

// PointLight falls off with distance: brightness scales by incidence
// angle, then dims linearly to zero at Attenuation units away.
type PointLight struct {
	Color       math3d.Vec3
	Attenuation float64
	Position    math3d.Vec3
}

// DirectionalLight has no position, only an incoming direction.
type DirectionalLight struct {
	Color     math3d.Vec3
	Direction math3d.Vec3
}

// AmbientLight contributes its color unconditionally, regardless of
// normal or position.
type AmbientLight struct {
	Color math3d.Vec3
}

// LightSource is a tagged union over {Point, Directional, Ambient} — a
// safe stand-in for the unchecked union the reference engine used.
// Only the field matching Kind is valid to read.
type LightSource struct {
	Kind        LightKind
	Point       PointLight
	Directional DirectionalLight
	Ambient     AmbientLight
}

func NewPointLight(color math3d.Vec3, attenuation float64, position math3d.Vec3) LightSource {
	return LightSource{Kind: LightPoint, Point: PointLight{color, attenuation, position}}
}

func NewDirectionalLight(color, direction math3d.Vec3) LightSource {
	return LightSource{Kind: LightDirectional, Directional: DirectionalLight{color, direction}}
}

func NewAmbientLight(color math3d.Vec3) LightSource {
	return LightSource{Kind: LightAmbient, Ambient: AmbientLight{color}}
}

// Contribution computes this light's additive contribution at a
// surface point with unit normal n.
func (l LightSource) Contribution(point, n math3d.Vec3) math3d.Vec3 {
	switch l.Kind {
	case LightPoint:
		toLight := l.Point.Position.Sub(point)
		dist := toLight.Len()
		brightness := max(0, toLight.Dot(n)/dist)
		dim := max(0, 1-dist/l.Point.Attenuation)
		return l.Point.Color.Scale(brightness * dim)
	case LightDirectional:
		toLight := l.Directional.Direction.Negate()
		brightness := max(0, toLight.Dot(n)/toLight.Len())
		return l.Directional.Color.Scale(brightness)
	case LightAmbient:
		return l.Ambient.Color
	}
	return math3d.Vec3{}
}
