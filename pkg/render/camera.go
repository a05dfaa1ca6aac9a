package render

import (
	"math"

	"github.com/taigrr/scanraster/pkg/math3d"
)

// maxPitch bounds Camera.Pitch to +/-89.9 degrees, matching the source's
// limitPitch (it used a slightly looser +/-(pi/2 - 0.01) in one revision;
// this spec's exact bound is kept instead).
var maxPitch = math3d.Radians(89.9)

// Camera holds position/orientation/projection scalars plus the derived
// world->view transform chain. Every setter updates both the scalar and
// the matching Transform link so the Combined chain returned by
// Transform() always reflects the current state.
type Camera struct {
	Orthographic bool
	FOV          float64
	Aspect       float64
	NearClip     float64
	Position     math3d.Vec3
	Yaw          float64
	Pitch        float64
	Roll         float64

	perspective float64 // tan(FOV/2)

	positionTransform math3d.Translate
	yawTransform      math3d.Rotate
	pitchTransform    math3d.Rotate
	rollTransform     math3d.Rotate
}

// NewCamera builds a camera at position with zero yaw, pitch and roll,
// looking down -Z.
func NewCamera(orthographic bool, fov, aspect, nearClip float64, position math3d.Vec3) *Camera {
	c := &Camera{Orthographic: orthographic, NearClip: nearClip}
	c.SetFOV(fov)
	c.SetAspect(aspect)
	c.SetPosition(position)
	c.SetYaw(0)
	c.SetPitch(0)
	c.SetRoll(0)
	return c
}

func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.perspective = math.Tan(fov / 2)
}

func (c *Camera) Perspective() float64 { return c.perspective }

func (c *Camera) SetAspect(aspect float64) { c.Aspect = aspect }
func (c *Camera) SetNearClip(n float64)    { c.NearClip = n }

func (c *Camera) SetPosition(position math3d.Vec3) {
	c.Position = position
	c.positionTransform = math3d.NewTranslate(position.Negate())
}

func (c *Camera) Translate(delta math3d.Vec3) {
	c.SetPosition(c.Position.Add(delta))
}

func (c *Camera) SetYaw(yaw float64) {
	c.Yaw = yaw
	c.yawTransform = math3d.NewRotate(math3d.AxisY, -yaw)
}

func (c *Camera) RotateYaw(delta float64) { c.SetYaw(c.Yaw + delta) }

func (c *Camera) SetPitch(pitch float64) {
	c.Pitch = clampPitch(pitch)
	c.pitchTransform = math3d.NewRotate(math3d.AxisX, -c.Pitch)
}

func (c *Camera) RotatePitch(delta float64) { c.SetPitch(c.Pitch + delta) }

func (c *Camera) SetRoll(roll float64) {
	c.Roll = roll
	c.rollTransform = math3d.NewRotate(math3d.AxisZ, -roll)
}

func (c *Camera) RotateRoll(delta float64) { c.SetRoll(c.Roll + delta) }

func clampPitch(pitch float64) float64 {
	if pitch > maxPitch {
		return maxPitch
	}
	if pitch < -maxPitch {
		return -maxPitch
	}
	return pitch
}

// Transform returns the camera's world->view transform chain:
// [T(-position), R_Y(-yaw), R_X(-pitch), R_Z(-roll)].
func (c *Camera) Transform() math3d.Combined {
	return math3d.NewCombined(c.positionTransform, c.yawTransform, c.pitchTransform, c.rollTransform)
}

// Forward returns R_Y(yaw)*R_X(pitch)*R_Z(roll)*(0,0,-1) in world space.
func (c *Camera) Forward() math3d.Vec3 {
	roll := math3d.NewRotate(math3d.AxisZ, c.Roll)
	pitch := math3d.NewRotate(math3d.AxisX, c.Pitch)
	yaw := math3d.NewRotate(math3d.AxisY, c.Yaw)
	return yaw.Apply(pitch.Apply(roll.Apply(math3d.Vec3{X: 0, Y: 0, Z: -1})))
}

func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(math3d.Vec3{X: 0, Y: 1, Z: 0}).Normalize()
}

func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// Front is Forward projected onto the ground plane, for WASD walk.
func (c *Camera) Front() math3d.Vec3 {
	f := c.Forward()
	f.Y = 0
	return f.Normalize()
}
