package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ZoomStep is the distance change per zoom step, in units of MovementSpeed.
const ZoomStep = 0.2

// Orbit places the camera on a sphere around the origin and keeps it
// looking at Target.
//
// Offsets are subtracted from yaw and pitch: they describe where the
// camera should travel on screen, not how the view rotates. This is the
// opposite sign of FlyThrough.Look.
type Orbit struct {
	State

	Target   mgl32.Vec3
	Distance float32
}

// NewOrbit creates an orbit camera at yaw = pitch = 0 and places it.
func NewOrbit(target mgl32.Vec3, distance float32) (*Orbit, error) {
	c := &Orbit{
		State:    newState(0, 0),
		Target:   target,
		Distance: distance,
	}
	if err := c.Orbit(target, distance, 0, 0); err != nil {
		return nil, err
	}
	return c, nil
}

// Orbit accumulates the offsets, scaled by MovementSpeed, and repositions
// the camera at distance from the origin looking at target. On
// ErrDegenerateOrbit the camera is left untouched.
func (c *Orbit) Orbit(target mgl32.Vec3, distance, xoffset, yoffset float32) error {
	yaw := c.Yaw - xoffset*c.MovementSpeed
	pitch := c.Pitch - yoffset*c.MovementSpeed
	if pitch > MaxPitch {
		pitch = MaxPitch
	}
	if pitch < MinPitch {
		pitch = MinPitch
	}

	if distance == 0 {
		return fmt.Errorf("%w: distance is 0", ErrDegenerateOrbit)
	}
	pos := sphericalDirection(yaw, pitch).Mul(distance)

	front, right, up, ok := basis(target.Sub(pos), c.WorldUp)
	if !ok {
		return fmt.Errorf("%w: position %v, target %v", ErrDegenerateOrbit, pos, target)
	}

	c.Yaw, c.Pitch = yaw, pitch
	c.Position = pos
	c.Front, c.Right, c.Up = front, right, up
	return nil
}

// Zoom changes the tracked distance by steps*ZoomStep*MovementSpeed.
// The distance is not clamped.
func (c *Orbit) Zoom(steps float32) {
	c.Distance += steps * ZoomStep * c.MovementSpeed
}

// Update zooms and then orbits around Target. If the result would be
// degenerate the distance change is rolled back and the error returned.
func (c *Orbit) Update(in Input) (ViewParameters, error) {
	if in.Zoom == 0 && in.OrbitX == 0 && in.OrbitY == 0 {
		return c.View(), nil
	}

	prev := c.Distance
	c.Zoom(in.Zoom)
	if err := c.Orbit(c.Target, c.Distance, in.OrbitX, in.OrbitY); err != nil {
		c.Distance = prev
		return c.View(), err
	}
	return c.View(), nil
}

// Mode returns ModeOrbit.
func (c *Orbit) Mode() Mode {
	return ModeOrbit
}
