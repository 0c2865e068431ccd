// Package camera provides the fly-through and orbit cameras used by the viewer.
package camera

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera defaults.
const (
	DefaultMovementSpeed    = 0.5
	DefaultMouseSensitivity = 0.25

	// MaxPitch keeps the view away from the poles where Front and WorldUp
	// would become parallel.
	MaxPitch = 89.0
	MinPitch = -MaxPitch
)

// ErrDegenerateOrbit is returned when the orbit camera would sit on its
// target, leaving no direction to look in.
var ErrDegenerateOrbit = errors.New("degenerate orbit: camera position coincides with target")

// degenerateEpsilon is the smallest vector length still treated as a direction.
const degenerateEpsilon = 1e-6

// Direction is a discrete movement step for the fly-through camera.
type Direction int

const (
	MoveForward Direction = iota
	MoveBackward
	MoveLeft
	MoveRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case MoveForward:
		return "forward"
	case MoveBackward:
		return "backward"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "unknown"
	}
}

// Mode identifies a camera controller variant.
type Mode int

const (
	ModeFlyThrough Mode = iota
	ModeOrbit
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFlyThrough:
		return "fly-through"
	case ModeOrbit:
		return "orbit"
	default:
		return "unknown"
	}
}

// State is the position and orientation basis shared by both controllers.
// Yaw and Pitch are in degrees.
type State struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
}

// newState returns a camera at the origin looking down -Z.
func newState(yaw, pitch float32) State {
	s := State{
		Position:         mgl32.Vec3{0, 0, 0},
		Front:            mgl32.Vec3{0, 0, -1},
		Up:               mgl32.Vec3{0, 1, 0},
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              yaw,
		Pitch:            pitch,
		MovementSpeed:    DefaultMovementSpeed,
		MouseSensitivity: DefaultMouseSensitivity,
	}
	s.Right = s.Front.Cross(s.WorldUp).Normalize()
	return s
}

// View returns the read-only view parameters of s.
func (s *State) View() ViewParameters {
	return ViewParameters{Position: s.Position, Front: s.Front, Up: s.Up}
}

// clampPitch limits Pitch to [MinPitch, MaxPitch].
func (s *State) clampPitch() {
	if s.Pitch > MaxPitch {
		s.Pitch = MaxPitch
	}
	if s.Pitch < MinPitch {
		s.Pitch = MinPitch
	}
}

// basis derives Right and Up for the given front direction. ok is false
// when front is zero or parallel to worldUp.
func basis(front, worldUp mgl32.Vec3) (f, r, u mgl32.Vec3, ok bool) {
	if front.Len() < degenerateEpsilon {
		return f, r, u, false
	}
	f = front.Normalize()
	r = f.Cross(worldUp)
	if r.Len() < degenerateEpsilon {
		return f, r, u, false
	}
	r = r.Normalize()
	u = r.Cross(f).Normalize()
	return f, r, u, true
}

// sphericalDirection converts yaw/pitch in degrees to a unit vector.
func sphericalDirection(yaw, pitch float32) mgl32.Vec3 {
	y := mgl32.DegToRad(yaw)
	p := mgl32.DegToRad(pitch)
	return mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	}
}

// ViewParameters is what the renderer needs each frame.
type ViewParameters struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
}

// ViewMatrix returns the look-at matrix for these parameters.
func (v ViewParameters) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(v.Position, v.Position.Add(v.Front), v.Up)
}

// Input is one frame of camera input.
type Input struct {
	// Moves are fly-through steps, applied in order.
	Moves []Direction

	// PointerDX and PointerDY are pointer deltas with Y already inverted
	// (see PointerTracker).
	PointerDX float32
	PointerDY float32

	// OrbitX and OrbitY are orbit offsets in screen directions.
	OrbitX float32
	OrbitY float32

	// Zoom is a signed number of zoom steps. Positive moves away from the target.
	Zoom float32
}

// Empty reports whether in carries no input.
func (in Input) Empty() bool {
	return len(in.Moves) == 0 &&
		in.PointerDX == 0 && in.PointerDY == 0 &&
		in.OrbitX == 0 && in.OrbitY == 0 &&
		in.Zoom == 0
}

// Controller updates a camera from input and exposes its view.
type Controller interface {
	Update(in Input) (ViewParameters, error)
	View() ViewParameters
	Mode() Mode
}
