// Package controls maps held keys to camera input and viewer actions.
//
// It has no SDL dependency: the input package adapts SDL keyboard state to
// the KeyState interface below.
package controls

import "github.com/Faultbox/objscene/internal/engine/camera"

// Key identifies a key the viewer binds.
type Key int

// Bound keys.
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyR
	KeyF
	KeyM
	KeyN
	KeySpace
	KeyL
	KeyComma
	KeyPeriod
	KeyEscape
	KeyF12
	keyCount
)

var keyNames = [...]string{
	KeyW: "W", KeyA: "A", KeyS: "S", KeyD: "D",
	KeyUp: "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyR: "R", KeyF: "F", KeyM: "M", KeyN: "N",
	KeySpace: "Space", KeyL: "L", KeyComma: "Comma", KeyPeriod: "Period",
	KeyEscape: "Escape", KeyF12: "F12",
}

// String returns the key name.
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Keys returns every bound key.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// KeyState reports keyboard state for one frame.
type KeyState interface {
	// Held reports whether the key is down this frame.
	Held(k Key) bool
	// Pressed reports whether the key went down this frame.
	Pressed(k Key) bool
}

// Actions are the non-camera effects of one frame of input.
type Actions struct {
	Quit       bool
	Screenshot bool
	SnapLight  bool
	// SetMode is non-nil when M or N is held.
	SetMode *camera.Mode
	// Rotate is the change to the rotatable objects' Y angle, in steps.
	Rotate float32
}

// Map builds the camera input and actions for one frame. Bindings follow
// the active mode: W/A/S/D drive the fly-through camera, arrows and R/F
// drive the orbit camera. Pointer deltas only reach the fly-through camera.
//
// When several arrows are held the last one checked wins, in the order
// Up, Down, Left, Right.
func Map(keys KeyState, mode camera.Mode, pointerDX, pointerDY float32) (camera.Input, Actions) {
	var act Actions

	act.Quit = keys.Held(KeyEscape)
	act.Screenshot = keys.Pressed(KeyF12)
	act.SnapLight = keys.Held(KeySpace) || keys.Held(KeyL)

	if keys.Held(KeyComma) {
		act.Rotate++
	}
	if keys.Held(KeyPeriod) {
		act.Rotate--
	}

	// N is checked after M so it wins when both are held.
	if keys.Held(KeyM) {
		m := camera.ModeOrbit
		act.SetMode = &m
		mode = m
	}
	if keys.Held(KeyN) {
		m := camera.ModeFlyThrough
		act.SetMode = &m
		mode = m
	}

	var in camera.Input
	switch mode {
	case camera.ModeOrbit:
		if keys.Held(KeyUp) {
			in.OrbitX, in.OrbitY = 0, -1
		}
		if keys.Held(KeyDown) {
			in.OrbitX, in.OrbitY = 0, 1
		}
		if keys.Held(KeyLeft) {
			in.OrbitX, in.OrbitY = -1, 0
		}
		if keys.Held(KeyRight) {
			in.OrbitX, in.OrbitY = 1, 0
		}
		if keys.Held(KeyR) {
			in.Zoom--
		}
		if keys.Held(KeyF) {
			in.Zoom++
		}
	default:
		for _, b := range flyBindings {
			if keys.Held(b.key) {
				in.Moves = append(in.Moves, b.dir)
			}
		}
		in.PointerDX, in.PointerDY = pointerDX, pointerDY
	}

	return in, act
}

var flyBindings = []struct {
	key Key
	dir camera.Direction
}{
	{KeyW, camera.MoveForward},
	{KeyA, camera.MoveLeft},
	{KeyS, camera.MoveBackward},
	{KeyD, camera.MoveRight},
}
