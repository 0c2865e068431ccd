// Package input handles SDL2 input events and keyboard state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/objscene/internal/engine/controls"
)

// EventType classifies processed events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
}

var scancodes = map[controls.Key]sdl.Scancode{
	controls.KeyW:      sdl.SCANCODE_W,
	controls.KeyA:      sdl.SCANCODE_A,
	controls.KeyS:      sdl.SCANCODE_S,
	controls.KeyD:      sdl.SCANCODE_D,
	controls.KeyUp:     sdl.SCANCODE_UP,
	controls.KeyDown:   sdl.SCANCODE_DOWN,
	controls.KeyLeft:   sdl.SCANCODE_LEFT,
	controls.KeyRight:  sdl.SCANCODE_RIGHT,
	controls.KeyR:      sdl.SCANCODE_R,
	controls.KeyF:      sdl.SCANCODE_F,
	controls.KeyM:      sdl.SCANCODE_M,
	controls.KeyN:      sdl.SCANCODE_N,
	controls.KeySpace:  sdl.SCANCODE_SPACE,
	controls.KeyL:      sdl.SCANCODE_L,
	controls.KeyComma:  sdl.SCANCODE_COMMA,
	controls.KeyPeriod: sdl.SCANCODE_PERIOD,
	controls.KeyEscape: sdl.SCANCODE_ESCAPE,
	controls.KeyF12:    sdl.SCANCODE_F12,
}

// Input handles all input processing. It implements controls.KeyState.
type Input struct {
	events []Event

	// keyboard aliases SDL's internal array and is refreshed by PollEvent.
	keyboard []uint8

	mouseMoved bool
	mouseX     int
	mouseY     int
	quit       bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events
	i.mouseMoved = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			i.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.mouseMoved = true
			i.mouseX, i.mouseY = int(e.X), int(e.Y)
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: i.mouseX,
				MouseY: i.mouseY,
			})
		}
	}

	i.keyboard = sdl.GetKeyboardState()
	return i.quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Held reports whether k is currently down.
func (i *Input) Held(k controls.Key) bool {
	sc, ok := scancodes[k]
	if !ok || int(sc) >= len(i.keyboard) {
		return false
	}
	return i.keyboard[sc] != 0
}

// Pressed reports whether k went down during the last Update.
func (i *Input) Pressed(k controls.Key) bool {
	sc, ok := scancodes[k]
	if !ok {
		return false
	}
	return i.IsKeyPressed(sc)
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// MousePosition returns the last pointer position and whether it moved
// during the last Update.
func (i *Input) MousePosition() (x, y int, moved bool) {
	return i.mouseX, i.mouseY, i.mouseMoved
}

// Resized returns the latest window size reported during the last Update.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}
