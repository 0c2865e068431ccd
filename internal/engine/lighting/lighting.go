// Package lighting holds the two scene lights passed to the fragment shader.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/internal/engine/camera"
)

// Light is a positioned light with a facing direction.
type Light struct {
	Direction mgl32.Vec3
	Position  mgl32.Vec3
	Color     mgl32.Vec3
}

// Uniform names, indexed like Set.Lights.
var uniformNames = [2]string{"light_1", "light_2"}

// UniformName returns the GLSL struct name of light i.
func UniformName(i int) string {
	return uniformNames[i]
}

// Set is the pair of lights used by the scene shader. Lights[0] can be
// snapped to the camera; Lights[1] stays fixed.
type Set struct {
	Lights [2]Light
}

// FromConfig builds a Set from config values.
func FromConfig(cfg config.LightingConfig) Set {
	return Set{Lights: [2]Light{fromConfig(cfg.Primary), fromConfig(cfg.Scene)}}
}

func fromConfig(c config.LightConfig) Light {
	return Light{
		Direction: mgl32.Vec3(c.Direction),
		Position:  mgl32.Vec3(c.Position),
		Color:     mgl32.Vec3(c.Color),
	}
}

// Primary returns the light that follows the camera on request.
func (s *Set) Primary() *Light {
	return &s.Lights[0]
}

// SnapToCamera moves the primary light to the camera and points it along
// the camera's front vector.
func (s *Set) SnapToCamera(v camera.ViewParameters) {
	s.Lights[0].Position = v.Position
	s.Lights[0].Direction = v.Front
}
