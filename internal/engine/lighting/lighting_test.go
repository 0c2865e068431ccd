package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/internal/engine/camera"
)

func TestFromConfig(t *testing.T) {
	s := FromConfig(config.Default().Lighting)

	assert.Equal(t, mgl32.Vec3{0, 4, 0}, s.Lights[0].Position)
	assert.Equal(t, mgl32.Vec3{0, 8, 0}, s.Lights[1].Position)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, s.Lights[1].Direction)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Lights[1].Color)
	assert.Same(t, &s.Lights[0], s.Primary())
}

func TestSnapToCamera(t *testing.T) {
	s := FromConfig(config.Default().Lighting)
	scene := s.Lights[1]

	fly := camera.NewFlyThrough(45, -15)
	fly.Position = mgl32.Vec3{3, 2, 1}
	s.SnapToCamera(fly.View())

	assert.Equal(t, fly.Position, s.Lights[0].Position)
	assert.Equal(t, fly.Front, s.Lights[0].Direction)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Lights[0].Color, "colour is kept")
	assert.Equal(t, scene, s.Lights[1], "scene light is fixed")
}

func TestUniformName(t *testing.T) {
	assert.Equal(t, "light_1", UniformName(0))
	assert.Equal(t, "light_2", UniformName(1))
}
