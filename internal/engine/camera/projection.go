package camera

import "github.com/go-gl/mathgl/mgl32"

// Projection describes a perspective frustum. FOV is vertical, in degrees.
type Projection struct {
	FOV  float32
	Near float32
	Far  float32
}

// Matrix returns the perspective matrix for a viewport. A zero height is
// treated as 1 so a minimised window does not produce NaNs.
func (p Projection) Matrix(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), float32(width)/float32(height), p.Near, p.Far)
}
