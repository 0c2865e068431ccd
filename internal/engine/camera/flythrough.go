package camera

// FlyThrough is a first-person camera. Position and orientation are
// independent: moving never changes where the camera looks.
type FlyThrough struct {
	State
}

// NewFlyThrough creates a fly-through camera at the origin facing the
// direction given by yaw and pitch in degrees.
func NewFlyThrough(yaw, pitch float32) *FlyThrough {
	c := &FlyThrough{State: newState(yaw, pitch)}
	c.Look(0, 0)
	return c
}

// Move steps the camera one MovementSpeed along Front or Right.
func (c *FlyThrough) Move(dir Direction) {
	switch dir {
	case MoveForward:
		c.Position = c.Position.Add(c.Front.Mul(c.MovementSpeed))
	case MoveBackward:
		c.Position = c.Position.Sub(c.Front.Mul(c.MovementSpeed))
	case MoveLeft:
		c.Position = c.Position.Sub(c.Right.Mul(c.MovementSpeed))
	case MoveRight:
		c.Position = c.Position.Add(c.Right.Mul(c.MovementSpeed))
	}
}

// Look turns the camera by pointer deltas scaled by MouseSensitivity.
// Positive dy pitches up.
func (c *FlyThrough) Look(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity
	c.clampPitch()

	// Pitch is clamped short of the poles, so the basis cannot degenerate.
	c.Front, c.Right, c.Up, _ = basis(sphericalDirection(c.Yaw, c.Pitch), c.WorldUp)
}

// Update applies in.Moves and then the pointer deltas.
func (c *FlyThrough) Update(in Input) (ViewParameters, error) {
	for _, dir := range in.Moves {
		c.Move(dir)
	}
	if in.PointerDX != 0 || in.PointerDY != 0 {
		c.Look(in.PointerDX, in.PointerDY)
	}
	return c.View(), nil
}

// Mode returns ModeFlyThrough.
func (c *FlyThrough) Mode() Mode {
	return ModeFlyThrough
}
