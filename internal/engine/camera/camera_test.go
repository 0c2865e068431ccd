package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertOrthonormal(t *testing.T, s State) {
	t.Helper()
	assert.InDelta(t, 1, s.Front.Len(), tol, "|front|")
	assert.InDelta(t, 1, s.Right.Len(), tol, "|right|")
	assert.InDelta(t, 1, s.Up.Len(), tol, "|up|")
	assert.InDelta(t, 0, s.Front.Dot(s.Right), tol, "front·right")
	assert.InDelta(t, 0, s.Front.Dot(s.Up), tol, "front·up")
	assert.InDelta(t, 0, s.Right.Dot(s.Up), tol, "right·up")

	// Right-handed basis: front × up == right.
	cross := s.Front.Cross(s.Up)
	assert.InDelta(t, 1, cross.Dot(s.Right), tol, "handedness")
}

func vecInDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v vs %v", i, want, got)
	}
}

func TestNewFlyThrough(t *testing.T) {
	c := NewFlyThrough(0, 0)

	vecInDelta(t, mgl32.Vec3{0, 0, 0}, c.Position)
	vecInDelta(t, mgl32.Vec3{1, 0, 0}, c.Front)
	vecInDelta(t, mgl32.Vec3{0, 0, 1}, c.Right)
	vecInDelta(t, mgl32.Vec3{0, 1, 0}, c.Up)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.WorldUp)
	assert.Equal(t, float32(DefaultMovementSpeed), c.MovementSpeed)
	assert.Equal(t, float32(DefaultMouseSensitivity), c.MouseSensitivity)
	assertOrthonormal(t, c.State)
}

func TestFlyThrough_Move(t *testing.T) {
	c := NewFlyThrough(0, 0)
	front, right := c.Front, c.Right

	c.Move(MoveForward)
	vecInDelta(t, front.Mul(0.5), c.Position)
	c.Move(MoveBackward)
	vecInDelta(t, mgl32.Vec3{}, c.Position)
	c.Move(MoveRight)
	vecInDelta(t, right.Mul(0.5), c.Position)
	c.Move(MoveLeft)
	c.Move(MoveLeft)
	vecInDelta(t, right.Mul(-0.5), c.Position)

	// Orientation is untouched by movement.
	assert.Equal(t, front, c.Front)
	assert.Equal(t, right, c.Right)
}

func TestFlyThrough_Look(t *testing.T) {
	c := NewFlyThrough(0, 0)

	// 360 units at 0.25 sensitivity = 90 degrees of yaw.
	c.Look(360, 0)
	assert.InDelta(t, 90, c.Yaw, tol)
	vecInDelta(t, mgl32.Vec3{0, 0, 1}, c.Front)

	c.Look(0, 120)
	assert.InDelta(t, 30, c.Pitch, tol)
	assert.InDelta(t, math.Sin(30*math.Pi/180), c.Front.Y(), tol)
	assertOrthonormal(t, c.State)
}

func TestFlyThrough_PitchClamp(t *testing.T) {
	c := NewFlyThrough(45, -15)
	limit := math.Sin(89 * math.Pi / 180)

	for i := 0; i < 100; i++ {
		c.Look(0, 1000)
		require.LessOrEqual(t, c.Pitch, float32(89))
		require.Less(t, c.Front.Y(), float32(1))
		assert.LessOrEqual(t, float64(c.Front.Y()), limit+tol)
	}
	assert.Equal(t, float32(89), c.Pitch)
	assert.InDelta(t, limit, c.Front.Y(), tol)

	for i := 0; i < 100; i++ {
		c.Look(0, -1000)
	}
	assert.Equal(t, float32(-89), c.Pitch)
	assert.InDelta(t, -limit, c.Front.Y(), tol)
	assertOrthonormal(t, c.State)
}

func TestFlyThrough_YawUnbounded(t *testing.T) {
	c := NewFlyThrough(0, 0)
	c.Look(4*360*4, 0)
	assert.InDelta(t, 1440, c.Yaw, tol)
	assert.InDelta(t, 1, c.Front.X(), 1e-4)
	assert.InDelta(t, 0, c.Front.Z(), 1e-4)
}

func TestFlyThrough_Update(t *testing.T) {
	c := NewFlyThrough(0, 0)
	view, err := c.Update(Input{Moves: []Direction{MoveForward, MoveForward}, PointerDX: 360})
	require.NoError(t, err)

	// Moves are applied before the look.
	vecInDelta(t, mgl32.Vec3{1, 0, 0}, view.Position)
	vecInDelta(t, mgl32.Vec3{0, 0, 1}, view.Front)
	assert.Equal(t, ModeFlyThrough, c.Mode())
}

func TestNewOrbit(t *testing.T) {
	c, err := NewOrbit(mgl32.Vec3{}, 10)
	require.NoError(t, err)

	vecInDelta(t, mgl32.Vec3{10, 0, 0}, c.Position)
	vecInDelta(t, mgl32.Vec3{-1, 0, 0}, c.Front)
	assertOrthonormal(t, c.State)
}

func TestOrbit_SignConvention(t *testing.T) {
	orbit, err := NewOrbit(mgl32.Vec3{}, 10)
	require.NoError(t, err)
	fly := NewFlyThrough(0, 0)

	require.NoError(t, orbit.Orbit(mgl32.Vec3{}, 10, 1, 0))
	fly.Look(1, 0)

	assert.Less(t, orbit.Yaw, float32(0), "orbit yaw decreases")
	assert.Greater(t, fly.Yaw, float32(0), "fly-through yaw increases")
	assert.InDelta(t, -0.5, orbit.Yaw, tol)

	// Negative yaw puts the camera on the -Z side of the sphere.
	assert.Less(t, orbit.Position.Z(), float32(0))
	assert.InDelta(t, 10, orbit.Position.Len(), 1e-4)

	require.NoError(t, orbit.Orbit(mgl32.Vec3{}, 10, 0, 1))
	assert.InDelta(t, -0.5, orbit.Pitch, tol)
	assert.Less(t, orbit.Position.Y(), float32(0))
}

func TestOrbit_LooksAtTarget(t *testing.T) {
	target := mgl32.Vec3{1, 2, 3}
	c, err := NewOrbit(target, 15)
	require.NoError(t, err)

	require.NoError(t, c.Orbit(target, 15, 360, -45))
	assert.InDelta(t, -180, c.Yaw, tol)
	assert.InDelta(t, 22.5, c.Pitch, tol)
	assert.InDelta(t, 15, c.Position.Len(), 1e-4)

	want := target.Sub(c.Position).Normalize()
	vecInDelta(t, want, c.Front)
	assertOrthonormal(t, c.State)
}

func TestOrbit_PitchClamp(t *testing.T) {
	c, err := NewOrbit(mgl32.Vec3{}, 5)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		require.NoError(t, c.Orbit(mgl32.Vec3{}, 5, 0, -100))
	}
	assert.Equal(t, float32(89), c.Pitch)
	assertOrthonormal(t, c.State)

	for i := 0; i < 50; i++ {
		require.NoError(t, c.Orbit(mgl32.Vec3{}, 5, 0, 100))
	}
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestOrbit_DegenerateDistance(t *testing.T) {
	c, err := NewOrbit(mgl32.Vec3{}, 10)
	require.NoError(t, err)
	before := c.State

	err = c.Orbit(mgl32.Vec3{}, 0, 3, 3)
	assert.ErrorIs(t, err, ErrDegenerateOrbit)
	assert.Equal(t, before, c.State, "state untouched on error")

	_, err = NewOrbit(mgl32.Vec3{}, 0)
	assert.ErrorIs(t, err, ErrDegenerateOrbit)
}

func TestOrbit_TargetOnCamera(t *testing.T) {
	c, err := NewOrbit(mgl32.Vec3{}, 10)
	require.NoError(t, err)

	// Camera at (10, 0, 0) and target at the same point.
	err = c.Orbit(mgl32.Vec3{10, 0, 0}, 10, 0, 0)
	assert.ErrorIs(t, err, ErrDegenerateOrbit)
}

func TestOrbit_NegativeDistance(t *testing.T) {
	c, err := NewOrbit(mgl32.Vec3{}, -10)
	require.NoError(t, err)
	vecInDelta(t, mgl32.Vec3{-10, 0, 0}, c.Position)
	vecInDelta(t, mgl32.Vec3{1, 0, 0}, c.Front)
}

func TestOrbit_UpdateZoom(t *testing.T) {
	c, err := NewOrbit(mgl32.Vec3{}, 15)
	require.NoError(t, err)

	view, err := c.Update(Input{Zoom: -10})
	require.NoError(t, err)
	assert.InDelta(t, 14, c.Distance, tol)
	assert.InDelta(t, 14, view.Position.Len(), 1e-4)

	// Zooming onto the target is rejected and rolled back.
	c.Distance = 0.1
	_, err = c.Update(Input{Zoom: -1})
	assert.ErrorIs(t, err, ErrDegenerateOrbit)
	assert.InDelta(t, 0.1, c.Distance, tol)
}

func TestOrbit_IgnoresPointer(t *testing.T) {
	c, err := NewOrbit(mgl32.Vec3{}, 10)
	require.NoError(t, err)
	before := c.State

	_, err = c.Update(Input{PointerDX: 50, PointerDY: 50, Moves: []Direction{MoveForward}})
	require.NoError(t, err)
	assert.Equal(t, before, c.State)
}

func TestOrthonormalAfterRandomUpdates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fly := NewFlyThrough(45, -15)
	orbit, err := NewOrbit(mgl32.Vec3{0.5, -0.25, 1}, 15)
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		fly.Move(Direction(rng.Intn(4)))
		fly.Look(float32(rng.NormFloat64()*200), float32(rng.NormFloat64()*200))
		assertOrthonormal(t, fly.State)

		x := float32(rng.Intn(3) - 1)
		y := float32(rng.Intn(3) - 1)
		dist := 5 + rng.Float32()*30
		if err := orbit.Orbit(orbit.Target, dist, x*float32(rng.Intn(200)), y*float32(rng.Intn(200))); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		assertOrthonormal(t, orbit.State)
		if t.Failed() {
			t.Fatalf("orthonormality broken at step %d", i)
		}
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewFlyThrough(-90, 0) // looking down -Z
	c.Position = mgl32.Vec3{0, 0, 5}
	view := c.View().ViewMatrix()

	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0})
	for i := range want {
		assert.InDelta(t, want[i], view[i], 1e-5, "element %d: got %v want %v", i, view, want)
	}

	// The origin ends up 5 units in front of the eye.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, p.Z(), 1e-4)
}

func TestInputEmpty(t *testing.T) {
	assert.True(t, Input{}.Empty())
	assert.False(t, Input{Zoom: 1}.Empty())
	assert.False(t, Input{Moves: []Direction{MoveLeft}}.Empty())
	assert.False(t, Input{PointerDY: -1}.Empty())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "forward", MoveForward.String())
	assert.Equal(t, "right", MoveRight.String())
	assert.Equal(t, "unknown", Direction(9).String())
	assert.Equal(t, "orbit", ModeOrbit.String())
	assert.Equal(t, "fly-through", ModeFlyThrough.String())
}

func TestProjection_Matrix(t *testing.T) {
	p := Projection{FOV: 45, Near: 0.1, Far: 200}

	got := p.Matrix(800, 600)
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 200)
	assert.True(t, got.ApproxEqual(want))

	// A point on the near plane maps to NDC depth -1.
	clip := got.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	assert.InDelta(t, -1, clip.Z()/clip.W(), 1e-4)

	degenerate := p.Matrix(800, 0)
	for _, v := range degenerate {
		assert.False(t, math.IsNaN(float64(v)), "NaN in projection for zero height")
	}
}
