package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/objscene/internal/engine/camera"
)

type fakeKeys struct {
	held    map[Key]bool
	pressed map[Key]bool
}

func hold(keys ...Key) fakeKeys {
	f := fakeKeys{held: map[Key]bool{}, pressed: map[Key]bool{}}
	for _, k := range keys {
		f.held[k] = true
	}
	return f
}

func (f fakeKeys) Held(k Key) bool    { return f.held[k] }
func (f fakeKeys) Pressed(k Key) bool { return f.pressed[k] }

func TestMap_Idle(t *testing.T) {
	in, act := Map(hold(), camera.ModeFlyThrough, 0, 0)
	assert.True(t, in.Empty())
	assert.Equal(t, Actions{}, act)
}

func TestMap_FlyThrough(t *testing.T) {
	in, act := Map(hold(KeyW, KeyD, KeyUp, KeyR), camera.ModeFlyThrough, 3, -2)

	assert.Equal(t, []camera.Direction{camera.MoveForward, camera.MoveRight}, in.Moves)
	assert.Equal(t, float32(3), in.PointerDX)
	assert.Equal(t, float32(-2), in.PointerDY)
	assert.Zero(t, in.OrbitX, "arrows do nothing in fly-through mode")
	assert.Zero(t, in.OrbitY)
	assert.Zero(t, in.Zoom)
	assert.Nil(t, act.SetMode)
}

func TestMap_Orbit(t *testing.T) {
	tests := []struct {
		name         string
		keys         []Key
		wantX, wantY float32
		wantZoom     float32
	}{
		{"up", []Key{KeyUp}, 0, -1, 0},
		{"down", []Key{KeyDown}, 0, 1, 0},
		{"left", []Key{KeyLeft}, -1, 0, 0},
		{"right", []Key{KeyRight}, 1, 0, 0},
		{"right wins over up", []Key{KeyUp, KeyRight}, 1, 0, 0},
		{"left wins over down", []Key{KeyDown, KeyLeft}, -1, 0, 0},
		{"zoom in", []Key{KeyR}, 0, 0, -1},
		{"zoom out", []Key{KeyF}, 0, 0, 1},
		{"zoom cancels", []Key{KeyR, KeyF}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _ := Map(hold(tt.keys...), camera.ModeOrbit, 5, 5)
			assert.Equal(t, tt.wantX, in.OrbitX)
			assert.Equal(t, tt.wantY, in.OrbitY)
			assert.Equal(t, tt.wantZoom, in.Zoom)
			assert.Zero(t, in.PointerDX, "pointer ignored in orbit mode")
			assert.Zero(t, in.PointerDY)
		})
	}
}

func TestMap_OrbitIgnoresWASD(t *testing.T) {
	in, _ := Map(hold(KeyW, KeyA, KeyS, KeyD), camera.ModeOrbit, 0, 0)
	assert.Empty(t, in.Moves)
}

func TestMap_ModeSwitch(t *testing.T) {
	in, act := Map(hold(KeyM, KeyLeft), camera.ModeFlyThrough, 1, 1)
	require.NotNil(t, act.SetMode)
	assert.Equal(t, camera.ModeOrbit, *act.SetMode)
	assert.Equal(t, float32(-1), in.OrbitX, "new mode applies in the same frame")

	_, act = Map(hold(KeyM, KeyN), camera.ModeOrbit, 0, 0)
	require.NotNil(t, act.SetMode)
	assert.Equal(t, camera.ModeFlyThrough, *act.SetMode, "N takes precedence")
}

func TestMap_Actions(t *testing.T) {
	_, act := Map(hold(KeyEscape, KeyL, KeyComma), camera.ModeFlyThrough, 0, 0)
	assert.True(t, act.Quit)
	assert.True(t, act.SnapLight)
	assert.Equal(t, float32(1), act.Rotate)

	_, act = Map(hold(KeySpace, KeyPeriod), camera.ModeOrbit, 0, 0)
	assert.True(t, act.SnapLight)
	assert.Equal(t, float32(-1), act.Rotate)

	_, act = Map(hold(KeyComma, KeyPeriod), camera.ModeOrbit, 0, 0)
	assert.Zero(t, act.Rotate)
}

func TestMap_ScreenshotOnlyOnPress(t *testing.T) {
	keys := hold(KeyF12)
	_, act := Map(keys, camera.ModeFlyThrough, 0, 0)
	assert.False(t, act.Screenshot, "holding F12 does not repeat")

	keys.pressed[KeyF12] = true
	_, act = Map(keys, camera.ModeFlyThrough, 0, 0)
	assert.True(t, act.Screenshot)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "W", KeyW.String())
	assert.Equal(t, "F12", KeyF12.String())
	assert.Equal(t, "Unknown", Key(-1).String())
	assert.Equal(t, "Unknown", keyCount.String())
	assert.Len(t, Keys(), int(keyCount))
}
