// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Camera      CameraConfig     `yaml:"camera"`
	Lighting    LightingConfig   `yaml:"lighting"`
	Scene       SceneConfig      `yaml:"scene"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    int    `yaml:"samples"` // MSAA samples, 0 disables
}

// CameraConfig holds the starting state of both cameras and the projection.
type CameraConfig struct {
	FlyYaw   float32 `yaml:"fly_yaw"`
	FlyPitch float32 `yaml:"fly_pitch"`

	OrbitDistance float32    `yaml:"orbit_distance"`
	OrbitXOffset  float32    `yaml:"orbit_x_offset"`
	OrbitYOffset  float32    `yaml:"orbit_y_offset"`
	OrbitTarget   [3]float32 `yaml:"orbit_target"`

	MovementSpeed    float32 `yaml:"movement_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`

	FOV  float32 `yaml:"fov"` // Vertical field of view, degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// LightConfig describes one of the two scene lights.
type LightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
}

// LightingConfig holds the two lights blended by the fragment shader.
// Primary is the one that can be snapped to the camera.
type LightingConfig struct {
	Primary LightConfig `yaml:"primary"`
	Scene   LightConfig `yaml:"scene"`
}

// ObjectConfig places one mesh in the scene.
type ObjectConfig struct {
	Name      string     `yaml:"name"`
	Mesh      string     `yaml:"mesh"`    // Relative to SceneConfig.ModelDir
	Texture   string     `yaml:"texture"` // Relative to SceneConfig.TextureDir
	Mipmaps   bool       `yaml:"mipmaps"`
	Translate [3]float32 `yaml:"translate"`
	RotateY   float32    `yaml:"rotate_y"` // Fixed Y rotation, degrees
	Scale     float32    `yaml:"scale"`
	Spin      float32    `yaml:"spin"`      // Y rotation rate, radians per second
	Rotatable bool       `yaml:"rotatable"` // Follows the user-controlled Y angle
}

// SceneConfig holds asset locations and object placement.
type SceneConfig struct {
	ModelDir   string         `yaml:"model_dir"`
	TextureDir string         `yaml:"texture_dir"`
	Background [3]float32     `yaml:"background"`
	RotateStep float32        `yaml:"rotate_step"` // Degrees per frame for rotatable objects
	Watch      bool           `yaml:"watch"`       // Reload meshes when their files change
	Objects    []ObjectConfig `yaml:"objects"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config describing the stock island scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "OBJ Scene Viewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Samples:    16,
		},
		Camera: CameraConfig{
			FlyYaw:           45,
			FlyPitch:         -15,
			OrbitDistance:    15,
			OrbitXOffset:     360,
			OrbitYOffset:     -45,
			MovementSpeed:    0.5,
			MouseSensitivity: 0.25,
			FOV:              45,
			Near:             0.1,
			Far:              200,
		},
		Lighting: LightingConfig{
			Primary: LightConfig{
				Direction: [3]float32{0, -1, 0},
				Position:  [3]float32{0, 4, 0},
				Color:     [3]float32{1, 1, 1},
			},
			Scene: LightConfig{
				Direction: [3]float32{0, -1, 0},
				Position:  [3]float32{0, 8, 0},
				Color:     [3]float32{1, 1, 1},
			},
		},
		Scene: SceneConfig{
			ModelDir:   "models",
			TextureDir: "textures",
			Background: [3]float32{0.05, 0.15, 0.5},
			RotateStep: 5,
			Objects:    defaultObjects(),
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

func defaultObjects() []ObjectConfig {
	return []ObjectConfig{
		{Name: "island", Mesh: "island.obj", Texture: "island.bmp", Mipmaps: true, RotateY: 180, Scale: 0.225},
		{Name: "stadium", Mesh: "stadium.obj", Texture: "stadium.bmp", Scale: 0.15, Spin: 0.25},
		{Name: "podium", Mesh: "podium.obj", Texture: "podium.bmp", RotateY: 45, Scale: 0.4},
		{Name: "metalgreymon", Mesh: "metalgreymon.obj", Texture: "metalgreymon.bmp", Mipmaps: true,
			Translate: [3]float32{-0.2, 0.5, 0.1}, RotateY: 210, Scale: 0.55},
		{Name: "weregarurumon", Mesh: "weregarurumon.obj", Texture: "weregarurumon.bmp", Mipmaps: true,
			Translate: [3]float32{0.1, 0.5, -0.2}, RotateY: 230, Scale: 0.55},
		{Name: "agumon", Mesh: "agumon.obj", Texture: "agumon.bmp",
			Translate: [3]float32{0, 0, -1.25}, RotateY: 270, Scale: 0.6},
		{Name: "gabumon", Mesh: "gabumon.obj", Texture: "gabumon.bmp",
			Translate: [3]float32{-1.25, 0, 0}, RotateY: 180, Scale: 0.6},
		{Name: "tree-east", Mesh: "tree.obj", Texture: "tree.bmp",
			Translate: [3]float32{1.5, 0, -1}, Scale: 0.5, Rotatable: true},
		{Name: "tree-west", Mesh: "tree.obj", Texture: "tree.bmp",
			Translate: [3]float32{-1, 0, 1.5}, Scale: 0.5, Rotatable: true},
	}
}

// Validation errors.
var (
	ErrInvalidWindow     = errors.New("window size must be positive")
	ErrInvalidProjection = errors.New("projection planes must satisfy 0 < near < far")
	ErrZeroOrbitDistance = errors.New("orbit distance must not be zero")
	ErrInvalidObject     = errors.New("invalid scene object")
	ErrInvalidFormat     = errors.New("screenshot format must be png or webp")
)

// Validate checks settings that would otherwise fail later at render time.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("%w: near=%v far=%v", ErrInvalidProjection, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.OrbitDistance == 0 {
		return ErrZeroOrbitDistance
	}
	for i, obj := range c.Scene.Objects {
		if obj.Mesh == "" {
			return fmt.Errorf("%w: object %d (%q) has no mesh", ErrInvalidObject, i, obj.Name)
		}
		if obj.Scale == 0 {
			return fmt.Errorf("%w: object %d (%q) has zero scale", ErrInvalidObject, i, obj.Name)
		}
	}
	switch c.Screenshots.Format {
	case "png", "webp":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Screenshots.Format)
	}
	return nil
}
