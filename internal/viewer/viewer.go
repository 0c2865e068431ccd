// Package viewer implements the scene viewer main loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/assets"
	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/internal/engine/camera"
	"github.com/Faultbox/objscene/internal/engine/controls"
	"github.com/Faultbox/objscene/internal/engine/debug"
	"github.com/Faultbox/objscene/internal/engine/input"
	"github.com/Faultbox/objscene/internal/engine/lighting"
	"github.com/Faultbox/objscene/internal/engine/renderer"
	"github.com/Faultbox/objscene/internal/engine/scene"
	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/engine/window"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/obj"
)

// Viewer owns the window, GPU resources and per-frame state.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	rig     *camera.Rig
	pointer camera.PointerTracker
	lights  lighting.Set
	scene   *scene.Scene

	meshes   map[string]*renderer.GPUMesh
	textures map[string]*renderer.Texture
	fallback *renderer.Texture

	screenshots *debug.ScreenshotCapture

	watcher     *scene.Watcher
	stopWatcher context.CancelFunc
}

type loadResult struct {
	meshes map[string]*obj.Mesh
	err    error
}

// New loads the scene and opens the window. Meshes and textures are
// decoded on worker goroutines while the window and context are created.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		scene:    scene.New(cfg.Scene),
		lights:   lighting.FromConfig(cfg.Lighting),
		meshes:   make(map[string]*renderer.GPUMesh),
		textures: make(map[string]*renderer.Texture),
	}

	rig, err := newRig(cfg.Camera)
	if err != nil {
		return nil, err
	}
	v.rig = rig

	format, err := debug.ParseFormat(cfg.Screenshots.Format)
	if err != nil {
		return nil, err
	}
	v.screenshots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, "scene", format)

	loadCtx, cancelLoad := context.WithCancel(ctx)
	defer cancelLoad()

	meshes := make(chan loadResult, 1)
	go func() {
		m, err := v.scene.Load(loadCtx, 0)
		meshes <- loadResult{m, err}
	}()

	texAssets := assets.NewManager()
	defer texAssets.Close()
	refs := v.scene.TexturePaths()
	texFailed := make(chan map[string]error, 1)
	go func() {
		paths := make([]string, len(refs))
		for i, r := range refs {
			paths[i] = r.Path
		}
		failed, _ := texAssets.Preload(loadCtx, paths, 0)
		texFailed <- failed
	}()

	v.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := v.window.DrawableSize()
	ww, wh := v.window.GetSize()
	v.log.Debug("window sizes", zap.Int("width", ww), zap.Int("height", wh),
		zap.Int("drawable_width", w), zap.Int("drawable_height", h))
	v.renderer, err = renderer.New(renderer.Config{
		Width:       w,
		Height:      h,
		Multisample: cfg.Window.Samples > 0,
		Background:  mgl32.Vec3(cfg.Scene.Background),
		Projection: camera.Projection{
			FOV:  cfg.Camera.FOV,
			Near: cfg.Camera.Near,
			Far:  cfg.Camera.Far,
		},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	res := <-meshes
	if res.err != nil {
		v.Close()
		return nil, fmt.Errorf("loading scene: %w", res.err)
	}
	for path, m := range res.meshes {
		if err := v.uploadMesh(path, m); err != nil {
			v.Close()
			return nil, err
		}
	}

	for path, err := range <-texFailed {
		v.log.Warn("texture unavailable, drawing untextured", zap.String("path", path), zap.Error(err))
	}
	v.fallback = renderer.UploadTexture(texture.Fallback(), false)
	for _, ref := range refs {
		img, err := texAssets.Texture(ref.Path)
		if err != nil {
			continue
		}
		v.textures[ref.Path] = renderer.UploadTexture(img, ref.Mipmaps)
	}

	if cfg.Scene.Watch {
		if err := v.startWatcher(ctx); err != nil {
			v.log.Warn("hot reload disabled", zap.Error(err))
		}
	}

	v.log.Info("viewer initialized",
		zap.Int("objects", len(v.scene.Objects())),
		zap.Int("meshes", len(v.meshes)),
		zap.Int("textures", len(v.textures)),
		zap.Stringer("mode", v.rig.Mode()),
	)
	return v, nil
}

// newRig builds both cameras from config. The orbit camera is created at
// yaw = pitch = 0 and then moved by the configured offsets.
func newRig(cfg config.CameraConfig) (*camera.Rig, error) {
	fly := camera.NewFlyThrough(cfg.FlyYaw, cfg.FlyPitch)
	fly.MovementSpeed = cfg.MovementSpeed
	fly.MouseSensitivity = cfg.MouseSensitivity

	target := mgl32.Vec3(cfg.OrbitTarget)
	orbit, err := camera.NewOrbit(target, cfg.OrbitDistance)
	if err != nil {
		return nil, fmt.Errorf("orbit camera: %w", err)
	}
	orbit.MovementSpeed = cfg.MovementSpeed
	orbit.MouseSensitivity = cfg.MouseSensitivity
	if err := orbit.Orbit(target, cfg.OrbitDistance, cfg.OrbitXOffset, cfg.OrbitYOffset); err != nil {
		return nil, fmt.Errorf("orbit camera: %w", err)
	}

	return camera.NewRig(fly, orbit), nil
}

func (v *Viewer) uploadMesh(path string, m *obj.Mesh) error {
	g, err := renderer.UploadMesh(m)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	if old, ok := v.meshes[path]; ok {
		old.Delete()
	}
	v.meshes[path] = g
	return nil
}

func (v *Viewer) startWatcher(ctx context.Context) error {
	w, err := scene.NewWatcher(v.scene.MeshPaths(), scene.DefaultDebounce)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithCancel(ctx)
	v.watcher = w
	v.stopWatcher = cancel
	go func() {
		if err := w.Run(wctx); err != nil && !errors.Is(err, context.Canceled) {
			v.log.Warn("watcher stopped", zap.Error(err))
		}
	}()
	v.log.Info("watching meshes for changes", zap.Int("files", len(v.scene.MeshPaths())))
	return nil
}

// Run starts the main loop and returns when the window closes, Escape is
// pressed or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	v.log.Info("starting render loop")

	for v.running {
		if ctx.Err() != nil {
			v.log.Info("interrupted")
			break
		}

		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		if _, _, ok := v.input.Resized(); ok {
			v.renderer.Resize(v.window.DrawableSize())
		}

		act := v.update()
		if !v.running {
			break
		}

		v.drainReloads()
		v.render(now.Sub(start).Seconds())

		if act.Screenshot {
			v.captureScreenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// update applies one frame of input.
func (v *Viewer) update() controls.Actions {
	var dx, dy float32
	if x, y, moved := v.input.MousePosition(); moved {
		dx, dy = v.pointer.Delta(float64(x), float64(y))
	}

	in, act := controls.Map(v.input, v.rig.Mode(), dx, dy)

	if act.Quit {
		v.running = false
		return act
	}
	if act.Rotate != 0 {
		v.scene.Rotate(act.Rotate)
	}
	if act.SetMode != nil && *act.SetMode != v.rig.Mode() {
		v.rig.SetMode(*act.SetMode)
		v.window.SetTitle(fmt.Sprintf("%s (%s)", v.cfg.Window.Title, v.rig.Mode()))
		v.log.Info("camera mode changed", zap.Stringer("mode", v.rig.Mode()))
	}
	if act.SnapLight {
		v.lights.SnapToCamera(v.rig.View())
	}

	if _, err := v.rig.Update(in); err != nil {
		v.log.Warn("camera update rejected, keeping previous view", zap.Error(err))
	}
	return act
}

// drainReloads swaps in any meshes the watcher has reparsed.
func (v *Viewer) drainReloads() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case r, ok := <-v.watcher.Reloads():
			if !ok {
				v.watcher = nil
				return
			}
			if r.Err != nil {
				continue
			}
			if err := v.uploadMesh(r.Path, r.Mesh); err != nil {
				v.log.Warn("mesh upload failed", zap.String("path", r.Path), zap.Error(err))
			}
		default:
			return
		}
	}
}

func (v *Viewer) render(elapsed float64) {
	v.renderer.Begin(v.rig.View(), &v.lights)

	angle := v.scene.Angle()
	for _, o := range v.scene.Objects() {
		tex, ok := v.textures[o.Texture]
		if !ok {
			tex = v.fallback
		}
		v.renderer.Draw(v.meshes[o.MeshPath], tex, o.ModelMatrix(elapsed, angle))
	}

	v.renderer.End()
}

func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.stopWatcher != nil {
		v.stopWatcher()
	}
	for _, m := range v.meshes {
		m.Delete()
	}
	for _, t := range v.textures {
		t.Delete()
	}
	if v.fallback != nil {
		v.fallback.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
