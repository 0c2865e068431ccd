// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/engine/camera"
	"github.com/Faultbox/objscene/internal/engine/lighting"
	"github.com/Faultbox/objscene/internal/engine/renderer/shaders"
	"github.com/Faultbox/objscene/internal/engine/shader"
	"github.com/Faultbox/objscene/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	Multisample bool
	Background  mgl32.Vec3
	Projection  camera.Projection
}

// Renderer draws textured meshes with the two-light scene shader.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	projection mgl32.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if cfg.Multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)

	var err error
	r.program, err = shader.NewProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize. Sizes are in framebuffer pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.projection = r.config.Projection.Matrix(width, height)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame and uploads per-frame uniforms.
func (r *Renderer) Begin(view camera.ViewParameters, lights *lighting.Set) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	r.program.Use()
	r.program.SetMat4("view", view.ViewMatrix())
	r.program.SetMat4("projection", r.projection)
	r.program.SetVec3("camPos", view.Position)
	r.program.SetInt("diffuseTex", 0)

	for i, l := range lights.Lights {
		name := lighting.UniformName(i)
		r.program.SetVec3(name+".lightDirection", l.Direction)
		r.program.SetVec3(name+".lightPos", l.Position)
		r.program.SetVec3(name+".lightColor", l.Color)
	}
}

// Draw renders one mesh with its texture and model matrix.
func (r *Renderer) Draw(mesh *GPUMesh, tex *Texture, model mgl32.Mat4) {
	if mesh == nil {
		return
	}
	r.program.SetMat4("model", model)
	gl.ActiveTexture(gl.TEXTURE0)
	if tex != nil {
		gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	mesh.Draw()
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}
