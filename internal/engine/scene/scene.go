// Package scene describes the objects to draw and loads their meshes.
//
// Nothing here touches OpenGL: meshes are parsed into CPU buffers, possibly
// on worker goroutines, and handed to the render thread for upload.
package scene

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/obj"
)

// Scene is the set of placed objects plus the user-controlled rotation.
type Scene struct {
	objects    []Object
	angle      float32 // degrees, applied to rotatable objects
	rotateStep float32
	log        *zap.Logger
}

// New builds a scene from config.
func New(cfg config.SceneConfig) *Scene {
	s := &Scene{
		objects:    make([]Object, 0, len(cfg.Objects)),
		rotateStep: cfg.RotateStep,
		log:        logger.Named("scene"),
	}
	for _, oc := range cfg.Objects {
		s.objects = append(s.objects, newObject(cfg, oc))
	}
	return s
}

// Objects returns the placed objects in draw order.
func (s *Scene) Objects() []Object {
	return s.objects
}

// Rotate adds steps*RotateStep degrees to the rotatable objects' angle.
func (s *Scene) Rotate(steps float32) {
	s.angle += steps * s.rotateStep
}

// Angle returns the user-controlled angle in degrees.
func (s *Scene) Angle() float32 {
	return s.angle
}

// MeshPaths returns each distinct mesh path once, in first-use order.
func (s *Scene) MeshPaths() []string {
	seen := make(map[string]bool, len(s.objects))
	var paths []string
	for _, o := range s.objects {
		if !seen[o.MeshPath] {
			seen[o.MeshPath] = true
			paths = append(paths, o.MeshPath)
		}
	}
	return paths
}

// TexturePaths returns each distinct texture path once with the mipmap
// setting of its first user.
func (s *Scene) TexturePaths() []TextureRef {
	seen := make(map[string]bool, len(s.objects))
	var refs []TextureRef
	for _, o := range s.objects {
		if o.Texture == "" || seen[o.Texture] {
			continue
		}
		seen[o.Texture] = true
		refs = append(refs, TextureRef{Path: o.Texture, Mipmaps: o.Mipmaps})
	}
	return refs
}

// TextureRef names a texture to upload.
type TextureRef struct {
	Path    string
	Mipmaps bool
}

// Load parses every mesh in the scene. Any failure aborts the whole load.
func (s *Scene) Load(ctx context.Context, workers int) (map[string]*obj.Mesh, error) {
	paths := s.MeshPaths()
	s.log.Info("loading meshes", zap.Int("meshes", len(paths)), zap.Int("objects", len(s.objects)))
	meshes, err := LoadMeshes(ctx, paths, workers)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, m := range meshes {
		total += m.VertexCount
	}
	s.log.Info("meshes loaded", zap.Int("vertices", total))
	return meshes, nil
}
