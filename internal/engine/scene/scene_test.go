package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/pkg/obj"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
`

const twoTriangleOBJ = triangleOBJ + "f 3/1/1 2/1/1 1/1/1\n"

func writeOBJ(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestObject_ModelMatrix(t *testing.T) {
	o := Object{Translate: mgl32.Vec3{1, 2, 3}, RotateY: 90, Scale: 2}

	m := o.ModelMatrix(0, 0)
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})

	// Scale to (2,0,0), rotate +90° about Y to (0,0,-2), then translate.
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 2, p.Y(), 1e-5)
	assert.InDelta(t, 1, p.Z(), 1e-5)
}

func TestObject_Angle(t *testing.T) {
	stadium := Object{Spin: 0.25, Scale: 1}
	assert.InDelta(t, 1, stadium.Angle(4, 0), 1e-6, "t/4 radians")

	tree := Object{Rotatable: true, Scale: 1}
	assert.InDelta(t, mgl32.DegToRad(10), tree.Angle(100, 10), 1e-6)

	podium := Object{RotateY: 45, Scale: 1}
	assert.InDelta(t, mgl32.DegToRad(45), podium.Angle(100, 30), 1e-6, "fixed objects ignore the user angle")
}

func TestNew_Default(t *testing.T) {
	cfg := config.Default().Scene
	s := New(cfg)

	require.Len(t, s.Objects(), 9)
	assert.Equal(t, filepath.Join("models", "island.obj"), s.Objects()[0].MeshPath)
	assert.Equal(t, filepath.Join("textures", "island.bmp"), s.Objects()[0].Texture)

	// Both trees share tree.obj and tree.bmp.
	assert.Len(t, s.MeshPaths(), 8)
	assert.Len(t, s.TexturePaths(), 8)
	assert.True(t, s.TexturePaths()[0].Mipmaps, "island uses mipmaps")
}

func TestScene_Rotate(t *testing.T) {
	s := New(config.SceneConfig{RotateStep: 5})
	s.Rotate(1)
	s.Rotate(1)
	s.Rotate(-1)
	assert.Equal(t, float32(5), s.Angle())
}

func TestLoadMeshes(t *testing.T) {
	dir := t.TempDir()
	a := writeOBJ(t, dir, "a.obj", triangleOBJ)
	b := writeOBJ(t, dir, "b.obj", twoTriangleOBJ)

	meshes, err := LoadMeshes(context.Background(), []string{a, b, a}, 2)
	require.NoError(t, err)
	require.Len(t, meshes, 2)
	assert.Equal(t, 3, meshes[a].VertexCount)
	assert.Equal(t, 6, meshes[b].VertexCount)
	assert.Len(t, meshes[b].Vertices, 6*obj.Stride)
}

func TestLoadMeshes_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeOBJ(t, dir, "good.obj", triangleOBJ)
	quad := writeOBJ(t, dir, "quad.obj", "v 0 0 0\nf 1/1/1 1/1/1 1/1/1 1/1/1\n")
	outOfRange := writeOBJ(t, dir, "oor.obj", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 1/1/1\n")

	_, err := LoadMeshes(context.Background(), []string{good, filepath.Join(dir, "missing.obj")}, 0)
	assert.ErrorIs(t, err, obj.ErrFileNotFound)

	_, err = LoadMeshes(context.Background(), []string{good, quad}, 1)
	assert.ErrorIs(t, err, obj.ErrMalformedFace)

	_, err = LoadMeshes(context.Background(), []string{outOfRange}, 1)
	assert.ErrorIs(t, err, obj.ErrIndexOutOfRange)
}

func TestLoadMeshes_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeOBJ(t, dir, "a.obj", triangleOBJ)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadMeshes(ctx, []string{path}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScene_Load(t *testing.T) {
	dir := t.TempDir()
	writeOBJ(t, dir, "tri.obj", triangleOBJ)

	s := New(config.SceneConfig{
		ModelDir: dir,
		Objects: []config.ObjectConfig{
			{Name: "one", Mesh: "tri.obj", Scale: 1},
			{Name: "two", Mesh: "tri.obj", Scale: 2},
		},
	})

	meshes, err := s.Load(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Equal(t, 3, meshes[filepath.Join(dir, "tri.obj")].VertexCount)
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeOBJ(t, dir, "tri.obj", triangleOBJ)
	writeOBJ(t, dir, "other.obj", triangleOBJ)

	w, err := NewWatcher([]string{path}, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Unwatched files in the same directory are ignored.
	writeOBJ(t, dir, "other.obj", twoTriangleOBJ)
	writeOBJ(t, dir, "tri.obj", twoTriangleOBJ)

	select {
	case r := <-w.Reloads():
		require.NoError(t, r.Err)
		assert.Equal(t, path, r.Path)
		require.NotNil(t, r.Mesh)
		assert.Equal(t, 6, r.Mesh.VertexCount)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	writeOBJ(t, dir, "tri.obj", "v 0 0 0\nf 1/1/1 1/1/1\n")
	select {
	case r := <-w.Reloads():
		assert.ErrorIs(t, r.Err, obj.ErrMalformedFace)
		assert.Nil(t, r.Mesh)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for failed reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	_, open := <-w.Reloads()
	assert.False(t, open, "reloads channel closed on exit")
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "nope", "a.obj")}, 0)
	assert.Error(t, err)
}
