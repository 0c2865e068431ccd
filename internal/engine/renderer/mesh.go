package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objscene/pkg/obj"
)

// ErrEmptyMesh is returned when uploading a mesh with no vertices.
var ErrEmptyMesh = errors.New("mesh has no vertices")

const floatSize = int32(unsafe.Sizeof(float32(0)))

// GPUMesh is a deindexed mesh resident in a VAO/VBO pair.
type GPUMesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// UploadMesh copies an interleaved mesh to the GPU. Attribute 0 is the
// position, 1 the texture coordinate and 2 the normal. The CPU buffer is
// not retained.
func UploadMesh(m *obj.Mesh) (*GPUMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if m.VertexCount == 0 {
		return nil, ErrEmptyMesh
	}

	g := &GPUMesh{vertexCount: int32(m.VertexCount)}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(floatSize), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	stride := int32(obj.Stride) * floatSize
	attribs := []struct {
		index  uint32
		size   int32
		offset int
	}{
		{0, 3, obj.PositionOffset},
		{1, 2, obj.TexCoordOffset},
		{2, 3, obj.NormalOffset},
	}
	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.index, a.size, gl.FLOAT, false, stride, uintptr(a.offset*int(floatSize)))
		gl.EnableVertexAttribArray(a.index)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return g, nil
}

// VertexCount returns the number of vertices drawn.
func (g *GPUMesh) VertexCount() int {
	return int(g.vertexCount)
}

// Draw issues the draw call. The scene program must be in use.
func (g *GPUMesh) Draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, g.vertexCount)
}

// Delete releases the GPU buffers.
func (g *GPUMesh) Delete() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
}
