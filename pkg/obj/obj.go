// Package obj parses a triangulated subset of the Wavefront OBJ format
// and flattens it into an interleaved, non-indexed vertex buffer.
//
// Supported statements are v, vt, vn and f with exactly three
// pos/tex/nor corners. Everything else is skipped.
package obj

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJ errors.
var (
	ErrFileNotFound    = errors.New("obj file not found")
	ErrMalformedFace   = errors.New("malformed face: expected 3 pos/tex/nor corners")
	ErrMalformedVertex = errors.New("malformed vertex attribute")
	ErrIndexOutOfRange = errors.New("attribute index out of range")
	ErrIndexMismatch   = errors.New("face index sequences differ in length")
)

// Interleaved vertex layout, in floats.
const (
	Stride         = 8
	PositionOffset = 0
	TexCoordOffset = 3
	NormalOffset   = 5
)

// Data holds the raw attribute pools and per-corner index triples read
// from one OBJ stream. Indices are kept 1-based as they appear in the file.
type Data struct {
	Positions []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Normals   []mgl32.Vec3

	PosIndices []uint32
	TexIndices []uint32
	NorIndices []uint32
}

// Corners returns the number of face corners read so far.
func (d *Data) Corners() int {
	return len(d.PosIndices)
}

// Triangles returns the number of faces read so far.
func (d *Data) Triangles() int {
	return len(d.PosIndices) / 3
}

// Reset empties all pools and index sequences, keeping their capacity.
func (d *Data) Reset() {
	d.Positions = d.Positions[:0]
	d.TexCoords = d.TexCoords[:0]
	d.Normals = d.Normals[:0]
	d.PosIndices = d.PosIndices[:0]
	d.TexIndices = d.TexIndices[:0]
	d.NorIndices = d.NorIndices[:0]
}

// Mesh is a flat vertex buffer ready for upload. Each vertex is Stride
// floats: position (3), texcoord (2), normal (3).
type Mesh struct {
	Vertices    []float32
	VertexCount int
}

// Validate checks that the buffer length matches the declared vertex count.
func (m *Mesh) Validate() error {
	if m.VertexCount%3 != 0 {
		return fmt.Errorf("vertex count %d is not a multiple of 3", m.VertexCount)
	}
	if len(m.Vertices) != m.VertexCount*Stride {
		return fmt.Errorf("buffer holds %d floats, want %d for %d vertices",
			len(m.Vertices), m.VertexCount*Stride, m.VertexCount)
	}
	return nil
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	o := i*Stride + PositionOffset
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// TexCoord returns the texture coordinate of vertex i.
func (m *Mesh) TexCoord(i int) mgl32.Vec2 {
	o := i*Stride + TexCoordOffset
	return mgl32.Vec2{m.Vertices[o], m.Vertices[o+1]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) mgl32.Vec3 {
	o := i*Stride + NormalOffset
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if m.VertexCount == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	min = m.Position(0)
	max = min
	for i := 1; i < m.VertexCount; i++ {
		p := m.Position(i)
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

// ParseError reports the line where parsing stopped.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IndexError reports a face corner whose index does not resolve into its pool.
type IndexError struct {
	Corner    int
	Attribute string
	Index     uint32
	PoolLen   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("corner %d: %s index %d outside 1..%d", e.Corner, e.Attribute, e.Index, e.PoolLen)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
