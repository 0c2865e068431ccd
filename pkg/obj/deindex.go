package obj

import "fmt"

// Deindex resolves every face corner against the attribute pools and
// writes one interleaved vertex per corner. OBJ indices are 1-based; an
// index of 0 or beyond its pool fails with an *IndexError.
//
// On success d is reset so it can be reused for another parse.
func Deindex(d *Data) (*Mesh, error) {
	n := len(d.PosIndices)
	if len(d.TexIndices) != n || len(d.NorIndices) != n {
		return nil, fmt.Errorf("%w: pos=%d tex=%d nor=%d",
			ErrIndexMismatch, n, len(d.TexIndices), len(d.NorIndices))
	}
	if n%3 != 0 {
		return nil, fmt.Errorf("%w: %d corners is not a whole number of triangles", ErrIndexMismatch, n)
	}

	vertices := make([]float32, 0, n*Stride)
	for i := 0; i < n; i++ {
		p, err := resolve(d.PosIndices[i], len(d.Positions), i, "position")
		if err != nil {
			return nil, err
		}
		t, err := resolve(d.TexIndices[i], len(d.TexCoords), i, "texcoord")
		if err != nil {
			return nil, err
		}
		nm, err := resolve(d.NorIndices[i], len(d.Normals), i, "normal")
		if err != nil {
			return nil, err
		}

		pos := d.Positions[p]
		tex := d.TexCoords[t]
		nor := d.Normals[nm]
		vertices = append(vertices,
			pos[0], pos[1], pos[2],
			tex[0], tex[1],
			nor[0], nor[1], nor[2],
		)
	}

	d.Reset()

	return &Mesh{
		Vertices:    vertices,
		VertexCount: n,
	}, nil
}

// resolve converts a 1-based OBJ index into a checked 0-based one.
func resolve(index uint32, poolLen, corner int, attr string) (int, error) {
	if index == 0 || int(index) > poolLen {
		return 0, &IndexError{Corner: corner, Attribute: attr, Index: index, PoolLen: poolLen}
	}
	return int(index) - 1, nil
}

// Load parses the OBJ file at path and deindexes it.
func Load(path string) (*Mesh, error) {
	d, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Deindex(d)
	if err != nil {
		return nil, fmt.Errorf("deindexing %s: %w", path, err)
	}
	return m, nil
}
