package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single OBJ line. Real exporters stay far below it.
const maxLineSize = 1 << 20

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	d, err := Parse(f)
	if err != nil {
		return d, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// Parse reads OBJ statements from r. On a malformed line it stops and
// returns the data read so far together with a *ParseError; that data must
// not be used for rendering.
func Parse(r io.Reader) (*Data, error) {
	d := &Data{}
	if err := d.Read(r); err != nil {
		return d, err
	}
	return d, nil
}

// Read appends the statements of r to d.
func (d *Data) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		stmt, _, _ := strings.Cut(text, "#")
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = d.readPosition(fields[1:])
		case "vt":
			err = d.readTexCoord(fields[1:])
		case "vn":
			err = d.readNormal(fields[1:])
		case "f":
			err = d.readFace(fields[1:])
		default:
			// comments, o, g, s, usemtl, mtllib...
		}
		if err != nil {
			return &ParseError{Line: line, Text: text, Err: err}
		}
	}
	return scanner.Err()
}

func (d *Data) readPosition(args []string) error {
	var v [3]float32
	if err := parseFloats(args, v[:]); err != nil {
		return err
	}
	d.Positions = append(d.Positions, v)
	return nil
}

func (d *Data) readTexCoord(args []string) error {
	var v [2]float32
	if err := parseFloats(args, v[:]); err != nil {
		return err
	}
	d.TexCoords = append(d.TexCoords, v)
	return nil
}

func (d *Data) readNormal(args []string) error {
	var v [3]float32
	if err := parseFloats(args, v[:]); err != nil {
		return err
	}
	d.Normals = append(d.Normals, v)
	return nil
}

// parseFloats fills dst from the leading args. Trailing values such as the
// optional w component are ignored.
func parseFloats(args []string, dst []float32) error {
	if len(args) < len(dst) {
		return fmt.Errorf("%w: want %d values, got %d", ErrMalformedVertex, len(dst), len(args))
	}
	for i := range dst {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedVertex, err)
		}
		dst[i] = float32(f)
	}
	return nil
}

// readFace accepts exactly three p/t/n corners. Nothing is appended unless
// all nine indices parse.
func (d *Data) readFace(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: got %d corners", ErrMalformedFace, len(args))
	}

	var pos, tex, nor [3]uint32
	for i, corner := range args {
		parts := strings.Split(corner, "/")
		if len(parts) != 3 {
			return fmt.Errorf("%w: corner %q", ErrMalformedFace, corner)
		}
		var err error
		if pos[i], err = parseIndex(parts[0]); err != nil {
			return fmt.Errorf("%w: corner %q: %v", ErrMalformedFace, corner, err)
		}
		if tex[i], err = parseIndex(parts[1]); err != nil {
			return fmt.Errorf("%w: corner %q: %v", ErrMalformedFace, corner, err)
		}
		if nor[i], err = parseIndex(parts[2]); err != nil {
			return fmt.Errorf("%w: corner %q: %v", ErrMalformedFace, corner, err)
		}
	}

	d.PosIndices = append(d.PosIndices, pos[:]...)
	d.TexIndices = append(d.TexIndices, tex[:]...)
	d.NorIndices = append(d.NorIndices, nor[:]...)
	return nil
}

// parseIndex reads an unsigned index. Bounds are checked by Deindex.
func parseIndex(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
