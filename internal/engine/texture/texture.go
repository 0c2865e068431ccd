// Package texture decodes image files into RGBA pixel buffers ready for
// GPU upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// Texture errors.
var (
	ErrNotFound       = errors.New("texture not found")
	ErrEmpty          = errors.New("texture has no pixels")
	ErrUnsupportedExt = errors.New("unsupported texture format")
)

// TGA has no magic number, so decoders are picked by file extension
// instead of being sniffed by image.Decode.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"bmp":  bmp.Decode,
	"tga":  tga.Decode,
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"jpeg": jpeg.Decode,
}

// FormatOf returns the decoder name for a file path, or "" if unsupported.
func FormatOf(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := decoders[ext]; !ok {
		return ""
	}
	return ext
}

// Image is a decoded texture. Rows are stored bottom-up when FlippedY is
// set, which is the order glTexImage2D expects for OBJ texture
// coordinates.
type Image struct {
	Width    int
	Height   int
	Pix      []byte // RGBA, 4 bytes per pixel
	FlippedY bool
	Format   string // decoder name, empty for generated images
}

// Load reads and decodes a texture file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes an in-memory image of the given format ("bmp", "tga",
// "png", "jpg") and flips it for GL upload.
func Decode(data []byte, format string) (*Image, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExt, format)
	}
	src, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	img, err := FromImage(src, true)
	if err != nil {
		return nil, err
	}
	img.Format = format
	return img, nil
}

// FromImage converts any image.Image into a tightly packed RGBA buffer,
// optionally reversing the row order.
func FromImage(src image.Image, flipY bool) (*Image, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	if flipY {
		rowSize := rgba.Stride
		tmp := make([]byte, rowSize)
		for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
			t := rgba.Pix[top*rowSize : (top+1)*rowSize]
			u := rgba.Pix[bottom*rowSize : (bottom+1)*rowSize]
			copy(tmp, t)
			copy(t, u)
			copy(u, tmp)
		}
	}

	return &Image{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Pix:      rgba.Pix,
		FlippedY: flipY,
	}, nil
}

// Fallback returns a 1x1 white texture for objects without an image.
func Fallback() *Image {
	return &Image{Width: 1, Height: 1, Pix: []byte{255, 255, 255, 255}}
}
