package imageio

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/taigrr/flatshade/pkg/render"
)

// Format is an output image format.
type Format int

const (
	FormatTGA Format = iota
	FormatPNG
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatTGA:
		return "tga"
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension. Unknown
// extensions get TGA.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	}
	return FormatTGA
}

// Encode writes fb to w in format f.
func Encode(w io.Writer, fb *render.Framebuffer, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, fb.ToImage())
	case FormatBMP:
		return bmp.Encode(w, fb.ToImage())
	case FormatTIFF:
		return tiff.Encode(w, fb.ToImage(), &tiff.Options{Compression: tiff.Deflate})
	}
	return EncodeTGA(w, fb)
}

// Save writes fb to path, creating or truncating the file. The format
// follows the extension.
func Save(path string, fb *render.Framebuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	format := FormatFromPath(path)
	bw := bufio.NewWriter(f)
	if err := Encode(bw, fb, format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Load reads an image written by Save back into a framebuffer.
func Load(path string) (*render.Framebuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	var img image.Image
	switch FormatFromPath(path) {
	case FormatTGA:
		img, err = DecodeTGA(data)
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case FormatBMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	case FormatTIFF:
		img, err = tiff.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return render.FromImage(img), nil
}
