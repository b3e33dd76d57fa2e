// Package imageio writes and reads rendered framebuffers as image files.
package imageio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/taigrr/flatshade/pkg/render"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const (
	tgaHeaderSize = 18
	tgaAlphaBits  = 0x08 // descriptor: 8 attribute bits
	tgaTopToBot   = 0x20 // descriptor: first row is the top row
	tgaMaxSide    = 0xFFFF
)

// ErrTGA is wrapped by every TGA decoding failure.
var ErrTGA = errors.New("invalid tga")

// EncodeTGA writes fb as an uncompressed 32-bit TGA with a bottom-left
// origin. Framebuffer row 0 is written first.
func EncodeTGA(w io.Writer, fb *render.Framebuffer) error {
	if fb.Width <= 0 || fb.Height <= 0 || fb.Width > tgaMaxSide || fb.Height > tgaMaxSide {
		return fmt.Errorf("tga: unsupported size %dx%d", fb.Width, fb.Height)
	}

	var header [tgaHeaderSize]byte
	header[2] = TGATypeUncompressed
	binary.LittleEndian.PutUint16(header[12:], uint16(fb.Width))
	binary.LittleEndian.PutUint16(header[14:], uint16(fb.Height))
	header[16] = 32
	header[17] = tgaAlphaBits
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("tga header: %w", err)
	}

	row := make([]byte, fb.Width*4)
	for y := range fb.Height {
		for x, c := range fb.Pixels[y*fb.Width : (y+1)*fb.Width] {
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.B, c.G, c.R, c.A
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("tga row %d: %w", y, err)
		}
	}
	return nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color
// TGA with 24 or 32 bits per pixel. The result has the usual top-left
// image origin whatever the file's row order.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: data too short", ErrTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(binary.LittleEndian.Uint16(data[12:]))
	height := int(binary.LittleEndian.Uint16(data[14:]))
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images not supported", ErrTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: unsupported image type %d", ErrTGA, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrTGA, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: truncated id field", ErrTGA)
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		bpp:         bpp / 8,
		topToBottom: descriptor&tgaTopToBot != 0,
	}
	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bpp         int
	topToBottom bool
}

// next reads one BGR(A) pixel.
func (d *tgaDecoder) next() (color.RGBA, bool) {
	if d.pos+d.bpp > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}

// set stores pixel number i in file order.
func (d *tgaDecoder) set(i int, c color.RGBA) {
	w, h := d.img.Rect.Dx(), d.img.Rect.Dy()
	x, y := i%w, i/w
	if !d.topToBottom {
		y = h - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) count() int {
	return d.img.Rect.Dx() * d.img.Rect.Dy()
}

func (d *tgaDecoder) raw() error {
	for i := range d.count() {
		c, ok := d.next()
		if !ok {
			return fmt.Errorf("%w: pixel data truncated", ErrTGA)
		}
		d.set(i, c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.count()
	for i := 0; i < total; {
		if d.pos >= len(d.src) {
			return fmt.Errorf("%w: rle data truncated at pixel %d", ErrTGA, i)
		}
		packet := d.src[d.pos]
		d.pos++
		n := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run: one pixel repeated n times.
			c, ok := d.next()
			if !ok {
				return fmt.Errorf("%w: rle data truncated at pixel %d", ErrTGA, i)
			}
			for ; n > 0 && i < total; n-- {
				d.set(i, c)
				i++
			}
			continue
		}

		for ; n > 0 && i < total; n-- {
			c, ok := d.next()
			if !ok {
				return fmt.Errorf("%w: rle data truncated at pixel %d", ErrTGA, i)
			}
			d.set(i, c)
			i++
		}
	}
	return nil
}
