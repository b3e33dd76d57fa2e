// Package render implements flat-shaded software rasterization for flatshade.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Gray creates an opaque gray level.
func Gray(k uint8) color.RGBA {
	return color.RGBA{k, k, k, 255}
}

// Framebuffer is the output canvas.
//
// Row 0 is the bottom row: (0, 0) is the lower-left pixel, matching the
// projection and the TGA bottom-left origin. ToImage flips to the top-left
// convention of package image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major, bottom row first
}

// NewFramebuffer creates a framebuffer cleared to opaque black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
	fb.Clear(ColorBlack)
	return fb
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out of bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if !fb.InBounds(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Both endpoints are drawn.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	// Entirely off one side of the canvas.
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= fb.Width && x1 >= fb.Width) || (y0 >= fb.Height && y1 >= fb.Height) {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a top-left origin image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		dst := img.Pix[(fb.Height-1-y)*img.Stride:]
		for x, p := range row {
			dst[x*4+0] = p.R
			dst[x*4+1] = p.G
			dst[x*4+2] = p.B
			dst[x*4+3] = p.A
		}
	}
	return img
}

// FromImage builds a framebuffer from a top-left origin image.
func FromImage(img image.Image) *Framebuffer {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	fb := &Framebuffer{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: make([]color.RGBA, b.Dx()*b.Dy()),
	}
	for y := range fb.Height {
		src := rgba.Pix[y*rgba.Stride:]
		row := fb.Pixels[(fb.Height-1-y)*fb.Width:]
		for x := range fb.Width {
			row[x] = color.RGBA{src[x*4], src[x*4+1], src[x*4+2], src[x*4+3]}
		}
	}
	return fb
}

// ImageSummary describes the lit content of a framebuffer.
type ImageSummary struct {
	Lit     int             // pixels that are not opaque black
	MinGray uint8           // darkest lit gray level (max of R, G, B)
	MaxGray uint8           // brightest lit gray level
	Bounds  image.Rectangle // silhouette in framebuffer coordinates; empty if Lit == 0
}

// Center returns the silhouette center in framebuffer coordinates.
func (s ImageSummary) Center() (x, y float64) {
	return float64(s.Bounds.Min.X+s.Bounds.Max.X) / 2, float64(s.Bounds.Min.Y+s.Bounds.Max.Y) / 2
}

// Summarize scans the framebuffer for pixels that differ from opaque black.
func (fb *Framebuffer) Summarize() ImageSummary {
	var s ImageSummary
	s.MinGray = 255
	for y := range fb.Height {
		for x, p := range fb.Pixels[y*fb.Width : (y+1)*fb.Width] {
			if p == ColorBlack {
				continue
			}
			k := max(p.R, p.G, p.B)
			s.MinGray = min(s.MinGray, k)
			s.MaxGray = max(s.MaxGray, k)
			if s.Lit == 0 {
				s.Bounds = image.Rect(x, y, x+1, y+1)
			} else {
				s.Bounds = s.Bounds.Union(image.Rect(x, y, x+1, y+1))
			}
			s.Lit++
		}
	}
	if s.Lit == 0 {
		s.MinGray = 0
	}
	return s
}
