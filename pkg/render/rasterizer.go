package render

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// FillMode selects the triangle fill algorithm.
type FillMode int

const (
	// FillScanline walks the long edge and fills horizontal spans between
	// parametric edge samples.
	FillScanline FillMode = iota
	// FillEdge scans the bounding box with incremental edge functions.
	FillEdge
)

func (m FillMode) String() string {
	switch m {
	case FillScanline:
		return "scanline"
	case FillEdge:
		return "edge"
	}
	return fmt.Sprintf("FillMode(%d)", int(m))
}

// ParseFillMode parses "scanline" or "edge".
func ParseFillMode(s string) (FillMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scanline":
		return FillScanline, nil
	case "edge":
		return FillEdge, nil
	}
	return 0, fmt.Errorf("unknown fill mode %q (want scanline or edge)", s)
}

// Rasterizer fills triangles into a borrowed framebuffer, resolving
// visibility with its own z-buffer. Larger z is closer; a fragment is
// written only if its depth is strictly greater than the stored one.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float32 // Depth buffer (1D array, row-major)
	Fill    FillMode
	Stats   Stats // Statistics for debugging/benchmarking
}

// Stats counts what happened during a render.
type Stats struct {
	FacesTested     int // faces handed to the shader
	FacesCulled     int // faces with non-positive light intensity
	FacesDegenerate int // faces whose normal could not be normalized
	FacesDrawn      int // faces passed to the fill routine
	Fragments       int // fragments that passed the depth test
	MeshesCulled    int // meshes skipped because their bounds miss the canvas
}

// NewRasterizer creates a rasterizer drawing into fb with a cleared
// z-buffer.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{fb: fb}
	r.Resize()
	return r
}

// Resize reallocates the z-buffer to match the framebuffer and clears it.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float32, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth resets every depth cell to negative infinity.
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math32.Inf(-1)
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Depth returns the stored depth at (x, y), or -Inf out of bounds.
func (r *Rasterizer) Depth(x, y int) float32 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math32.Inf(-1)
	}
	return r.zbuffer[y*r.Width()+x]
}

// plot applies the depth test to one fragment.
func (r *Rasterizer) plot(x, y int, z float32, c Color) {
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return
	}
	idx := y*r.fb.Width + x
	if z > r.zbuffer[idx] {
		r.zbuffer[idx] = z
		r.fb.Pixels[idx] = c
		r.Stats.Fragments++
	}
}

// DrawTriangle fills one projected triangle with a flat color using the
// configured fill mode. Fragments outside the canvas are dropped.
func (r *Rasterizer) DrawTriangle(pts [3]ScreenPoint, c Color) {
	if r.fb == nil || len(r.zbuffer) == 0 {
		return
	}
	switch r.Fill {
	case FillEdge:
		r.drawTriangleEdge(pts, c)
	default:
		r.drawTriangleScan(pts, c)
	}
}

// scanPoint is a screen-space sample with fractional position.
type scanPoint struct {
	X, Y, Z float32
}

func toScan(p ScreenPoint) scanPoint {
	return scanPoint{float32(p.X), float32(p.Y), p.Z}
}

func (a scanPoint) lerp(b scanPoint, t float32) scanPoint {
	return scanPoint{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// drawTriangleScan is the horizontal-scan parametric fill.
//
// The vertices are sorted by y. The long edge p0->p2 is sampled at
// t = 0..1 inclusive, at least max(W, H)+1 times and at least twice per
// row it crosses; for each sample A the matching point B on the short
// edges (p0->p1 below p1.y, p1->p2 otherwise) is taken at the same y, and
// the span A..B is filled. Samples on rows outside the canvas are skipped.
func (r *Rasterizer) drawTriangleScan(pts [3]ScreenPoint, c Color) {
	if pts[0].Y > pts[1].Y {
		pts[0], pts[1] = pts[1], pts[0]
	}
	if pts[0].Y > pts[2].Y {
		pts[0], pts[2] = pts[2], pts[0]
	}
	if pts[1].Y > pts[2].Y {
		pts[1], pts[2] = pts[2], pts[1]
	}
	p0, p1, p2 := toScan(pts[0]), toScan(pts[1]), toScan(pts[2])

	height := p2.Y - p0.Y
	steps := max(r.fb.Width, r.fb.Height, 2*(pts[2].Y-pts[0].Y))
	inv := 1 / float32(steps)
	lower := p1.Y - p0.Y
	upper := p2.Y - p1.Y

	first, last := 0, steps
	if height > 0 {
		n := float32(steps)
		first = max(first, int(math32.Floor(-p0.Y/height*n))-1)
		last = min(last, int(math32.Ceil((float32(r.fb.Height)-p0.Y)/height*n))+1)
	}

	for i := first; i <= last; i++ {
		t := float32(i) * inv
		if i == steps {
			t = 1
		}
		a := p0.lerp(p2, t)

		var b scanPoint
		if a.Y < p1.Y {
			b = p0.lerp(p1, (a.Y-p0.Y)/lower)
		} else {
			var s float32
			if upper > 0 {
				s = (a.Y - p1.Y) / upper
			}
			b = p1.lerp(p2, s)
		}
		r.scanSpan(a, b, c)
	}
}

// scanSpan fills the horizontal segment a..b, sampling once per pixel.
// Depth is interpolated with the same parameter as x.
func (r *Rasterizer) scanSpan(a, b scanPoint, c Color) {
	fy := math32.Floor(a.Y)
	if fy < 0 || fy >= float32(r.fb.Height) {
		return
	}
	y := int(fy)

	if a.X > b.X {
		a, b = b, a
	}
	lo := math32.Max(math32.Floor(a.X), 0)
	hi := math32.Min(math32.Floor(b.X), float32(r.fb.Width-1))
	if lo > hi {
		return
	}

	dx := b.X - a.X
	for x := int(lo); x <= int(hi); x++ {
		var s float32
		if dx > 0 {
			s = (float32(x) - a.X) / dx
			s = math32.Max(0, math32.Min(1, s))
		}
		r.plot(x, y, a.Z+(b.Z-a.Z)*s, c)
	}
}
