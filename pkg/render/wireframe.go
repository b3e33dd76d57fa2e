package render

import (
	"fmt"

	"github.com/taigrr/flatshade/pkg/math3d"
)

// Wireframe draws projected lines straight into a framebuffer, ignoring
// depth. Used for debug overlays on top of the shaded image.
type Wireframe struct {
	fb *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// DrawLine3D projects both endpoints and draws the line between them.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	a := Project(p1, w.fb.Width, w.fb.Height)
	b := Project(p2, w.fb.Width, w.fb.Height)
	w.fb.DrawLine(a.X, a.Y, b.X, b.Y, color)
}

// DrawTriangle outlines a projected triangle.
func (w *Wireframe) DrawTriangle(pts [3]ScreenPoint, color Color) {
	for i := range 3 {
		a, b := pts[i], pts[(i+1)%3]
		w.fb.DrawLine(a.X, a.Y, b.X, b.Y, color)
	}
}

// DrawMesh outlines every face of mesh, lit or not.
func (w *Wireframe) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, color Color) error {
	for i := 0; i < mesh.TriangleCount(); i++ {
		tri, err := mesh.Triangle(i)
		if err != nil {
			return fmt.Errorf("face %d: %w", i+1, err)
		}
		for k := range tri {
			tri[k] = transform.MulVec3(tri[k])
		}
		w.DrawTriangle(ProjectTriangle(tri, w.fb.Width, w.fb.Height), color)
	}
	return nil
}

// DrawBox draws the edges of the axis-aligned box lo..hi after transform.
func (w *Wireframe) DrawBox(lo, hi math3d.Vec3, transform math3d.Mat4, color Color) {
	corners := [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, // 0: bottom-left-back
		{X: hi.X, Y: lo.Y, Z: lo.Z}, // 1: bottom-right-back
		{X: hi.X, Y: hi.Y, Z: lo.Z}, // 2: top-right-back
		{X: lo.X, Y: hi.Y, Z: lo.Z}, // 3: top-left-back
		{X: lo.X, Y: lo.Y, Z: hi.Z}, // 4: bottom-left-front
		{X: hi.X, Y: lo.Y, Z: hi.Z}, // 5: bottom-right-front
		{X: hi.X, Y: hi.Y, Z: hi.Z}, // 6: top-right-front
		{X: lo.X, Y: hi.Y, Z: hi.Z}, // 7: top-left-front
	}
	for i := range corners {
		corners[i] = transform.MulVec3(corners[i])
	}

	edges := [12][2]int{
		// Back face
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		// Front face
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		// Connecting edges
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		w.DrawLine3D(corners[e[0]], corners[e[1]], color)
	}
}

// DrawAxes draws the model-space axes from the origin: x red, y green,
// z blue.
func (w *Wireframe) DrawAxes(length float32, transform math3d.Mat4) {
	origin := transform.MulVec3(math3d.Zero3())
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(length, 0, 0)), ColorRed)
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(0, length, 0)), ColorGreen)
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(0, 0, length)), ColorBlue)
}
