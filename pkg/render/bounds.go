package render

import "github.com/taigrr/flatshade/pkg/math3d"

// Plane is an oriented plane; points with positive distance are inside.
type Plane struct {
	Normal math3d.Vec3
	D      float32
}

// DistanceToPoint returns the signed distance from the plane to point.
// The normal is assumed to be unit length.
func (p Plane) DistanceToPoint(point math3d.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// viewPlanes bound the orthographic view volume: x and y in [-1, +1].
// Depth is unbounded, every z reaches the z-buffer.
var viewPlanes = [4]Plane{
	{Normal: math3d.V3(1, 0, 0), D: 1},  // left
	{Normal: math3d.V3(-1, 0, 0), D: 1}, // right
	{Normal: math3d.V3(0, 1, 0), D: 1},  // bottom
	{Normal: math3d.V3(0, -1, 0), D: 1}, // top
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the box bounding all 8 transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	if m.IsIdentity() {
		return b
	}
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	out := AABB{Min: m.MulVec3(corners[0]), Max: m.MulVec3(corners[0])}
	for _, c := range corners[1:] {
		p := m.MulVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// InView reports whether any part of the box can reach the canvas. It
// tests the corner furthest along each view plane normal.
func (b AABB) InView() bool {
	for _, plane := range viewPlanes {
		p := math3d.V3(
			pick(plane.Normal.X >= 0, b.Max.X, b.Min.X),
			pick(plane.Normal.Y >= 0, b.Max.Y, b.Min.Y),
			pick(plane.Normal.Z >= 0, b.Max.Z, b.Min.Z),
		)
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}

// BoundedMeshRenderer is a MeshRenderer that knows its model-space
// bounds. DrawMesh skips such a mesh entirely when the transformed box
// misses the canvas.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (lo, hi math3d.Vec3)
}

// viewCull reports whether mesh can be skipped as a whole.
func (r *Rasterizer) viewCull(mesh MeshRenderer, transform math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok || mesh.TriangleCount() == 0 {
		return false
	}
	box := NewAABB(bounded.GetBounds()).Transform(transform)
	if box.InView() {
		return false
	}
	r.Stats.MeshesCulled++
	return true
}
