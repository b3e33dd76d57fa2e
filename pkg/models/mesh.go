// Package models provides mesh loading and representation for flatshade.
package models

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// ErrBadIndex is returned when a face references a vertex that does not exist.
var ErrBadIndex = errors.New("vertex index out of range")

// Mesh represents a triangulated mesh as two flat arrays.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle given by three 1-based indices into Mesh.Vertices.
// Winding order is significant: it decides the sign of the face normal.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// Triangle dereferences face i into its three vertex positions, in winding
// order.
func (m *Mesh) Triangle(i int) ([3]math3d.Vec3, error) {
	var tri [3]math3d.Vec3
	if i < 0 || i >= len(m.Faces) {
		return tri, fmt.Errorf("face %d of %d: %w", i, len(m.Faces), ErrBadIndex)
	}
	for k, idx := range m.Faces[i].V {
		if idx < 1 || idx > len(m.Vertices) {
			return tri, fmt.Errorf("face %d references vertex %d of %d: %w",
				i+1, idx, len(m.Vertices), ErrBadIndex)
		}
		tri[k] = m.Vertices[idx-1]
	}
	return tri, nil
}

// Validate checks every face index without materializing triangles.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 1 || idx > n {
				return fmt.Errorf("face %d references vertex %d of %d: %w", i+1, idx, n, ErrBadIndex)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// InUnitCube reports whether every vertex lies in [-1, +1]³.
func (m *Mesh) InUnitCube() bool {
	lo, hi := m.BoundsMin, m.BoundsMax
	return lo.X >= -1 && lo.Y >= -1 && lo.Z >= -1 &&
		hi.X <= 1 && hi.Y <= 1 && hi.Z <= 1
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	if mat.IsIdentity() {
		return
	}
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// FitUnitCube centers the mesh on the origin and scales it uniformly so
// its largest extent spans [-1, +1]. Empty and single-point meshes are only
// centered.
func (m *Mesh) FitUnitCube() {
	m.CalculateBounds()
	if len(m.Vertices) == 0 {
		return
	}

	size := m.Size()
	extent := math32.Max(size.X, math32.Max(size.Y, size.Z))
	mat := math3d.Translate(m.Center().Negate())
	if extent > 0 {
		mat = math3d.ScaleUniform(2 / extent).Mul(mat)
	}
	m.Transform(mat)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (lo, hi math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
