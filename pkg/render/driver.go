package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/flatshade/pkg/math3d"
)

// MeshRenderer is the mesh shape the driver consumes. It is satisfied by
// *models.Mesh; the interface keeps render free of a models import.
type MeshRenderer interface {
	TriangleCount() int
	// Triangle dereferences face i; an out-of-range vertex index is an error.
	Triangle(i int) ([3]math3d.Vec3, error)
}

// DrawMesh renders every face of mesh in order: the face is transformed,
// shaded against light, culled if unlit or degenerate, projected and
// filled. A face that fails to dereference aborts the render. A
// BoundedMeshRenderer whose bounds miss the canvas is skipped without
// dereferencing any face.
//
// Pass math3d.Identity() as transform to render model space as-is.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, light math3d.Vec3) error {
	if r.viewCull(mesh, transform) {
		return nil
	}
	identity := transform.IsIdentity()
	w, h := r.Width(), r.Height()

	for i := 0; i < mesh.TriangleCount(); i++ {
		tri, err := mesh.Triangle(i)
		if err != nil {
			return fmt.Errorf("face %d: %w", i+1, err)
		}
		if !identity {
			for k := range tri {
				tri[k] = transform.MulVec3(tri[k])
			}
		}

		r.Stats.FacesTested++
		c, err := ShadeFace(tri, light)
		switch {
		case errors.Is(err, math3d.ErrDegenerateVector):
			r.Stats.FacesDegenerate++
			continue
		case err != nil:
			r.Stats.FacesCulled++
			continue
		}

		r.Stats.FacesDrawn++
		r.DrawTriangle(ProjectTriangle(tri, w, h), c)
	}
	return nil
}
