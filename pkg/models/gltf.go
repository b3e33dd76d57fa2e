package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// FitUnitCube recenters and rescales the result into [-1, +1]³.
	// glTF has no normalized-coordinate convention, so it defaults to true.
	FitUnitCube bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		FitUnitCube: true,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default loader.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
// Every triangle primitive of every mesh is merged into the result.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromDocument converts an already decoded document.
func (l *GLTFLoader) FromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("")

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.FitUnitCube {
		mesh.FitUnitCube()
	} else {
		mesh.CalculateBounds()
	}

	return mesh, nil
}

// processMesh appends the geometry of a GLTF mesh. Face indices are
// converted to the 1-based convention used by Mesh. glTF front faces are
// counter-clockwise, same as OBJ, so winding is kept.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines, points, strips and fans carry no flat faces.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("position accessor %d: %w", posIdx, ErrBadIndex)
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		// 1-based index of the first vertex of this primitive
		base := len(mesh.Vertices) + 1
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(p[0], p[1], p[2]))
		}

		var indices []uint32
		if prim.Indices != nil {
			idx := *prim.Indices
			if idx < 0 || idx >= len(doc.Accessors) {
				return fmt.Errorf("index accessor %d: %w", idx, ErrBadIndex)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[idx], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i, v := range indices {
			// Indices are local to the primitive; a stray one would
			// silently reach into a neighbour's vertices.
			if int(v) >= len(positions) {
				return fmt.Errorf("primitive index %d (%d) of %d positions: %w",
					i, v, len(positions), ErrBadIndex)
			}
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V: [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				},
			})
		}
	}

	return nil
}
