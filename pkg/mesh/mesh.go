// Package mesh holds triangle meshes for wireframe rendering: vertex
// positions, triangular faces, and a loader for Wavefront OBJ files.
package mesh

import (
	"errors"
	"fmt"
)

// ErrIndexRange is returned when a face refers to a vertex that does not
// exist.
var ErrIndexRange = errors.New("mesh: vertex index out of range")

// ErrNonFinite is returned for NaN or infinite vertex coordinates.
var ErrNonFinite = errors.New("mesh: non-finite vertex coordinate")

// Vec3 is a model-space position. Renderable models keep every
// coordinate within [-1, 1].
type Vec3 struct {
	X, Y, Z float64
}

// Face lists the three vertex indices of a triangle (0-based).
type Face [3]int

// Source is the read-only view of a mesh the wireframe renderer needs.
type Source interface {
	NumVerts() int
	Vert(i int) Vec3
	NumFaces() int
	Face(i int) Face
}

// Model is an in-memory triangle mesh. Vertices and faces keep their
// insertion order.
type Model struct {
	verts []Vec3
	faces []Face
}

var _ Source = (*Model)(nil)

// New creates an empty model.
func New() *Model {
	return &Model{}
}

// AddVert appends a vertex and returns its index.
func (m *Model) AddVert(v Vec3) int {
	m.verts = append(m.verts, v)
	return len(m.verts) - 1
}

// AddFace appends a triangle. All three indices must name existing
// vertices.
func (m *Model) AddFace(f Face) error {
	for _, i := range f {
		if i < 0 || i >= len(m.verts) {
			return fmt.Errorf("%w: %d (have %d vertices)", ErrIndexRange, i, len(m.verts))
		}
	}
	m.faces = append(m.faces, f)
	return nil
}

func (m *Model) NumVerts() int   { return len(m.verts) }
func (m *Model) Vert(i int) Vec3 { return m.verts[i] }
func (m *Model) NumFaces() int   { return len(m.faces) }
func (m *Model) Face(i int) Face { return m.faces[i] }

// Edge connects two vertex indices.
type Edge struct {
	From, To int
}

// Edges returns the distinct triangle edges of src in first-seen order.
// An edge shared by two faces, in either direction, is listed once, in
// the direction it first appeared.
func Edges(src Source) []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	for i := 0; i < src.NumFaces(); i++ {
		f := src.Face(i)
		for j := 0; j < 3; j++ {
			e := Edge{From: f[j], To: f[(j+1)%3]}
			key := e
			if key.From > key.To {
				key.From, key.To = key.To, key.From
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, e)
		}
	}
	return edges
}
