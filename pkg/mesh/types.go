// Package mesh holds the wireframe and triangle mesh model and the
// edge-to-face reconstruction.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh errors.
var (
	ErrFaceIndexOutOfRange = errors.New("face index out of range")
)

// Vertex is a 3D position. Its index in the vertex slice is its identity.
type Vertex = mgl64.Vec3

// Edge is an undirected pair of vertex indices.
type Edge [2]int

// Other returns the endpoint of e that is not v.
// If v is not an endpoint, the second endpoint is returned.
func (e Edge) Other(v int) int {
	if e[0] == v {
		return e[1]
	}
	return e[0]
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v int) bool {
	return e[0] == v || e[1] == v
}

// Key returns the edge with endpoints in ascending order, for set lookups.
func (e Edge) Key() Edge {
	if e[0] > e[1] {
		return Edge{e[1], e[0]}
	}
	return e
}

// Face is an ordered triple of vertex indices.
type Face [3]int

// Key returns the face's vertex set sorted ascending. Faces that are
// permutations of each other share a key.
func (f Face) Key() Face {
	a, b, c := f[0], f[1], f[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return Face{a, b, c}
}

// Mesh pairs a vertex sequence with a face sequence.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face
}

// Validate checks that every face index refers to a loaded vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d (have %d vertices)",
					ErrFaceIndexOutOfRange, i, idx, n)
			}
		}
	}
	return nil
}
