package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateArea is the area below which a face counts as degenerate.
const degenerateArea = 1e-12

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vertex `json:"min"`
	Max Vertex `json:"max"`
}

// Size returns the extent along each axis.
func (b Bounds) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Stats summarizes a mesh.
type Stats struct {
	Vertices        int     `json:"vertices"`
	Faces           int     `json:"faces"`
	UniqueFaces     int     `json:"unique_faces"`
	DegenerateFaces int     `json:"degenerate_faces"`
	InvalidFaces    int     `json:"invalid_faces"`
	SurfaceArea     float64 `json:"surface_area"`
	Bounds          Bounds  `json:"bounds"`
}

// ComputeStats walks the mesh once. Faces with out-of-range indices are
// counted as invalid and skipped for area.
func ComputeStats(m *Mesh) Stats {
	st := Stats{
		Vertices: len(m.Vertices),
		Faces:    len(m.Faces),
	}

	if len(m.Vertices) > 0 {
		st.Bounds = Bounds{
			Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
			Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
		}
		for _, v := range m.Vertices {
			updateBounds(&st.Bounds, v)
		}
	}

	unique := make(map[Face]struct{}, len(m.Faces))
	for _, f := range m.Faces {
		unique[f.Key()] = struct{}{}

		area, ok := FaceArea(m.Vertices, f)
		if !ok {
			st.InvalidFaces++
			continue
		}
		if area < degenerateArea {
			st.DegenerateFaces++
		}
		st.SurfaceArea += area
	}
	st.UniqueFaces = len(unique)

	return st
}

// FaceArea returns the triangle area of f. ok is false when an index is out of range.
func FaceArea(vertices []Vertex, f Face) (area float64, ok bool) {
	for _, idx := range f {
		if idx < 0 || idx >= len(vertices) {
			return 0, false
		}
	}
	v0, v1, v2 := vertices[f[0]], vertices[f[1]], vertices[f[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Len() / 2, true
}

func updateBounds(b *Bounds, p Vertex) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}
