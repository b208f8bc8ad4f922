package mesh

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// WindingOrder selects how the three indices of a reconstructed face are ordered.
type WindingOrder int

// Winding order constants.
const (
	// PivotFirst emits (pivot, other(e1), other(e2)).
	PivotFirst WindingOrder = iota
	// EdgeOrder emits e1 followed by e2 with the first pivot occurrence removed.
	// This is the face order of legacy OBJ exports.
	EdgeOrder
)

// String returns the config name of the winding order.
func (w WindingOrder) String() string {
	switch w {
	case PivotFirst:
		return "pivot-first"
	case EdgeOrder:
		return "edge-order"
	default:
		return fmt.Sprintf("Unknown(%d)", int(w))
	}
}

// ParseWindingOrder converts a config name into a WindingOrder.
func ParseWindingOrder(s string) (WindingOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pivot-first", "pivot":
		return PivotFirst, nil
	case "edge-order", "edge", "legacy":
		return EdgeOrder, nil
	default:
		return PivotFirst, fmt.Errorf("unknown winding order %q", s)
	}
}

// ReconstructOptions controls face reconstruction.
type ReconstructOptions struct {
	// VerifyThirdEdge only emits a face when the edge closing the triangle
	// is also present in the edge list.
	VerifyThirdEdge bool
	// DedupeFaces drops faces whose vertex set was already emitted.
	DedupeFaces bool
	// Winding selects the index order within each face.
	Winding WindingOrder
	// Workers > 1 scans shards of the outer edge range concurrently.
	// Output order is unaffected.
	Workers int
}

// LegacyOptions reproduces the unverified, undeduplicated face list.
func LegacyOptions() ReconstructOptions {
	return ReconstructOptions{Winding: EdgeOrder}
}

// StrictOptions emits each verified triangle once.
func StrictOptions() ReconstructOptions {
	return ReconstructOptions{
		VerifyThirdEdge: true,
		DedupeFaces:     true,
		Winding:         PivotFirst,
	}
}

// minShardEdges keeps tiny inputs on the sequential path.
const minShardEdges = 256

// Reconstruct infers triangular faces from edge adjacency.
//
// Every pair of edges (e1, e2) with e1's index below e2's is examined. When the
// two edges share exactly one vertex, that pivot and the two other endpoints
// form a face. Faces come out in discovery order: grouped by ascending e1,
// then ascending e2. An empty result is valid.
func Reconstruct(edges []Edge, opts ReconstructOptions) []Face {
	var edgeSet map[Edge]struct{}
	if opts.VerifyThirdEdge {
		edgeSet = make(map[Edge]struct{}, len(edges))
		for _, e := range edges {
			edgeSet[e.Key()] = struct{}{}
		}
	}

	s := scanner{edges: edges, edgeSet: edgeSet, winding: opts.Winding}

	var faces []Face
	if opts.Workers > 1 && len(edges) >= minShardEdges {
		faces = s.scanSharded(opts.Workers)
	} else {
		faces = s.scan(0, len(edges))
	}

	if opts.DedupeFaces {
		faces = dedupe(faces)
	}
	if faces == nil {
		faces = []Face{}
	}
	return faces
}

type scanner struct {
	edges   []Edge
	edgeSet map[Edge]struct{}
	winding WindingOrder
}

// scan examines all pairs whose first edge index lies in [lo, hi).
func (s *scanner) scan(lo, hi int) []Face {
	var faces []Face
	for i := lo; i < hi; i++ {
		e1 := s.edges[i]
		for j := i + 1; j < len(s.edges); j++ {
			e2 := s.edges[j]
			p, ok := sharedVertex(e1, e2)
			if !ok {
				continue
			}
			a, b := e1.Other(p), e2.Other(p)
			if s.edgeSet != nil {
				closing := Edge{a, b}.Key()
				if _, ok := s.edgeSet[closing]; !ok {
					continue
				}
			}
			faces = append(faces, s.face(e1, e2, p, a, b))
		}
	}
	return faces
}

// scanSharded splits the outer index range into contiguous shards and
// concatenates the results in shard order.
func (s *scanner) scanSharded(workers int) []Face {
	n := len(s.edges)
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers

	results := make([][]Face, workers)
	var g errgroup.Group
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		w := w
		lo := w * size
		hi := min(lo+size, n)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			results[w] = s.scan(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // shards never fail

	total := 0
	for _, r := range results {
		total += len(r)
	}
	faces := make([]Face, 0, total)
	for _, r := range results {
		faces = append(faces, r...)
	}
	return faces
}

func (s *scanner) face(e1, e2 Edge, pivot, a, b int) Face {
	if s.winding != EdgeOrder {
		return Face{pivot, a, b}
	}
	joined := [4]int{e1[0], e1[1], e2[0], e2[1]}
	var f Face
	k := 0
	removed := false
	for _, v := range joined {
		if v == pivot && !removed {
			removed = true
			continue
		}
		if k < len(f) {
			f[k] = v
			k++
		}
	}
	return f
}

// sharedVertex returns the single vertex common to both edges.
// ok is false when the edges share no vertex or both vertices.
func sharedVertex(e1, e2 Edge) (v int, ok bool) {
	n := 0
	if e2.Has(e1[0]) {
		v = e1[0]
		n++
	}
	if e1[1] != e1[0] && e2.Has(e1[1]) {
		v = e1[1]
		n++
	}
	return v, n == 1
}

func dedupe(faces []Face) []Face {
	seen := make(map[Face]struct{}, len(faces))
	out := faces[:0:0]
	for _, f := range faces {
		k := f.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}
