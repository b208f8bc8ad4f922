//go:build ignore

// This program generates the octahedron wireframe used by unit tests.
// Run with: go run generate_wire.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	// Axis-aligned unit octahedron: +x, -x, +y, -y, +z, -z.
	vertices := [][3]float64{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}

	var vb strings.Builder
	for _, v := range vertices {
		fmt.Fprintf(&vb, "%g %g %g\n", v[0], v[1], v[2])
	}

	// Every pair except the three opposite pairs is an edge.
	var eb strings.Builder
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			if i/2 == j/2 {
				continue
			}
			fmt.Fprintf(&eb, "%d %d\n", i, j)
		}
	}

	if err := os.WriteFile("octahedron_vertices.txt", []byte(vb.String()), 0644); err != nil {
		panic(err)
	}
	if err := os.WriteFile("octahedron_edges.txt", []byte(eb.String()), 0644); err != nil {
		panic(err)
	}
}
