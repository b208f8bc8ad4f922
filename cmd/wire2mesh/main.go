// wire2mesh reconstructs a triangle mesh from a vertex/edge wireframe and
// writes it as a Wavefront OBJ file.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
