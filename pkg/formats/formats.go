// Package formats reads wireframe record files and reads and writes
// Wavefront OBJ meshes.
package formats

// Note: vertex and edge record files are handled in wire.go
// Note: OBJ output and read-back are handled in obj.go
