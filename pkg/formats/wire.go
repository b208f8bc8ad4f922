package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/wire2mesh/pkg/encoding"
	"github.com/Faultbox/wire2mesh/pkg/mesh"
)

// Wireframe format errors.
var (
	ErrMalformedRecord       = errors.New("malformed record")
	ErrDanglingEdgeReference = errors.New("dangling edge reference")
)

// maxLineSize bounds a single record line.
const maxLineSize = 1 << 20

// RecordError locates a bad line in a record file.
type RecordError struct {
	Kind string // "vertex", "edge" or "obj"
	Line int    // 1-based
	Text string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s line %d (%q): %v", e.Kind, e.Line, e.Text, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Wireframe is a loaded vertex list and edge list.
type Wireframe struct {
	Vertices []mesh.Vertex
	Edges    []mesh.Edge
}

// LoadWireframe reads a vertex file and an edge file.
// Edges are checked against the number of loaded vertices.
func LoadWireframe(vertexPath, edgePath string) (*Wireframe, error) {
	vf, err := os.Open(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("opening vertex file: %w", err)
	}
	defer vf.Close()

	vertices, err := ParseVertices(vf)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", vertexPath, err)
	}

	ef, err := os.Open(edgePath)
	if err != nil {
		return nil, fmt.Errorf("opening edge file: %w", err)
	}
	defer ef.Close()

	edges, err := ParseEdges(ef, len(vertices))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", edgePath, err)
	}

	return &Wireframe{Vertices: vertices, Edges: edges}, nil
}

// ParseVertices reads one "x y z" position per line.
// Blank lines are skipped and do not take an index.
func ParseVertices(r io.Reader) ([]mesh.Vertex, error) {
	var vertices []mesh.Vertex

	err := scanRecords(r, func(line int, text string, fields []string) error {
		if len(fields) != 3 {
			return recordErr("vertex", line, text, "expected 3 fields, got %d", len(fields))
		}
		var v mesh.Vertex
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return recordErr("vertex", line, text, "field %d: %q is not a number", i+1, f)
			}
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return recordErr("vertex", line, text, "field %d: %q is not finite", i+1, f)
			}
			v[i] = x
		}
		vertices = append(vertices, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vertices, nil
}

// ParseEdges reads one "i j" pair of 0-based vertex indices per line.
// Order and duplicates are preserved. Every index must be in [0, vertexCount).
func ParseEdges(r io.Reader, vertexCount int) ([]mesh.Edge, error) {
	var edges []mesh.Edge

	err := scanRecords(r, func(line int, text string, fields []string) error {
		if len(fields) != 2 {
			return recordErr("edge", line, text, "expected 2 fields, got %d", len(fields))
		}
		var e mesh.Edge
		for i, f := range fields {
			idx, err := strconv.Atoi(f)
			if err != nil {
				return recordErr("edge", line, text, "field %d: %q is not an integer", i+1, f)
			}
			e[i] = idx
		}
		if e[0] == e[1] {
			return recordErr("edge", line, text, "endpoints must differ")
		}
		for _, idx := range e {
			if idx < 0 || idx >= vertexCount {
				return &RecordError{
					Kind: "edge",
					Line: line,
					Text: text,
					Err:  fmt.Errorf("%w: index %d outside [0, %d)", ErrDanglingEdgeReference, idx, vertexCount),
				}
			}
		}
		edges = append(edges, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// scanRecords calls fn for every non-blank line with its whitespace-split fields.
func scanRecords(r io.Reader, fn func(line int, text string, fields []string) error) error {
	sc := bufio.NewScanner(encoding.NewReader(r))
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if err := fn(line, text, fields); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading records: %w", err)
	}
	return nil
}

func recordErr(kind string, line int, text, format string, args ...any) error {
	return &RecordError{
		Kind: kind,
		Line: line,
		Text: text,
		Err:  fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...)),
	}
}
