package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/wire2mesh/pkg/mesh"
)

// OBJ format errors.
var (
	ErrIOFailure  = errors.New("mesh write failed")
	ErrInvalidOBJ = errors.New("invalid OBJ data")
)

// OBJOptions controls OBJ output.
type OBJOptions struct {
	// Precision is the number of significant digits per coordinate.
	// Zero or negative selects the shortest exact representation.
	Precision int
	// Name, if set, is written as an "o" record.
	Name string
	// Comments are written as "#" lines before any record.
	// Line breaks in Name and Comments are written as spaces.
	Comments []string
}

// WriteOBJ writes all vertices as "v x y z" lines followed by all faces as
// "f a b c" lines with 1-based indices. Nothing is reordered or validated.
func WriteOBJ(w io.Writer, m *mesh.Mesh, opts OBJOptions) error {
	bw := bufio.NewWriter(w)

	prec := opts.Precision
	if prec <= 0 {
		prec = -1
	}

	for _, c := range opts.Comments {
		if _, err := fmt.Fprintf(bw, "# %s\n", singleLine(c)); err != nil {
			return fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
	}
	if opts.Name != "" {
		if _, err := fmt.Fprintf(bw, "o %s\n", singleLine(opts.Name)); err != nil {
			return fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
	}

	buf := make([]byte, 0, 96)
	for i, v := range m.Vertices {
		buf = append(buf[:0], 'v')
		for _, x := range v {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, x, 'g', prec, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("%w: vertex %d: %w", ErrIOFailure, i, err)
		}
	}

	for i, f := range m.Faces {
		buf = append(buf[:0], 'f')
		for _, idx := range f {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(idx)+1, 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("%w: face %d: %w", ErrIOFailure, i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// SaveOBJ creates or truncates path and writes the mesh to it. The parent
// directory must exist. The file is closed on every return path.
func SaveOBJ(path string, m *mesh.Mesh, opts OBJOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrIOFailure, path, cerr)
		}
	}()

	return WriteOBJ(f, m, opts)
}

// LoadOBJ reads an OBJ file from disk.
func LoadOBJ(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh file: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ reads "v" and "f" records. Polygons are fan-triangulated,
// texture/normal references ("1/2/3") are dropped and negative indices are
// resolved relative to the vertices read so far. Other records are ignored.
func ParseOBJ(r io.Reader) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}

	err := scanRecords(r, func(line int, text string, fields []string) error {
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return objErr(line, text, "vertex needs 3 coordinates, got %d", len(fields)-1)
			}
			var v mesh.Vertex
			for i := 0; i < 3; i++ {
				x, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return objErr(line, text, "coordinate %q is not a number", fields[i+1])
				}
				v[i] = x
			}
			m.Vertices = append(m.Vertices, v)

		case "f":
			if len(fields) < 4 {
				return objErr(line, text, "face needs at least 3 vertices, got %d", len(fields)-1)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, _, _ := strings.Cut(tok, "/")
				n, err := strconv.Atoi(ref)
				if err != nil || n == 0 {
					return objErr(line, text, "bad vertex reference %q", tok)
				}
				if n < 0 {
					idx = append(idx, len(m.Vertices)+n)
				} else {
					idx = append(idx, n-1)
				}
			}
			for i := 1; i+1 < len(idx); i++ {
				m.Faces = append(m.Faces, mesh.Face{idx[0], idx[i], idx[i+1]})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func objErr(line int, text, format string, args ...any) error {
	return &RecordError{
		Kind: "obj",
		Line: line,
		Text: text,
		Err:  fmt.Errorf("%w: %s", ErrInvalidOBJ, fmt.Sprintf(format, args...)),
	}
}
