package formats

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/wire2mesh/pkg/mesh"
)

// failingWriter errors after accepting limit bytes.
type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, errors.New("disk full")
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestWriteOBJ_Triangle(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []mesh.Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    []mesh.Face{{0, 1, 2}},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, OBJOptions{}); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	want := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteOBJ_HeaderAndPrecision(t *testing.T) {
	m := &mesh.Mesh{Vertices: []mesh.Vertex{{1.0 / 3, 2, -0.5}}}

	var buf bytes.Buffer
	err := WriteOBJ(&buf, m, OBJOptions{
		Precision: 4,
		Name:      "sofa",
		Comments:  []string{"generated", "policy=strict"},
	})
	if err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	want := "# generated\n# policy=strict\no sofa\nv 0.3333 2 -0.5\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteOBJ_NoValidation(t *testing.T) {
	// Out-of-range faces are written as-is.
	m := &mesh.Mesh{Faces: []mesh.Face{{7, 8, 9}}}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, OBJOptions{}); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	if buf.String() != "f 8 9 10\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestWriteOBJ_WriteError(t *testing.T) {
	vertices := make([]mesh.Vertex, 2000)
	m := &mesh.Mesh{Vertices: vertices}

	err := WriteOBJ(&failingWriter{limit: 100}, m, OBJOptions{})
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	vertices := []mesh.Vertex{
		{0, 0, 0},
		{1.0 / 3, -2.0 / 7, 1e-17},
		{math.Pi, math.E, -123456.789},
		{0.1, 0.2, 0.3},
	}
	edges := []mesh.Edge{{0, 1}, {1, 2}, {2, 0}, {2, 3}, {3, 0}}

	for _, opts := range []mesh.ReconstructOptions{mesh.LegacyOptions(), mesh.StrictOptions()} {
		faces := mesh.Reconstruct(edges, opts)
		m := &mesh.Mesh{Vertices: vertices, Faces: faces}

		var buf bytes.Buffer
		if err := WriteOBJ(&buf, m, OBJOptions{Comments: []string{"round trip"}}); err != nil {
			t.Fatalf("WriteOBJ failed: %v", err)
		}

		got, err := ParseOBJ(&buf)
		if err != nil {
			t.Fatalf("ParseOBJ failed: %v", err)
		}
		if !reflect.DeepEqual(got.Vertices, vertices) {
			t.Errorf("vertices differ after round trip:\n got %v\nwant %v", got.Vertices, vertices)
		}
		if !reflect.DeepEqual(got.Faces, faces) {
			t.Errorf("faces differ after round trip:\n got %v\nwant %v", got.Faces, faces)
		}
	}
}

func TestSaveOBJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.obj")

	m := &mesh.Mesh{
		Vertices: []mesh.Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    []mesh.Face{{0, 1, 2}},
	}
	if err := SaveOBJ(path, m, OBJOptions{}); err != nil {
		t.Fatalf("SaveOBJ failed: %v", err)
	}

	// Overwrite with a smaller mesh; the file must be truncated.
	m.Faces = nil
	if err := SaveOBJ(path, m, OBJOptions{}); err != nil {
		t.Fatalf("SaveOBJ overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if strings.Contains(string(data), "f ") {
		t.Errorf("stale face records after overwrite: %q", data)
	}

	loaded, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(loaded.Vertices) != 3 || len(loaded.Faces) != 0 {
		t.Errorf("unexpected mesh %+v", loaded)
	}
}

func TestSaveOBJ_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	// The parent of the target is a regular file.
	err := SaveOBJ(filepath.Join(blocker, "out.obj"), &mesh.Mesh{}, OBJOptions{})
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}

func TestSaveOBJ_MissingParent(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "missing")

	err := SaveOBJ(filepath.Join(parent, "out.obj"), &mesh.Mesh{}, OBJOptions{})
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
	if _, err := os.Stat(parent); !os.IsNotExist(err) {
		t.Errorf("parent directory should not be created, stat: %v", err)
	}
}

func TestWriteOBJ_LineBreaksInHeader(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []mesh.Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    []mesh.Face{{0, 1, 2}},
	}
	opts := OBJOptions{
		Name:     "sofa\nv 9 9 9\nf 1 2 4",
		Comments: []string{"run\r\nv 8 8 8"},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, opts); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	want := "# run v 8 8 8\no sofa v 9 9 9 f 1 2 4\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	got, err := ParseOBJ(&buf)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(got.Vertices) != 3 || len(got.Faces) != 1 {
		t.Errorf("header injected records: %d vertices, %d faces", len(got.Vertices), len(got.Faces))
	}
}

func TestParseOBJ_Features(t *testing.T) {
	input := `# comment
o thing
v 0 0 0
v 1 0 0 1.0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1/1/1 2/2/1 3/3/1 4/4/1
f -4 -3 -2
s off
`
	m, err := ParseOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(m.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(m.Vertices))
	}
	want := []mesh.Face{{0, 1, 2}, {0, 2, 3}, {0, 1, 2}}
	if !reflect.DeepEqual(m.Faces, want) {
		t.Errorf("faces = %v, want %v", m.Faces, want)
	}
}

func TestParseOBJ_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v 1 y 2\n"},
		{"short face", "v 0 0 0\nf 1 1\n"},
		{"zero index", "v 0 0 0\nf 0 1 1\n"},
		{"bad index", "v 0 0 0\nf a 1 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidOBJ) {
				t.Errorf("expected ErrInvalidOBJ, got %v", err)
			}
		})
	}
}
