package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cubeOBJ = `# unit cube
o cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
vt 0 0
vn 0 0 1
usemtl none
s off
f 1/1/1 2/1/1 3/1/1 4/1/1
f 5//1 6//1 7//1 8//1
f 1 2 6 5
f -8 -7 -6
`

// ── Model ──

func TestAddFaceIndexRange(t *testing.T) {
	m := New()
	m.AddVert(Vec3{})
	m.AddVert(Vec3{X: 1})
	if err := m.AddFace(Face{0, 1, 2}); !errors.Is(err, ErrIndexRange) {
		t.Fatalf("expected ErrIndexRange, got %v", err)
	}
	if err := m.AddFace(Face{0, 1, -1}); !errors.Is(err, ErrIndexRange) {
		t.Fatalf("expected ErrIndexRange, got %v", err)
	}
	if m.NumFaces() != 0 {
		t.Fatalf("rejected faces must not be stored")
	}
}

func TestEdgesDeduplicates(t *testing.T) {
	m := New()
	for i := 0; i < 4; i++ {
		m.AddVert(Vec3{X: float64(i)})
	}
	// Two triangles sharing the 0-2 diagonal, in opposite directions.
	_ = m.AddFace(Face{0, 1, 2})
	_ = m.AddFace(Face{2, 3, 0})

	edges := Edges(m)
	want := []Edge{{0, 1}, {1, 2}, {2, 0}, {2, 3}, {3, 0}}
	if len(edges) != len(want) {
		t.Fatalf("expected %d edges, got %d: %v", len(want), len(edges), edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}
}

// ── OBJ ──

func TestParseOBJCube(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.NumVerts() != 8 {
		t.Fatalf("expected 8 vertices, got %d", m.NumVerts())
	}
	// Three quads fanned into two triangles each, plus one triangle.
	if m.NumFaces() != 7 {
		t.Fatalf("expected 7 faces, got %d", m.NumFaces())
	}
	if got := m.Vert(6); got != (Vec3{1, 1, 1}) {
		t.Errorf("vertex 6: expected (1,1,1), got %v", got)
	}
	tests := []struct {
		i    int
		want Face
	}{
		{0, Face{0, 1, 2}},
		{1, Face{0, 2, 3}},
		{2, Face{4, 5, 6}},
		{4, Face{0, 1, 5}},
		{6, Face{0, 1, 2}}, // negative indices
	}
	for _, tc := range tests {
		if got := m.Face(tc.i); got != tc.want {
			t.Errorf("face %d: expected %v, got %v", tc.i, tc.want, got)
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name, src string
		line      int
	}{
		{"short vertex", "v 1 2\n", 1},
		{"bad float", "v 1 2 x\n", 1},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", 3},
		{"bad index", "v 0 0 0\nf 1 a 1\n", 2},
		{"zero index", "v 0 0 0\nf 0 1 1\n", 2},
		{"dangling index", "v 0 0 0\n\n# c\nf 1 1 9\n", 4},
		{"nan", "v 0 0 0\nv nan 0 0\n", 2},
		{"inf", "v 0 -Inf 0\n", 1},
		{"overflow", "v 0 0 1e400\n", 1},
	}
	for _, tc := range tests {
		_, err := ParseOBJ(strings.NewReader(tc.src))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected *ParseError, got %v", tc.name, err)
			continue
		}
		if pe.Line != tc.line {
			t.Errorf("%s: expected line %d, got %d", tc.name, tc.line, pe.Line)
		}
	}
}

func TestParseOBJIndexRangeUnwraps(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("v 0 0 0\nf 1 1 2\n"))
	if !errors.Is(err, ErrIndexRange) {
		t.Fatalf("expected ErrIndexRange, got %v", err)
	}
}

func TestParseOBJNonFinite(t *testing.T) {
	for _, src := range []string{"v nan 0 0\n", "v 0 inf 0\n", "v 0 0 +Infinity\n"} {
		_, err := ParseOBJ(strings.NewReader(src))
		if !errors.Is(err, ErrNonFinite) {
			t.Errorf("%q: expected ErrNonFinite, got %v", src, err)
		}
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := os.WriteFile(path, []byte(cubeOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if m.NumFaces() != 7 {
		t.Errorf("expected 7 faces, got %d", m.NumFaces())
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "nope.obj")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
