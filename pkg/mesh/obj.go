package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ParseError reports a malformed OBJ line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("obj line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadOBJ reads a Wavefront OBJ file from disk.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ reads the geometry of a Wavefront OBJ stream. Only "v" and "f"
// records are used; texture coordinates, normals, groups and materials
// are skipped. Face corners may be written as v, v/vt, v//vn or v/vt/vn;
// only the position index is kept. Indices are 1-based, negative indices
// count back from the most recent vertex, and polygons with more than
// three corners are split into a triangle fan.
func ParseOBJ(r io.Reader) (*Model, error) {
	m := New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = parseVertex(m, fields[1:])
		case "f":
			err = parseFace(m, fields[1:])
		}
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseVertex(m *Model, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("vertex needs 3 coordinates, got %d", len(args))
	}
	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return fmt.Errorf("vertex coordinate %q: %w", args[i], err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("vertex coordinate %q: %w", args[i], ErrNonFinite)
		}
		xyz[i] = v
	}
	m.AddVert(Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	return nil
}

func parseFace(m *Model, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
	}
	idx := make([]int, len(args))
	for i, a := range args {
		v, _, _ := strings.Cut(a, "/")
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("face index %q: %w", a, err)
		}
		switch {
		case n > 0:
			idx[i] = n - 1
		case n < 0:
			idx[i] = m.NumVerts() + n
		default:
			return fmt.Errorf("%w: 0", ErrIndexRange)
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		if err := m.AddFace(Face{idx[0], idx[i], idx[i+1]}); err != nil {
			return err
		}
	}
	return nil
}
