package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// ErrParseReject is wrapped by every ParseError.
var ErrParseReject = errors.New("malformed record")

// maxLineSize bounds a single OBJ line.
const maxLineSize = 1 << 20

// ParseError describes one rejected OBJ line.
type ParseError struct {
	Line int    // 1-based line number
	Text string // trimmed line contents
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// OBJResult is the outcome of parsing an OBJ stream.
type OBJResult struct {
	Mesh     *Mesh
	Rejected []*ParseError // skipped lines, in file order
	Lines    int           // total lines read
}

// ParseOBJ reads vertex ("v") and face ("f") records from r. All other
// records are ignored. Malformed v/f lines are skipped and reported in
// OBJResult.Rejected; only read errors are returned.
//
// Face indices are not range checked here, see Mesh.Triangle.
func ParseOBJ(r io.Reader) (*OBJResult, error) {
	res := &OBJResult{Mesh: NewMesh("")}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		res.Lines++
		line := strings.TrimSpace(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v math3d.Vec3
			v, err = parseVertex(fields[1:])
			if err == nil {
				res.Mesh.Vertices = append(res.Mesh.Vertices, v)
			}
		case "f":
			var f Face
			f, err = parseFace(fields[1:])
			if err == nil {
				res.Mesh.Faces = append(res.Mesh.Faces, f)
			}
		default:
			continue
		}

		if err != nil {
			res.Rejected = append(res.Rejected, &ParseError{
				Line: res.Lines,
				Text: line,
				Err:  fmt.Errorf("%w: %w", ErrParseReject, err),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	res.Mesh.CalculateBounds()
	return res, nil
}

// LoadOBJ opens and parses the OBJ file at path.
func LoadOBJ(path string) (*OBJResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	res, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	res.Mesh.Name = filepath.Base(path)
	return res, nil
}

func parseVertex(tokens []string) (math3d.Vec3, error) {
	if len(tokens) != 3 {
		return math3d.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(tokens))
	}

	var c [3]float32
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		c[i] = float32(f)
		if math32.IsNaN(c[i]) || math32.IsInf(c[i], 0) {
			return math3d.Vec3{}, fmt.Errorf("coordinate %d is not finite", i+1)
		}
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

func parseFace(groups []string) (Face, error) {
	if len(groups) != 3 {
		return Face{}, fmt.Errorf("face needs 3 vertices, got %d", len(groups))
	}

	var f Face
	for i, g := range groups {
		pos, _, _ := strings.Cut(g, "/")
		idx, err := strconv.Atoi(pos)
		if err != nil {
			return Face{}, fmt.Errorf("vertex %d: %w", i+1, err)
		}
		if idx < 1 {
			return Face{}, fmt.Errorf("vertex %d: index %d is not positive", i+1, idx)
		}
		f.V[i] = idx
	}
	return f, nil
}
