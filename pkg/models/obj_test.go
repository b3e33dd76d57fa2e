package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/flatshade/pkg/math3d"
)

func TestParseOBJVertex(t *testing.T) {
	res, err := ParseOBJ(strings.NewReader("v 0.608654 -0.568839 -0.416318\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(res.Mesh.Vertices) != 1 {
		t.Fatalf("got %d vertices, want 1", len(res.Mesh.Vertices))
	}
	want := math3d.V3(0.608654, -0.568839, -0.416318)
	if res.Mesh.Vertices[0] != want {
		t.Errorf("vertex = %v, want %v", res.Mesh.Vertices[0], want)
	}
}

func TestParseOBJFace(t *testing.T) {
	tests := []struct {
		line string
		want [3]int
	}{
		{"f 1193/1240/1193 1180/1227/1180 1179/1226/1179", [3]int{1193, 1180, 1179}},
		{"f 1 2 3", [3]int{1, 2, 3}},
		{"f 4//7 5//8 6//9", [3]int{4, 5, 6}},
		{"f\t7/1\t8/2  9/3", [3]int{7, 8, 9}},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			res, err := ParseOBJ(strings.NewReader(tc.line))
			if err != nil {
				t.Fatalf("ParseOBJ failed: %v", err)
			}
			if len(res.Rejected) != 0 {
				t.Fatalf("unexpected rejects: %v", res.Rejected)
			}
			if len(res.Mesh.Faces) != 1 || res.Mesh.Faces[0].V != tc.want {
				t.Errorf("faces = %v, want %v", res.Mesh.Faces, tc.want)
			}
		})
	}
}

func TestParseOBJRejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"vertex too short", "v 1 2"},
		{"vertex too long", "v 1 2 3 4"},
		{"vertex not a number", "v 1 abc 3"},
		{"vertex not finite", "v 1 NaN 3"},
		{"quad face", "f 1 2 3 4"},
		{"face too short", "f 1 2"},
		{"face zero index", "f 0 1 2"},
		{"face negative index", "f -1 -2 -3"},
		{"face empty position", "f /1 2 3"},
		{"face not a number", "f a b c"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ParseOBJ(strings.NewReader(tc.line + "\n"))
			if err != nil {
				t.Fatalf("ParseOBJ failed: %v", err)
			}
			if len(res.Mesh.Vertices) != 0 || len(res.Mesh.Faces) != 0 {
				t.Errorf("malformed line was accepted: %+v", res.Mesh)
			}
			if len(res.Rejected) != 1 {
				t.Fatalf("got %d rejects, want 1", len(res.Rejected))
			}
			rej := res.Rejected[0]
			if rej.Line != 1 || rej.Text != tc.line {
				t.Errorf("reject = line %d %q", rej.Line, rej.Text)
			}
			if !errors.Is(rej, ErrParseReject) {
				t.Errorf("reject does not wrap ErrParseReject: %v", rej)
			}
		})
	}
}

func TestParseOBJIgnoresOtherRecords(t *testing.T) {
	src := `# a comment
mtllib head.mtl
o head
v -0.5 -0.5 0
v 0.5 -0.5 0

vt 0.1 0.2
vn 0 0 1
v 0 0.5 0
g group
s off
usemtl skin
f 1/1/1 2/2/2 3/3/3
bogus line here
`
	res, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(res.Rejected) != 0 {
		t.Errorf("unexpected rejects: %v", res.Rejected)
	}
	if got := res.Mesh.VertexCount(); got != 3 {
		t.Errorf("VertexCount = %d, want 3", got)
	}
	if got := res.Mesh.TriangleCount(); got != 1 {
		t.Errorf("TriangleCount = %d, want 1", got)
	}
	if res.Lines != 14 {
		t.Errorf("Lines = %d, want 14", res.Lines)
	}
	if res.Mesh.BoundsMax != math3d.V3(0.5, 0.5, 0) {
		t.Errorf("bounds not calculated: %v", res.Mesh.BoundsMax)
	}
}

// TestParseOBJKeepsGoodLines verifies rejects do not disturb neighbouring
// records or their order.
func TestParseOBJKeepsGoodLines(t *testing.T) {
	src := "v 0 0 0\nv 1 x 0\nv 1 0 0\nf 1 2\nv 0 1 0\nf 1 2 3\n"
	res, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(res.Mesh.Vertices) != 3 || len(res.Mesh.Faces) != 1 {
		t.Fatalf("got %d vertices, %d faces", len(res.Mesh.Vertices), len(res.Mesh.Faces))
	}
	if res.Mesh.Vertices[1] != math3d.V3(1, 0, 0) {
		t.Errorf("vertex 2 = %v", res.Mesh.Vertices[1])
	}
	if len(res.Rejected) != 2 || res.Rejected[0].Line != 2 || res.Rejected[1].Line != 4 {
		t.Errorf("rejects = %v", res.Rejected)
	}
}

func TestParseOBJEmpty(t *testing.T) {
	res, err := ParseOBJ(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if res.Mesh.VertexCount() != 0 || res.Mesh.TriangleCount() != 0 {
		t.Errorf("expected empty mesh, got %+v", res.Mesh)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if res.Mesh.Name != "tri.obj" {
		t.Errorf("Name = %q", res.Mesh.Name)
	}
	if _, err := res.Mesh.Triangle(0); err != nil {
		t.Errorf("Triangle(0) failed: %v", err)
	}
}

func TestLoadOBJInvalidPath(t *testing.T) {
	_, err := LoadOBJ("/nonexistent/path.obj")
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func BenchmarkParseOBJ(b *testing.B) {
	var sb strings.Builder
	for i := range 1000 {
		sb.WriteString("v 0.608654 -0.568839 -0.416318\n")
		if i >= 2 {
			sb.WriteString("f 1193/1240/1193 1180/1227/1180 1179/1226/1179\n")
		}
	}
	src := sb.String()

	for b.Loop() {
		_, _ = ParseOBJ(strings.NewReader(src))
	}
}
