package plants

import (
	"math"
	"strings"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestReadOBJ(t *testing.T) {
	mesh, err := ReadOBJ(strings.NewReader(plantOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if mesh.NumVertices() != 9 {
		t.Fatalf("expected 9 vertices but got %d", mesh.NumVertices())
	}
	if len(mesh.Faces) != 6 {
		t.Fatalf("expected 6 faces but got %d", len(mesh.Faces))
	}
	if mesh.Vertices[4] != model3d.XYZ(0.5, 1, 0.5) {
		t.Fatalf("unexpected vertex: %v", mesh.Vertices[4])
	}
	if mesh.Faces[2] != [3]int{4, 6, 7} {
		t.Fatalf("unexpected face: %v", mesh.Faces[2])
	}
}

func TestReadOBJPolygons(t *testing.T) {
	data := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 0 2 0\nf -5 -4 -3 -2 -1\n"
	mesh, err := ReadOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	expected := [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	if len(mesh.Faces) != len(expected) {
		t.Fatalf("expected %d faces but got %d", len(expected), len(mesh.Faces))
	}
	for i, f := range expected {
		if mesh.Faces[i] != f {
			t.Errorf("face %d: expected %v but got %v", i, f, mesh.Faces[i])
		}
	}
}

func TestReadOBJErrors(t *testing.T) {
	for _, data := range []string{
		"v 0 0\n",
		"v 0 a 0\n",
		"v 0 0 0\nf 1 2\n",
		"v 0 0 0\nf 1 2 3\n",
		"v 0 0 0\nf 0 1 1\n",
		"v 0 0 0\nf x 1 1\n",
	} {
		if _, err := ReadOBJ(strings.NewReader(data)); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}

func TestRemoveVertexPrefix(t *testing.T) {
	mesh, err := ReadOBJ(strings.NewReader(plantOBJ))
	if err != nil {
		t.Fatal(err)
	}
	plant := mesh.RemoveVertexPrefix(4)
	if plant.NumVertices() != 5 {
		t.Fatalf("expected 5 vertices but got %d", plant.NumVertices())
	}
	if plant.Vertices[0] != mesh.Vertices[4] {
		t.Fatalf("expected first vertex %v but got %v", mesh.Vertices[4], plant.Vertices[0])
	}
	expected := [][3]int{{0, 2, 3}, {1, 2, 3}, {2, 4, 3}}
	if len(plant.Faces) != len(expected) {
		t.Fatalf("expected %d faces but got %d", len(expected), len(plant.Faces))
	}
	for i, f := range expected {
		if plant.Faces[i] != f {
			t.Errorf("face %d: expected %v but got %v", i, f, plant.Faces[i])
		}
	}

	if n := mesh.RemoveVertexPrefix(9).NumVertices(); n != 0 {
		t.Fatalf("expected no vertices but got %d", n)
	}
	if n := mesh.RemoveVertexPrefix(100).NumVertices(); n != 0 {
		t.Fatalf("expected no vertices but got %d", n)
	}

	// The original mesh is left alone.
	if mesh.NumVertices() != 9 || len(mesh.Faces) != 6 {
		t.Fatal("original mesh was modified")
	}
}

func TestMeshBounds(t *testing.T) {
	mesh, err := ReadOBJ(strings.NewReader(plantOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Min() != model3d.XYZ(0, 0, 0) || mesh.Max() != model3d.XYZ(1, 1.5, 1) {
		t.Fatalf("unexpected bounds: %v %v", mesh.Min(), mesh.Max())
	}
	mesh.Translate(model3d.XYZ(-1, 0, 0))
	if r := mesh.HorizontalRadius(); math.Abs(r-math.Sqrt(2)) > 1e-8 {
		t.Fatalf("expected radius sqrt(2) but got %f", r)
	}
	if n := mesh.Model3D().NumTriangles(); n != 6 {
		t.Fatalf("expected 6 triangles but got %d", n)
	}
}
