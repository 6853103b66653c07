package plants

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func testConverter(t *testing.T, dir string) *Converter {
	artifactPath := filepath.Join(dir, "input", ArtifactFile)
	writeTestFile(t, artifactPath, artifactOBJ)
	opts := DefaultMeshOptions()
	opts.TextureSize = 32
	converter, err := NewConverter(artifactPath, opts)
	if err != nil {
		t.Fatal(err)
	}
	if converter.ArtifactVertices != 4 {
		t.Fatalf("expected 4 artifact vertices but got %d", converter.ArtifactVertices)
	}
	return converter
}

func TestConverterMakeMesh(t *testing.T) {
	dir := t.TempDir()
	converter := testConverter(t, dir)
	inputPath := filepath.Join(dir, "input", "plant_025.obj")
	writeTestFile(t, inputPath, plantOBJ)

	outputPath := filepath.Join(dir, "model", "meshes", "plant_day_025.dae")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		t.Fatal(err)
	}
	info, err := converter.MakeMesh(inputPath, outputPath)
	if err != nil {
		t.Fatal(err)
	}

	if info.Mesh.NumVertices() != 5 || len(info.Mesh.Faces) != 3 {
		t.Fatalf("unexpected mesh size: %d vertices, %d faces", info.Mesh.NumVertices(),
			len(info.Mesh.Faces))
	}
	if math.Abs(info.Min.Y) > 1e-8 || math.Abs(info.Max.Y-0.5) > 1e-8 {
		t.Fatalf("unexpected bounds: %v %v", info.Min, info.Max)
	}
	// The ground contact moves to the origin.
	if c := info.Mesh.Vertices[1]; c.Norm() > 1e-8 {
		t.Fatalf("expected ground contact at origin but got %v", c)
	}

	expectedTexture := filepath.Join(dir, "model", "materials", "textures", "plant_day_025.png")
	if info.TexturePath != expectedTexture {
		t.Fatalf("expected texture %s but got %s", expectedTexture, info.TexturePath)
	}
	img := loadTestPNG(t, expectedTexture)
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected texture bounds: %v", img.Bounds())
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("../materials/textures/plant_day_025.png")) {
		t.Fatal("mesh does not reference its texture")
	}
}

func TestConverterMakeMeshGLB(t *testing.T) {
	dir := t.TempDir()
	converter := testConverter(t, dir)
	inputPath := filepath.Join(dir, "input", "plant_025.obj")
	writeTestFile(t, inputPath, plantOBJ)

	outputPath := filepath.Join(dir, "model", "meshes", "plant_day_025.glb")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := converter.MakeMesh(inputPath, outputPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("glTF")) {
		t.Fatal("output is not a binary glTF file")
	}
}

func TestConverterNoVertices(t *testing.T) {
	dir := t.TempDir()
	converter := testConverter(t, dir)
	inputPath := filepath.Join(dir, "input", "plant_035.obj")
	writeTestFile(t, inputPath, artifactOBJ)

	outputPath := filepath.Join(dir, "model", "meshes", "plant_day_035.dae")
	_, err := converter.MakeMesh(inputPath, outputPath)
	if !errors.Is(err, ErrNoVertices) {
		t.Fatalf("expected ErrNoVertices but got %v", err)
	}
	if fileExists(outputPath) {
		t.Fatal("mesh should not be written")
	}
	if fileExists(filepath.Join(dir, "model", "materials")) {
		t.Fatal("texture should not be written")
	}
}

func TestConverterUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	converter := testConverter(t, dir)
	inputPath := filepath.Join(dir, "input", "plant_025.obj")
	writeTestFile(t, inputPath, plantOBJ)
	if _, err := converter.MakeMesh(inputPath, filepath.Join(dir, "plant.stl")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
