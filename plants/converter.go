package plants

import (
	"image/color"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// ErrNoVertices is returned when nothing but the artifact is left of a mesh.
var ErrNoVertices = errors.New("no vertices left after removing the artifact")

// DefaultPlantColor is the RGB color baked into plant textures.
var DefaultPlantColor = [3]uint8{95, 140, 48}

// MeshOptions configures a Converter.
type MeshOptions struct {
	Color           [3]uint8
	TextureSize     int
	GroundTolerance float64
	GroundDeviation float64
}

// DefaultMeshOptions gets the options used for GroIMP plant exports.
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{
		Color:           DefaultPlantColor,
		TextureSize:     DefaultTextureSize,
		GroundTolerance: DefaultGroundTolerance,
		GroundDeviation: DefaultGroundDeviation,
	}
}

// A TexturedMesh is a mesh with per-wedge texture coordinates into a single
// texture image.
type TexturedMesh struct {
	Mesh *Mesh
	UVs  [][3][2]float64

	// Texture is the path of the texture image, relative to the directory of
	// the mesh file and separated by forward slashes.
	Texture string
}

// MeshInfo describes a mesh written by Converter.MakeMesh.
type MeshInfo struct {
	Mesh        *Mesh
	TexturePath string
	Min         model3d.Coord3D
	Max         model3d.Coord3D
}

// A Converter turns combined GroIMP exports into plant-only textured
// meshes.
//
// GroIMP writes a fixed reference object (the artifact) in front of the
// plant geometry of every export. The artifact is identified by its vertex
// count, so the first ArtifactVertices vertices of every input are dropped.
type Converter struct {
	ArtifactVertices int
	Options          MeshOptions
}

// NewConverter creates a Converter from the artifact mesh at artifactPath.
func NewConverter(artifactPath string, opts MeshOptions) (*Converter, error) {
	artifact, err := LoadOBJ(artifactPath)
	if err != nil {
		return nil, errors.Wrap(err, "load artifact")
	}
	return &Converter{
		ArtifactVertices: artifact.NumVertices(),
		Options:          opts,
	}, nil
}

// MakeMesh converts the OBJ file at inputPath into a recentered, textured
// mesh at outputPath.
//
// The format is chosen by the extension of outputPath (.dae or .glb). The
// texture is written to ../materials/textures/<name>.png relative to the
// mesh, where <name> is the base name of outputPath without extension.
//
// If no plant vertices are left, ErrNoVertices is returned and no file is
// written.
func (c *Converter) MakeMesh(inputPath, outputPath string) (*MeshInfo, error) {
	ext := strings.ToLower(filepath.Ext(outputPath))
	if ext != ".dae" && ext != ".glb" {
		return nil, errors.Errorf("make mesh: unsupported output format %q", ext)
	}

	input, err := LoadOBJ(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "make mesh")
	}
	mesh := input.RemoveVertexPrefix(c.ArtifactVertices)
	if mesh.NumVertices() == 0 {
		return nil, errors.Wrapf(ErrNoVertices, "make mesh %s", outputPath)
	}

	center, err := GroundContact(mesh.Vertices, c.Options.GroundTolerance, c.Options.GroundDeviation)
	if err != nil {
		return nil, errors.Wrap(err, "make mesh")
	}
	mesh.Translate(center.Scale(-1))

	stem := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
	textureRef := path.Join("..", "materials", "textures", stem+".png")
	texturePath := filepath.Join(filepath.Dir(outputPath), filepath.FromSlash(textureRef))
	if err := os.MkdirAll(filepath.Dir(texturePath), 0755); err != nil {
		return nil, errors.Wrap(err, "make mesh")
	}
	col := c.Options.Color
	err = BakeTexture(texturePath, color.RGBA{R: col[0], G: col[1], B: col[2], A: 255},
		c.Options.TextureSize)
	if err != nil {
		return nil, errors.Wrap(err, "make mesh")
	}

	textured := &TexturedMesh{
		Mesh:    mesh,
		UVs:     TrivialWedgeUVs(len(mesh.Faces), c.Options.TextureSize),
		Texture: textureRef,
	}
	if ext == ".glb" {
		err = SaveGLB(outputPath, textured)
	} else {
		err = Save(outputPath, textured, WriteCollada)
	}
	if err != nil {
		return nil, errors.Wrap(err, "make mesh")
	}

	return &MeshInfo{
		Mesh:        mesh,
		TexturePath: texturePath,
		Min:         mesh.Min(),
		Max:         mesh.Max(),
	}, nil
}
