package plants

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/model3d/render3d"
)

const DefaultThumbnailSize = 256

// RenderThumbnail renders a flat-colored view of a mesh to a PNG file,
// creating the parent directory if needed.
func RenderThumbnail(path string, mesh *Mesh, col [3]uint8, size int) error {
	m := mesh.Model3D()
	if m.NumTriangles() == 0 {
		return errors.New("render thumbnail: mesh has no faces")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "render thumbnail")
	}
	surfaceColor := render3d.NewColorRGB(
		float64(col[0])/255,
		float64(col[1])/255,
		float64(col[2])/255,
	)
	object := render3d.Objectify(
		model3d.MeshToCollider(m),
		func(c model3d.Coord3D, rc model3d.RayCollision) render3d.Color {
			return surfaceColor
		},
	)
	return errors.Wrap(render3d.SaveRandomGrid(path, object, 1, 1, size, nil), "render thumbnail")
}
