package plants

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Mesh is an indexed triangle mesh.
//
// Unlike model3d.Mesh, a Mesh keeps vertices in the order they appeared in
// the file it was read from, so that vertices can be addressed by index.
type Mesh struct {
	Vertices []model3d.Coord3D
	Faces    [][3]int
}

// ReadOBJ decodes the geometry of a Wavefront OBJ file.
//
// Only vertex positions and faces are read. Faces with more than three
// corners are triangulated as a fan around their first corner.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	res := &Mesh{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, errors.Errorf("read OBJ: line %d: vertex needs three coordinates", lineNum)
			}
			var coords [3]float64
			for i := range coords {
				x, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, errors.Wrapf(err, "read OBJ: line %d", lineNum)
				}
				coords[i] = x
			}
			res.Vertices = append(res.Vertices, model3d.XYZ(coords[0], coords[1], coords[2]))
		case "f":
			if len(fields) < 4 {
				return nil, errors.Errorf("read OBJ: line %d: face needs at least three corners", lineNum)
			}
			corners := make([]int, len(fields)-1)
			for i, field := range fields[1:] {
				idx, err := parseFaceIndex(field, len(res.Vertices))
				if err != nil {
					return nil, errors.Wrapf(err, "read OBJ: line %d", lineNum)
				}
				corners[i] = idx
			}
			for i := 1; i+1 < len(corners); i++ {
				res.Faces = append(res.Faces, [3]int{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read OBJ")
	}
	for i, f := range res.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(res.Vertices) {
				return nil, errors.Errorf("read OBJ: face %d references missing vertex %d", i, idx+1)
			}
		}
	}
	return res, nil
}

// LoadOBJ reads an OBJ file from disk.
func LoadOBJ(path string) (*Mesh, error) {
	return Load(path, ReadOBJ)
}

func parseFaceIndex(field string, numVertices int) (int, error) {
	pos := field
	if i := strings.IndexByte(field, '/'); i >= 0 {
		pos = field[:i]
	}
	idx, err := strconv.Atoi(pos)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		// Relative to the most recent vertex.
		return numVertices + idx, nil
	} else if idx == 0 {
		return 0, errors.New("face index 0 is invalid")
	}
	return idx - 1, nil
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int {
	return len(m.Vertices)
}

// RemoveVertexPrefix creates a new mesh without the first n vertices and
// without any face that touches one of them.
//
// The remaining vertices keep their relative order.
func (m *Mesh) RemoveVertexPrefix(n int) *Mesh {
	if n <= 0 {
		return &Mesh{
			Vertices: append([]model3d.Coord3D{}, m.Vertices...),
			Faces:    append([][3]int{}, m.Faces...),
		}
	}
	res := &Mesh{}
	if n < len(m.Vertices) {
		res.Vertices = append(res.Vertices, m.Vertices[n:]...)
	}
	for _, f := range m.Faces {
		if f[0] < n || f[1] < n || f[2] < n {
			continue
		}
		res.Faces = append(res.Faces, [3]int{f[0] - n, f[1] - n, f[2] - n})
	}
	return res
}

// Translate moves every vertex by offset in place.
func (m *Mesh) Translate(offset model3d.Coord3D) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Add(offset)
	}
}

// Min gets the component-wise minimum vertex.
func (m *Mesh) Min() model3d.Coord3D {
	if len(m.Vertices) == 0 {
		return model3d.Coord3D{}
	}
	res := m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		res = res.Min(v)
	}
	return res
}

// Max gets the component-wise maximum vertex.
func (m *Mesh) Max() model3d.Coord3D {
	if len(m.Vertices) == 0 {
		return model3d.Coord3D{}
	}
	res := m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		res = res.Max(v)
	}
	return res
}

// Triangle gets the coordinates of the i-th face.
func (m *Mesh) Triangle(i int) *model3d.Triangle {
	f := m.Faces[i]
	return &model3d.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// FaceNormal gets the unit normal of the i-th face, or +Y for degenerate
// faces.
func (m *Mesh) FaceNormal(i int) model3d.Coord3D {
	t := m.Triangle(i)
	if t.Area() == 0 {
		return model3d.Y(1)
	}
	return t.Normal()
}

// HorizontalRadius gets the largest distance of a vertex from the vertical
// (Y) axis through the origin.
func (m *Mesh) HorizontalRadius() float64 {
	var res float64
	for _, v := range m.Vertices {
		res = math.Max(res, math.Hypot(v.X, v.Z))
	}
	return res
}

// Model3D converts m into a model3d.Mesh, dropping degenerate faces.
func (m *Mesh) Model3D() *model3d.Mesh {
	res := model3d.NewMesh()
	for i := range m.Faces {
		t := m.Triangle(i)
		if t.Area() == 0 {
			continue
		}
		res.Add(t)
	}
	return res
}
