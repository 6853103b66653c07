package plants

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const colladaNamespace = "http://www.collada.org/2005/11/COLLADASchema"

type colladaDocument struct {
	XMLName      xml.Name             `xml:"COLLADA"`
	Namespace    string               `xml:"xmlns,attr"`
	Version      string               `xml:"version,attr"`
	Asset        colladaAsset         `xml:"asset"`
	Images       []colladaImage       `xml:"library_images>image"`
	Effects      []colladaEffect      `xml:"library_effects>effect"`
	Materials    []colladaMaterial    `xml:"library_materials>material"`
	Geometries   []colladaGeometry    `xml:"library_geometries>geometry"`
	VisualScenes []colladaVisualScene `xml:"library_visual_scenes>visual_scene"`
	Scene        colladaScene         `xml:"scene"`
}

type colladaAsset struct {
	AuthoringTool string      `xml:"contributor>authoring_tool"`
	Created       string      `xml:"created"`
	Modified      string      `xml:"modified"`
	Unit          colladaUnit `xml:"unit"`
	UpAxis        string      `xml:"up_axis"`
}

type colladaUnit struct {
	Name  string  `xml:"name,attr"`
	Meter float64 `xml:"meter,attr"`
}

type colladaImage struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name,attr"`
	InitFrom string `xml:"init_from"`
}

type colladaEffect struct {
	ID      string               `xml:"id,attr"`
	Profile colladaProfileCommon `xml:"profile_COMMON"`
}

type colladaProfileCommon struct {
	Params    []colladaNewParam `xml:"newparam"`
	Technique colladaTechnique  `xml:"technique"`
}

type colladaNewParam struct {
	SID     string          `xml:"sid,attr"`
	Surface *colladaSurface `xml:"surface,omitempty"`
	Sampler *colladaSampler `xml:"sampler2D,omitempty"`
}

type colladaSurface struct {
	Type     string `xml:"type,attr"`
	InitFrom string `xml:"init_from"`
	Format   string `xml:"format"`
}

type colladaSampler struct {
	Source    string `xml:"source"`
	MinFilter string `xml:"minfilter"`
	MagFilter string `xml:"magfilter"`
}

type colladaTechnique struct {
	SID     string                `xml:"sid,attr"`
	Diffuse colladaTextureBinding `xml:"lambert>diffuse>texture"`
}

type colladaTextureBinding struct {
	Texture  string `xml:"texture,attr"`
	TexCoord string `xml:"texcoord,attr"`
}

type colladaMaterial struct {
	ID             string `xml:"id,attr"`
	Name           string `xml:"name,attr"`
	InstanceEffect struct {
		URL string `xml:"url,attr"`
	} `xml:"instance_effect"`
}

type colladaGeometry struct {
	ID   string      `xml:"id,attr"`
	Name string      `xml:"name,attr"`
	Mesh colladaMesh `xml:"mesh"`
}

type colladaMesh struct {
	Sources   []colladaSource  `xml:"source"`
	Vertices  colladaVertices  `xml:"vertices"`
	Triangles colladaTriangles `xml:"triangles"`
}

type colladaSource struct {
	ID         string            `xml:"id,attr"`
	FloatArray colladaFloatArray `xml:"float_array"`
	Accessor   colladaAccessor   `xml:"technique_common>accessor"`
}

type colladaFloatArray struct {
	ID     string `xml:"id,attr"`
	Count  int    `xml:"count,attr"`
	Values string `xml:",chardata"`
}

type colladaAccessor struct {
	Source string         `xml:"source,attr"`
	Count  int            `xml:"count,attr"`
	Stride int            `xml:"stride,attr"`
	Params []colladaParam `xml:"param"`
}

type colladaParam struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type colladaVertices struct {
	ID    string       `xml:"id,attr"`
	Input colladaInput `xml:"input"`
}

type colladaInput struct {
	Offset   *int   `xml:"offset,attr,omitempty"`
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Set      *int   `xml:"set,attr,omitempty"`
}

type colladaTriangles struct {
	Count    int            `xml:"count,attr"`
	Material string         `xml:"material,attr"`
	Inputs   []colladaInput `xml:"input"`
	Indices  string         `xml:"p"`
}

type colladaVisualScene struct {
	ID   string      `xml:"id,attr"`
	Name string      `xml:"name,attr"`
	Node colladaNode `xml:"node"`
}

type colladaNode struct {
	ID       string                  `xml:"id,attr"`
	Name     string                  `xml:"name,attr"`
	Instance colladaInstanceGeometry `xml:"instance_geometry"`
}

type colladaInstanceGeometry struct {
	URL      string                  `xml:"url,attr"`
	Material colladaInstanceMaterial `xml:"bind_material>technique_common>instance_material"`
}

type colladaInstanceMaterial struct {
	Symbol string `xml:"symbol,attr"`
	Target string `xml:"target,attr"`
	Bind   struct {
		Semantic      string `xml:"semantic,attr"`
		InputSemantic string `xml:"input_semantic,attr"`
		InputSet      int    `xml:"input_set,attr"`
	} `xml:"bind_vertex_input"`
}

type colladaScene struct {
	Instance struct {
		URL string `xml:"url,attr"`
	} `xml:"instance_visual_scene"`
}

// WriteCollada encodes a textured mesh as a COLLADA 1.4.1 document.
//
// Positions are shared between faces, while normals are per face and
// texture coordinates are per wedge (face corner).
func WriteCollada(w io.Writer, tm *TexturedMesh) error {
	doc := newColladaDocument(tm)
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "write collada")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "write collada")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, "write collada")
	}
	return nil
}

func newColladaDocument(tm *TexturedMesh) *colladaDocument {
	mesh := tm.Mesh
	now := time.Now().UTC().Format(time.RFC3339)

	positions := make([]float64, 0, 3*len(mesh.Vertices))
	for _, v := range mesh.Vertices {
		positions = append(positions, v.X, v.Y, v.Z)
	}
	normals := make([]float64, 0, 3*len(mesh.Faces))
	for i := range mesh.Faces {
		n := mesh.FaceNormal(i)
		normals = append(normals, n.X, n.Y, n.Z)
	}
	texCoords := make([]float64, 0, 6*len(mesh.Faces))
	for _, uvs := range tm.UVs {
		for _, uv := range uvs {
			texCoords = append(texCoords, uv[0], uv[1])
		}
	}
	indices := make([]int, 0, 9*len(mesh.Faces))
	for i, f := range mesh.Faces {
		for j, v := range f {
			indices = append(indices, v, i, 3*i+j)
		}
	}

	zero, one, two := 0, 1, 2
	doc := &colladaDocument{
		Namespace: colladaNamespace,
		Version:   "1.4.1",
		Asset: colladaAsset{
			AuthoringTool: "plant-models",
			Created:       now,
			Modified:      now,
			Unit:          colladaUnit{Name: "meter", Meter: 1},
			UpAxis:        "Y_UP",
		},
		Images: []colladaImage{{ID: "texture0", Name: "texture0", InitFrom: tm.Texture}},
		Effects: []colladaEffect{{
			ID: "material0-fx",
			Profile: colladaProfileCommon{
				Params: []colladaNewParam{
					{
						SID:     "texture0-surface",
						Surface: &colladaSurface{Type: "2D", InitFrom: "texture0", Format: "R8G8B8"},
					},
					{
						SID: "texture0-sampler",
						Sampler: &colladaSampler{
							Source:    "texture0-surface",
							MinFilter: "LINEAR",
							MagFilter: "LINEAR",
						},
					},
				},
				Technique: colladaTechnique{
					SID:     "common",
					Diffuse: colladaTextureBinding{Texture: "texture0-sampler", TexCoord: "UVSET0"},
				},
			},
		}},
		Geometries: []colladaGeometry{{
			ID:   "shape0-lib",
			Name: "shape0",
			Mesh: colladaMesh{
				Sources: []colladaSource{
					newColladaSource("shape0-lib-positions", positions, "X", "Y", "Z"),
					newColladaSource("shape0-lib-normals", normals, "X", "Y", "Z"),
					newColladaSource("shape0-lib-map", texCoords, "U", "V"),
				},
				Vertices: colladaVertices{
					ID:    "shape0-lib-vertices",
					Input: colladaInput{Semantic: "POSITION", Source: "#shape0-lib-positions"},
				},
				Triangles: colladaTriangles{
					Count:    len(mesh.Faces),
					Material: "material0",
					Inputs: []colladaInput{
						{Offset: &zero, Semantic: "VERTEX", Source: "#shape0-lib-vertices"},
						{Offset: &one, Semantic: "NORMAL", Source: "#shape0-lib-normals"},
						{Offset: &two, Semantic: "TEXCOORD", Source: "#shape0-lib-map", Set: &zero},
					},
					Indices: joinInts(indices),
				},
			},
		}},
		VisualScenes: []colladaVisualScene{{
			ID:   "VisualSceneNode",
			Name: "VisualScene",
			Node: colladaNode{
				ID:   "node",
				Name: "node",
				Instance: colladaInstanceGeometry{
					URL: "#shape0-lib",
					Material: colladaInstanceMaterial{
						Symbol: "material0",
						Target: "#material0",
					},
				},
			},
		}},
	}
	material := colladaMaterial{ID: "material0", Name: "material0"}
	material.InstanceEffect.URL = "#material0-fx"
	doc.Materials = []colladaMaterial{material}
	bind := &doc.VisualScenes[0].Node.Instance.Material.Bind
	bind.Semantic = "UVSET0"
	bind.InputSemantic = "TEXCOORD"
	doc.Scene.Instance.URL = "#VisualSceneNode"
	return doc
}

func newColladaSource(id string, values []float64, params ...string) colladaSource {
	stride := len(params)
	src := colladaSource{
		ID: id,
		FloatArray: colladaFloatArray{
			ID:     id + "-array",
			Count:  len(values),
			Values: joinFloats(values),
		},
		Accessor: colladaAccessor{
			Source: "#" + id + "-array",
			Count:  len(values) / stride,
			Stride: stride,
		},
	}
	for _, p := range params {
		src.Accessor.Params = append(src.Accessor.Params, colladaParam{Name: p, Type: "float"})
	}
	return src
}

func joinFloats(values []float64) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 32))
	}
	return b.String()
}

func joinInts(values []int) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
