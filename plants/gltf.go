package plants

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// SaveGLB writes a textured mesh as a binary glTF file.
//
// glTF has no per-wedge attributes, so every face gets its own three
// vertices. The texture is referenced by URI rather than embedded.
func SaveGLB(path string, tm *TexturedMesh) error {
	mesh := tm.Mesh
	positions := make([][3]float32, 0, 3*len(mesh.Faces))
	normals := make([][3]float32, 0, 3*len(mesh.Faces))
	texCoords := make([][2]float32, 0, 3*len(mesh.Faces))
	indices := make([]uint32, 0, 3*len(mesh.Faces))
	for i, f := range mesh.Faces {
		n := mesh.FaceNormal(i)
		for j, v := range f {
			c := mesh.Vertices[v]
			uv := tm.UVs[i][j]
			indices = append(indices, uint32(len(positions)))
			positions = append(positions, [3]float32{float32(c.X), float32(c.Y), float32(c.Z)})
			normals = append(normals, [3]float32{float32(n.X), float32(n.Y), float32(n.Z)})
			// glTF puts the texture origin at the top-left corner.
			texCoords = append(texCoords, [2]float32{float32(uv[0]), float32(1 - uv[1])})
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "plant-models"

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	texAccessor := modeler.WriteTextureCoord(doc, texCoords)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	doc.Images = []*gltf.Image{{URI: tm.Texture}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	doc.Materials = []*gltf.Material{{
		Name: "plant",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
			MetallicFactor:   gltf.Float(0),
			RoughnessFactor:  gltf.Float(1),
		},
		AlphaMode: gltf.AlphaOpaque,
	}}

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION:   uint32(posAccessor),
			gltf.NORMAL:     uint32(normalAccessor),
			gltf.TEXCOORD_0: uint32(texAccessor),
		},
		Indices:  gltf.Index(uint32(indicesAccessor)),
		Material: gltf.Index(0),
	}
	doc.Meshes = []*gltf.Mesh{{Name: "plant", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "plant", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))

	return errors.Wrap(gltf.SaveBinary(doc, path), "save GLB")
}
