package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser  gltfParser
	parents []int
}

// gltfMeshExtractor converts the mesh nodes of the default scene into ImportedMeshes.
type gltfMeshExtractor interface {
	// ExtractMeshes returns one ImportedMesh per triangle primitive of every mesh node.
	// Static nodes have their world transform baked into positions, normals and tangents.
	// Nodes bound to the given skin keep bind-space vertices with joints remapped to bones.
	//
	// Parameters:
	//   - skinIndex: the skin the skeleton was built from (-1 for none)
	//   - jointToBone: skin joint slot to bone index
	//
	// Returns:
	//   - []model.ImportedMesh: the meshes in scene traversal order
	//   - error: error if an accessor is malformed
	ExtractMeshes(skinIndex int, jointToBone []int32) ([]model.ImportedMesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a mesh extractor over a parsed document.
func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{
		parser:  parser,
		parents: gltfNodeParents(parser.Document()),
	}
}

func (e *gltfMeshExtractorImpl) ExtractMeshes(skinIndex int, jointToBone []int32) ([]model.ImportedMesh, error) {
	doc := e.parser.Document()

	var meshes []model.ImportedMesh
	var walk func(node int, parent mgl32.Mat4) error
	walk = func(node int, parent mgl32.Mat4) error {
		n := &doc.Nodes[node]
		world := parent.Mul4(gltfLocalMatrix(n))

		if n.Mesh != nil {
			if *n.Mesh < 0 || *n.Mesh >= len(doc.Meshes) {
				return fmt.Errorf("node %d: mesh index %d out of range", node, *n.Mesh)
			}
			skinned := n.Skin != nil && *n.Skin == skinIndex
			mesh := &doc.Meshes[*n.Mesh]
			for p := range mesh.Primitives {
				prim := &mesh.Primitives[p]
				if prim.Mode != nil && *prim.Mode != gltfModeTriangles {
					continue
				}
				im, err := e.extractPrimitive(prim, primitiveName(mesh.Name, *n.Mesh, p))
				if err != nil {
					return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, p, err)
				}
				if skinned {
					im.Skinned = true
					remapJoints(im.Vertices, jointToBone)
				} else {
					clearSkin(im.Vertices)
					bakeTransform(im.Vertices, world)
				}
				im.BoundingMin, im.BoundingMax = boundingBox(im.Vertices)
				meshes = append(meshes, im)
			}
		}

		for _, c := range n.Children {
			if c < 0 || c >= len(doc.Nodes) {
				return fmt.Errorf("node %d: child index %d out of range", node, c)
			}
			if err := walk(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range sceneRoots(doc, e.parents) {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive, name string) (model.ImportedMesh, error) {
	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return model.ImportedMesh{}, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, _, err := e.parser.ReadFloats(posAccessor)
	if err != nil {
		return model.ImportedMesh{}, fmt.Errorf("failed to read positions: %w", err)
	}

	count := len(positions) / 3
	verts := make([]model.GPUSkinnedVertex, count)
	for i := range verts {
		verts[i].Position = [3]float32(positions[i*3 : i*3+3])
		verts[i].Color = [4]float32{1, 1, 1, 1}
	}

	attr := func(name string, apply func(i int, v []float32)) (bool, error) {
		idx, ok := prim.Attributes[name]
		if !ok {
			return false, nil
		}
		values, width, err := e.parser.ReadFloats(idx)
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", name, err)
		}
		for i := 0; i < count && (i+1)*width <= len(values); i++ {
			apply(i, values[i*width:(i+1)*width])
		}
		return true, nil
	}

	hasNormals, err := attr("NORMAL", func(i int, v []float32) { verts[i].Normal = [3]float32(v[:3]) })
	if err != nil {
		return model.ImportedMesh{}, err
	}
	hasUVs, err := attr("TEXCOORD_0", func(i int, v []float32) { verts[i].TexCoord = [2]float32(v[:2]) })
	if err != nil {
		return model.ImportedMesh{}, err
	}
	if _, err := attr("COLOR_0", func(i int, v []float32) {
		copy(verts[i].Color[:], v)
	}); err != nil {
		return model.ImportedMesh{}, err
	}
	hasTangents, err := attr("TANGENT", func(i int, v []float32) { verts[i].Tangent = [4]float32(v[:4]) })
	if err != nil {
		return model.ImportedMesh{}, err
	}
	if _, err := attr("WEIGHTS_0", func(i int, v []float32) { verts[i].BoneWeights = normalizeWeights([4]float32(v[:4])) }); err != nil {
		return model.ImportedMesh{}, err
	}

	if idx, ok := prim.Attributes["JOINTS_0"]; ok {
		joints, width, err := e.parser.ReadUints(idx)
		if err != nil {
			return model.ImportedMesh{}, fmt.Errorf("failed to read JOINTS_0: %w", err)
		}
		for i := 0; i < count && (i+1)*width <= len(joints) && width == 4; i++ {
			verts[i].BoneIndices = [4]uint32(joints[i*4 : i*4+4])
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, _, err = e.parser.ReadUints(*prim.Indices); err != nil {
			return model.ImportedMesh{}, fmt.Errorf("failed to read indices: %w", err)
		}
		for _, ix := range indices {
			if int(ix) >= count {
				return model.ImportedMesh{}, fmt.Errorf("index %d out of range for %d vertices", ix, count)
			}
		}
	} else {
		indices = make([]uint32, count)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if !hasNormals {
		generateNormals(verts, indices)
	}
	if !hasTangents {
		generateTangents(verts, indices, hasUVs)
	}

	materialIndex := -1
	if prim.Material != nil {
		materialIndex = *prim.Material
	}

	return model.ImportedMesh{
		Name:          name,
		Vertices:      verts,
		Indices:       indices,
		MaterialIndex: materialIndex,
	}, nil
}

// sceneRoots returns the root nodes of the default scene, or every parentless node.
func sceneRoots(doc *gltfDocument, parents []int) []int {
	scene := 0
	if doc.Scene != nil {
		scene = *doc.Scene
	}
	if scene >= 0 && scene < len(doc.Scenes) {
		return doc.Scenes[scene].Nodes
	}
	var roots []int
	for i, p := range parents {
		if p < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

func primitiveName(meshName string, meshIndex, primIndex int) string {
	if meshName == "" {
		meshName = fmt.Sprintf("mesh_%d", meshIndex)
	}
	if primIndex > 0 {
		return fmt.Sprintf("%s_prim%d", meshName, primIndex)
	}
	return meshName
}

// normalizeWeights scales weights to sum to one; all-zero weights stay zero.
func normalizeWeights(w [4]float32) [4]float32 {
	sum := w[0] + w[1] + w[2] + w[3]
	if sum <= 0 {
		return [4]float32{}
	}
	return [4]float32{w[0] / sum, w[1] / sum, w[2] / sum, w[3] / sum}
}

// remapJoints maps skin joint slots to bones; slots without weight point at bone 0.
func remapJoints(verts []model.GPUSkinnedVertex, jointToBone []int32) {
	for i := range verts {
		for k, j := range verts[i].BoneIndices {
			if verts[i].BoneWeights[k] > 0 && int(j) < len(jointToBone) {
				verts[i].BoneIndices[k] = uint32(jointToBone[j])
			} else {
				verts[i].BoneIndices[k] = 0
				verts[i].BoneWeights[k] = 0
			}
		}
	}
}

// clearSkin drops skin attributes from meshes drawn without a skeleton.
func clearSkin(verts []model.GPUSkinnedVertex) {
	for i := range verts {
		verts[i].BoneIndices = [4]uint32{}
		verts[i].BoneWeights = [4]float32{}
	}
}

// bakeTransform moves a static mesh into model space.
func bakeTransform(verts []model.GPUSkinnedVertex, m mgl32.Mat4) {
	if m == mgl32.Ident4() {
		return
	}
	normalMat := m.Mat3().Inv().Transpose()
	for i := range verts {
		v := &verts[i]
		v.Position = [3]float32(mgl32.TransformCoordinate(mgl32.Vec3(v.Position), m))
		if n := normalMat.Mul3x1(mgl32.Vec3(v.Normal)); n.Len() > 0 {
			v.Normal = [3]float32(n.Normalize())
		}
		t := m.Mat3().Mul3x1(mgl32.Vec3{v.Tangent[0], v.Tangent[1], v.Tangent[2]})
		if t.Len() > 0 {
			t = t.Normalize()
			v.Tangent = [4]float32{t[0], t[1], t[2], v.Tangent[3]}
		}
	}
}

func boundingBox(verts []model.GPUSkinnedVertex) (bmin, bmax [3]float32) {
	if len(verts) == 0 {
		return
	}
	bmin, bmax = verts[0].Position, verts[0].Position
	for _, v := range verts[1:] {
		for k := 0; k < 3; k++ {
			bmin[k] = min(bmin[k], v.Position[k])
			bmax[k] = max(bmax[k], v.Position[k])
		}
	}
	return
}

// generateNormals computes area-weighted vertex normals from triangle faces.
func generateNormals(verts []model.GPUSkinnedVertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(verts))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0 := mgl32.Vec3(verts[a].Position)
		face := mgl32.Vec3(verts[b].Position).Sub(p0).Cross(mgl32.Vec3(verts[c].Position).Sub(p0))
		accum[a] = accum[a].Add(face)
		accum[b] = accum[b].Add(face)
		accum[c] = accum[c].Add(face)
	}
	for i, n := range accum {
		if n.Len() < 1e-6 {
			verts[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		verts[i].Normal = [3]float32(n.Normalize())
	}
}

// generateTangents computes per-vertex tangents from UV gradients, with handedness in w.
// Without UVs any unit vector perpendicular to the normal is used.
func generateTangents(verts []model.GPUSkinnedVertex, indices []uint32, hasUVs bool) {
	tan := make([]mgl32.Vec3, len(verts))
	bitan := make([]mgl32.Vec3, len(verts))

	if hasUVs {
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			p0 := mgl32.Vec3(verts[a].Position)
			e1 := mgl32.Vec3(verts[b].Position).Sub(p0)
			e2 := mgl32.Vec3(verts[c].Position).Sub(p0)
			uv0 := mgl32.Vec2(verts[a].TexCoord)
			d1 := mgl32.Vec2(verts[b].TexCoord).Sub(uv0)
			d2 := mgl32.Vec2(verts[c].TexCoord).Sub(uv0)

			det := d1[0]*d2[1] - d1[1]*d2[0]
			if det == 0 {
				continue
			}
			r := 1 / det
			t := e1.Mul(d2[1]).Sub(e2.Mul(d1[1])).Mul(r)
			bt := e2.Mul(d1[0]).Sub(e1.Mul(d2[0])).Mul(r)
			for _, ix := range [3]uint32{a, b, c} {
				tan[ix] = tan[ix].Add(t)
				bitan[ix] = bitan[ix].Add(bt)
			}
		}
	}

	for i := range verts {
		n := mgl32.Vec3(verts[i].Normal)
		t := tan[i].Sub(n.Mul(n.Dot(tan[i])))
		if t.Len() < 1e-6 {
			// Any axis not parallel to the normal.
			axis := mgl32.Vec3{1, 0, 0}
			if n[0] > 0.9 || n[0] < -0.9 {
				axis = mgl32.Vec3{0, 1, 0}
			}
			t = axis.Sub(n.Mul(n.Dot(axis)))
		}
		t = t.Normalize()
		w := float32(1)
		if n.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		verts[i].Tangent = [4]float32{t[0], t[1], t[2], w}
	}
}
