package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

// gltfSkinMapping relates glTF indices to skeleton bone indices after sorting.
type gltfSkinMapping struct {
	// nodeToBone maps a joint's node index to its bone index (animation targets).
	nodeToBone map[int]int32

	// jointToBone maps a skin joint slot to its bone index (JOINTS_0 values).
	jointToBone []int32
}

// gltfSkeletonExtractorImpl is the implementation of the gltfSkeletonExtractor interface.
type gltfSkeletonExtractorImpl struct {
	parser  gltfParser
	parents []int
}

// gltfSkeletonExtractor builds a parents-first model.Skeleton from a glTF skin.
type gltfSkeletonExtractor interface {
	// ExtractSkeleton builds the skeleton for a skin.
	//
	// Parameters:
	//   - skinIndex: index into the document skins
	//
	// Returns:
	//   - *model.Skeleton: bones sorted parents-first, with RootMatrix set from the
	//     non-joint ancestors of the first root bone
	//   - gltfSkinMapping: index remapping for meshes and animations
	//   - error: error if the skin is malformed
	ExtractSkeleton(skinIndex int) (*model.Skeleton, gltfSkinMapping, error)

	// FindSkin returns the skin used by the first skinned mesh node, 0 when skins exist
	// but no node references one, or -1 without skins.
	FindSkin() int
}

var _ gltfSkeletonExtractor = &gltfSkeletonExtractorImpl{}

// newGLTFSkeletonExtractor creates a skeleton extractor over a parsed document.
func newGLTFSkeletonExtractor(parser gltfParser) gltfSkeletonExtractor {
	return &gltfSkeletonExtractorImpl{
		parser:  parser,
		parents: gltfNodeParents(parser.Document()),
	}
}

func (e *gltfSkeletonExtractorImpl) FindSkin() int {
	doc := e.parser.Document()
	if len(doc.Skins) == 0 {
		return -1
	}
	for _, node := range doc.Nodes {
		if node.Mesh != nil && node.Skin != nil && *node.Skin < len(doc.Skins) {
			return *node.Skin
		}
	}
	return 0
}

func (e *gltfSkeletonExtractorImpl) ExtractSkeleton(skinIndex int) (*model.Skeleton, gltfSkinMapping, error) {
	doc := e.parser.Document()
	if skinIndex < 0 || skinIndex >= len(doc.Skins) {
		return nil, gltfSkinMapping{}, fmt.Errorf("skin index %d out of range", skinIndex)
	}
	skin := &doc.Skins[skinIndex]

	var ibm []float32
	if skin.InverseBindMatrices != nil {
		var err error
		ibm, _, err = e.parser.ReadFloats(*skin.InverseBindMatrices)
		if err != nil {
			return nil, gltfSkinMapping{}, fmt.Errorf("failed to read inverse bind matrices: %w", err)
		}
	}

	slotOfNode := make(map[int]int, len(skin.Joints))
	for slot, node := range skin.Joints {
		if node < 0 || node >= len(doc.Nodes) {
			return nil, gltfSkinMapping{}, fmt.Errorf("joint %d: invalid node index %d", slot, node)
		}
		slotOfNode[node] = slot
	}

	// Parent slot per joint slot; a joint whose parent node is not a joint is a root.
	parentSlot := make([]int, len(skin.Joints))
	children := make([][]int, len(skin.Joints))
	var roots []int
	for slot, node := range skin.Joints {
		parentSlot[slot] = -1
		if ps, ok := slotOfNode[e.parents[node]]; ok && e.parents[node] >= 0 {
			parentSlot[slot] = ps
			children[ps] = append(children[ps], slot)
			continue
		}
		roots = append(roots, slot)
	}

	// Depth-first, parents before children.
	order := make([]int, 0, len(skin.Joints))
	var visit func(slot int)
	visit = func(slot int) {
		order = append(order, slot)
		for _, c := range children[slot] {
			visit(c)
		}
	}
	for _, r := range roots {
		visit(r)
	}

	mapping := gltfSkinMapping{
		nodeToBone:  make(map[int]int32, len(order)),
		jointToBone: make([]int32, len(skin.Joints)),
	}
	for bone, slot := range order {
		mapping.jointToBone[slot] = int32(bone)
		mapping.nodeToBone[skin.Joints[slot]] = int32(bone)
	}

	sk := &model.Skeleton{
		Bones:           make([]model.Bone, len(order)),
		BoneNameToIndex: make(map[string]int32, len(order)),
		RootMatrix:      mgl32.Ident4(),
	}
	for bone, slot := range order {
		node := &doc.Nodes[skin.Joints[slot]]
		b := model.Bone{
			Name:              node.Name,
			ParentIndex:       -1,
			InverseBindMatrix: mgl32.Ident4(),
			LocalTransform:    gltfNodeTransform(node),
		}
		if b.Name == "" {
			b.Name = fmt.Sprintf("bone_%d", bone)
		}
		if parentSlot[slot] >= 0 {
			b.ParentIndex = mapping.jointToBone[parentSlot[slot]]
		} else {
			sk.RootBoneIndices = append(sk.RootBoneIndices, int32(bone))
		}
		if off := slot * 16; off+16 <= len(ibm) {
			copy(b.InverseBindMatrix[:], ibm[off:off+16])
		}
		sk.Bones[bone] = b
		sk.BoneNameToIndex[b.Name] = int32(bone)
	}

	if len(roots) > 0 {
		if parent := e.parents[skin.Joints[roots[0]]]; parent >= 0 {
			sk.RootMatrix = gltfWorldMatrix(doc, e.parents, parent)
		}
	}

	return sk, mapping, nil
}

// gltfNodeParents returns the parent node of every node (-1 for scene roots).
func gltfNodeParents(doc *gltfDocument) []int {
	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for i, node := range doc.Nodes {
		for _, c := range node.Children {
			if c >= 0 && c < len(parents) {
				parents[c] = i
			}
		}
	}
	return parents
}

// gltfLocalMatrix returns a node's local matrix from Matrix or TRS.
func gltfLocalMatrix(node *gltfNode) mgl32.Mat4 {
	if node.Matrix != nil {
		return mgl32.Mat4(*node.Matrix)
	}
	return gltfNodeTransform(node).Matrix()
}

// gltfWorldMatrix accumulates local matrices from the scene root down to node.
func gltfWorldMatrix(doc *gltfDocument, parents []int, node int) mgl32.Mat4 {
	m := mgl32.Ident4()
	for n := node; n >= 0; n = parents[n] {
		m = gltfLocalMatrix(&doc.Nodes[n]).Mul4(m)
	}
	return m
}

// gltfNodeTransform returns a node's local transform, decomposing Matrix when present.
func gltfNodeTransform(node *gltfNode) model.Transform {
	if node.Matrix != nil {
		return decomposeMatrix(mgl32.Mat4(*node.Matrix))
	}
	t := model.IdentityTransform()
	if node.Translation != nil {
		t.Translation = *node.Translation
	}
	if node.Rotation != nil {
		t.Rotation = *node.Rotation
	}
	if node.Scale != nil {
		t.Scale = *node.Scale
	}
	return t
}

// decomposeMatrix splits an affine matrix without shear into T, R and S.
func decomposeMatrix(m mgl32.Mat4) model.Transform {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()

	rot := m
	for col, s := range [3]float32{sx, sy, sz} {
		if s < 1e-6 {
			continue
		}
		for row := 0; row < 3; row++ {
			rot.Set(row, col, m.At(row, col)/s)
		}
	}
	rot.SetCol(3, mgl32.Vec4{0, 0, 0, 1})

	return model.Transform{
		Translation: [3]float32{m[12], m[13], m[14]},
		Rotation:    common.QuatToXYZW(mgl32.Mat4ToQuat(rot).Normalize()),
		Scale:       [3]float32{sx, sy, sz},
	}
}
