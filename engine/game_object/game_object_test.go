package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skinnedModel() model.Model {
	root := model.IdentityTransform()
	child := model.IdentityTransform()
	child.Translation = [3]float32{0, 1, 0}
	sk := &model.Skeleton{
		Bones: []model.Bone{
			{Name: "root", ParentIndex: -1, InverseBindMatrix: mgl32.Ident4(), LocalTransform: root},
			{Name: "child", ParentIndex: 0, InverseBindMatrix: mgl32.Translate3D(0, -1, 0), LocalTransform: child},
		},
		RootBoneIndices: []int32{0},
		BoneNameToIndex: map[string]int32{"root": 0, "child": 1},
		RootMatrix:      mgl32.Ident4(),
	}
	mesh := model.ImportedMesh{
		Name:          "body",
		MaterialIndex: -1,
		Skinned:       true,
		BoundingMin:   [3]float32{-1, 0, -1},
		BoundingMax:   [3]float32{1, 2, 1},
	}
	return model.NewModel(model.WithName("robot"), model.WithSkeleton(sk), model.WithMeshes([]model.ImportedMesh{mesh}))
}

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithModel(skinnedModel()))

	assert.True(t, obj.Enabled())
	assert.Equal(t, "robot", obj.Name())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.Scale())
	require.Equal(t, 2, obj.JointCount())
	for _, j := range obj.Joints() {
		assert.True(t, j.ApproxEqualThreshold(mgl32.Ident4(), 1e-5))
	}
}

func TestIDsAreUnique(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestApplyPoseUpdatesPalette(t *testing.T) {
	obj := NewGameObject(WithModel(skinnedModel()))

	pose := obj.Model().Skeleton().RestPose()
	pose[0].Translation = [3]float32{2, 0, 0}
	obj.ApplyPose(pose)

	joints := obj.Joints()
	assert.True(t, joints[0].ApproxEqualThreshold(mgl32.Translate3D(2, 0, 0), 1e-5))
	assert.True(t, joints[1].ApproxEqualThreshold(mgl32.Translate3D(2, 0, 0), 1e-5))

	// A pose of the wrong length is ignored.
	obj.ApplyPose(pose[:1])
	assert.True(t, obj.Joints()[0].ApproxEqualThreshold(mgl32.Translate3D(2, 0, 0), 1e-5))
}

func TestUniformCarriesSkinFlags(t *testing.T) {
	obj := NewGameObject(WithModel(skinnedModel()), WithPosition(mgl32.Vec3{1, 2, 3}))

	u := obj.Uniform()
	assert.Equal(t, 144, u.Size())
	assert.Equal(t, [4]uint32{1, 2, 0, 0}, u.Flags)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, u.Model.Col(3).Vec3())

	static := NewGameObject().Uniform()
	assert.Equal(t, [4]uint32{}, static.Flags)
}

func TestNormalMatrixUndoesNonUniformScale(t *testing.T) {
	obj := NewGameObject(WithScale(mgl32.Vec3{2, 1, 1}))

	n := obj.Uniform().NormalMatrix.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	assert.InDelta(t, 0.5, n.X(), 1e-6)
}

func TestWorldBoundingSphere(t *testing.T) {
	obj := NewGameObject(
		WithModel(skinnedModel()),
		WithPosition(mgl32.Vec3{10, 0, 0}),
		WithScale(mgl32.Vec3{1, 3, 1}),
	)

	center, radius := obj.WorldBoundingSphere()
	assert.InDelta(t, 10, center.X(), 1e-5)
	assert.InDelta(t, 3, center.Y(), 1e-5)
	assert.InDelta(t, 3*math.Sqrt(3), radius, 1e-4)
}
