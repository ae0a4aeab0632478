package model

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoBoneSkeleton() *Skeleton {
	root := IdentityTransform()
	child := IdentityTransform()
	child.Translation = [3]float32{0, 1, 0}
	return &Skeleton{
		Bones: []Bone{
			{Name: "root", ParentIndex: -1, InverseBindMatrix: mgl32.Ident4(), LocalTransform: root},
			{Name: "child", ParentIndex: 0, InverseBindMatrix: mgl32.Translate3D(0, -1, 0), LocalTransform: child},
		},
		RootBoneIndices: []int32{0},
		BoneNameToIndex: map[string]int32{"root": 0, "child": 1},
		RootMatrix:      mgl32.Ident4(),
	}
}

func TestJointMatricesAreIdentityAtBindPose(t *testing.T) {
	s := twoBoneSkeleton()
	out := make([]mgl32.Mat4, len(s.Bones))
	s.JointMatrices(s.RestPose(), out)

	for i := range out {
		assert.True(t, out[i].ApproxEqualThreshold(mgl32.Ident4(), 1e-5), "bone %d", i)
	}
}

func TestJointMatricesFollowParentRotation(t *testing.T) {
	s := twoBoneSkeleton()
	pose := s.RestPose()
	pose[0].Rotation = common.QuatToXYZW(mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 0, 1}))

	out := make([]mgl32.Mat4, len(s.Bones))
	s.JointMatrices(pose, out)

	// A vertex bound at the child joint (0,1,0) swings to (-1,0,0).
	got := out[1].Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	assert.InDelta(t, -1, got.X(), 1e-5)
	assert.InDelta(t, 0, got.Y(), 1e-5)
}

func TestModelLookupsAndMaterials(t *testing.T) {
	m := NewModel(
		WithName("robot"),
		WithSkeleton(twoBoneSkeleton()),
		WithAnimations([]*AnimationClip{{Name: "Idle", Duration: 1}, {Name: "Wave", Duration: 2}}),
		WithMeshes([]ImportedMesh{
			{Name: "body", MaterialIndex: 0, BoundingMin: [3]float32{-1, 0, -1}, BoundingMax: [3]float32{1, 2, 1}},
			{Name: "eyes", MaterialIndex: -1, BoundingMin: [3]float32{-0.5, 1, 0}, BoundingMax: [3]float32{0.5, 3, 1}},
		}),
		WithImportedMaterials([]common.ImportedMaterial{{Name: "Main", BaseColor: [4]float32{1, 0, 0, 1}}}, "lit"),
	)

	assert.True(t, m.Skinned())
	assert.Equal(t, []string{"Idle", "Wave"}, m.AnimationNames())

	clip, ok := m.Animation("Wave")
	require.True(t, ok)
	assert.Equal(t, float32(2), clip.Duration)
	_, ok = m.Animation("Jump")
	assert.False(t, ok)

	assert.Equal(t, "Main", m.MeshMaterial(0).Name())
	assert.Equal(t, "robot/default", m.MeshMaterial(1).Name())
	assert.Equal(t, "lit", m.MeshMaterial(1).PipelineKey())
	assert.Len(t, m.Materials(), 2)

	assert.False(t, m.Uploaded())
	assert.Nil(t, m.MeshProvider(5))

	center, radius := m.BoundingSphere()
	assert.InDelta(t, 1.5, center.Y(), 1e-5)
	assert.InDelta(t, math.Sqrt(1+1.5*1.5+1), radius, 1e-5)
}
