package game

import (
	"github.com/Carmen-Shannon/oxy-robot/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

func testSkeleton() *model.Skeleton {
	return &model.Skeleton{
		Bones: []model.Bone{
			{Name: "Hips", ParentIndex: -1, InverseBindMatrix: mgl32.Ident4(), LocalTransform: model.IdentityTransform()},
		},
		RootBoneIndices: []int32{0},
		BoneNameToIndex: map[string]int32{"Hips": 0},
		RootMatrix:      mgl32.Ident4(),
	}
}

// testClip is a one second clip that raises the hips by one unit.
func testClip(name string) *model.AnimationClip {
	return &model.AnimationClip{
		Name:     name,
		Duration: 1,
		Channels: []model.AnimationChannel{{
			BoneIndex: 0,
			PositionKeys: []model.VectorKeyframe{
				{Time: 0, Value: [3]float32{0, 0, 0}},
				{Time: 1, Value: [3]float32{0, 1, 0}},
			},
		}},
	}
}

// testRobot builds a skinned model with one clip per name.
func testRobot(names ...string) model.Model {
	clips := make([]*model.AnimationClip, len(names))
	for i, name := range names {
		clips[i] = testClip(name)
	}
	return model.NewModel(
		model.WithName("Robot"),
		model.WithSkeleton(testSkeleton()),
		model.WithAnimations(clips),
	)
}
