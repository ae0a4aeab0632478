package model

import (
	"github.com/Carmen-Shannon/oxy-robot/common"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Transform & Skeleton Types ---

// Transform represents a decomposed transform for animation interpolation.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a transform with no translation, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Matrix composes the transform into T * R * S.
//
// Returns:
//   - mgl32.Mat4: the composed matrix (column-major)
func (t Transform) Matrix() mgl32.Mat4 {
	return common.TRS(mgl32.Vec3(t.Translation), common.QuatFromXYZW(t.Rotation), mgl32.Vec3(t.Scale))
}

// Bone represents a single bone in a skeleton hierarchy.
type Bone struct {
	// Name is the bone's identifier (for debugging and animation targeting).
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	ParentIndex int32

	// InverseBindMatrix transforms from model space to bone space at bind pose.
	InverseBindMatrix mgl32.Mat4

	// LocalTransform is the bone's rest transform relative to its parent.
	// Channels without keyframes leave the bone at this pose.
	LocalTransform Transform
}

// Skeleton represents a bone hierarchy for skeletal animation.
// Bones are stored parents-first so a single forward pass resolves world matrices.
type Skeleton struct {
	// Bones is the array of all bones in the skeleton.
	Bones []Bone

	// RootBoneIndices are indices of bones with no parent.
	RootBoneIndices []int32

	// BoneNameToIndex maps bone names to their indices for quick lookup.
	BoneNameToIndex map[string]int32

	// RootMatrix is the accumulated transform of the non-joint nodes above the root bones
	// (an armature node, for example). It is applied to every root bone's local transform.
	RootMatrix mgl32.Mat4
}

// RestPose returns a copy of every bone's rest transform.
//
// Returns:
//   - []Transform: one entry per bone, in skeleton order
func (s *Skeleton) RestPose() []Transform {
	pose := make([]Transform, len(s.Bones))
	for i := range s.Bones {
		pose[i] = s.Bones[i].LocalTransform
	}
	return pose
}

// JointMatrices converts per-bone local transforms into skinning matrices
// (world * inverseBind) written into out. out must hold len(s.Bones) entries.
//
// Parameters:
//   - pose: local transform per bone, in skeleton order
//   - out: destination joint palette
func (s *Skeleton) JointMatrices(pose []Transform, out []mgl32.Mat4) {
	world := make([]mgl32.Mat4, len(s.Bones))
	for i := range s.Bones {
		local := pose[i].Matrix()
		if p := s.Bones[i].ParentIndex; p >= 0 {
			world[i] = world[p].Mul4(local)
		} else {
			world[i] = s.RootMatrix.Mul4(local)
		}
		out[i] = world[i].Mul4(s.Bones[i].InverseBindMatrix)
	}
}

// --- Animation Types ---

// AnimationClip represents a single named animation (walk, run, wave, ...).
type AnimationClip struct {
	// Name is the animation identifier.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float32

	// Channels contains animation data for each animated bone.
	Channels []AnimationChannel
}

// AnimationChannel contains keyframe data for a single bone.
type AnimationChannel struct {
	// BoneIndex is the index of the bone this channel animates.
	BoneIndex int32

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation (quaternion).
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe

	// PositionStep, RotationStep and ScaleStep mark keys whose sampler uses STEP
	// interpolation, per path.
	PositionStep bool
	RotationStep bool
	ScaleStep    bool
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	Time  float32
	Value [3]float32
}

// QuaternionKeyframe stores a quaternion rotation (x, y, z, w) at a specific time.
type QuaternionKeyframe struct {
	Time  float32
	Value [4]float32
}

// --- Import Types ---

// ImportedModel represents a 3D model loaded from an external format.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes contains one entry per glTF primitive.
	Meshes []ImportedMesh

	// Skeleton is the bone hierarchy (nil for static models).
	Skeleton *Skeleton

	// Animations are all animation clips bundled with the model.
	Animations []*AnimationClip

	// Materials are referenced by ImportedMesh.MaterialIndex.
	Materials []common.ImportedMaterial
}

// ImportedMesh represents a single primitive within an imported model.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices carry skinning attributes; static meshes leave BoneWeights zero.
	// Static meshes have their node transform baked in at import time.
	Vertices []GPUSkinnedVertex

	// Indices are the triangle (or line) indices.
	Indices []uint32

	// MaterialIndex references ImportedModel.Materials (-1 for none).
	MaterialIndex int

	// Skinned reports whether the mesh is deformed by the model skeleton.
	Skinned bool

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}
