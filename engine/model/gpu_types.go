package model

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertex is the GPU-aligned representation of the shared part of a mesh vertex.
// Size: 64 bytes (std430 aligned, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space
	Normal   [3]float32 // offset 12: vertex normal for lighting
	TexCoord [2]float32 // offset 24: UV texture coordinate
	Color    [4]float32 // offset 32: per-vertex RGBA color
	Tangent  [4]float32 // offset 48: tangent (xyz) + handedness (w) for normal mapping
}

// GPUSkinnedVertex is the single vertex format used by every pipeline.
// Static geometry leaves BoneWeights at zero, which the vertex shader treats as "not skinned".
// Size: 96 bytes.
type GPUSkinnedVertex struct {
	GPUVertex              // offset  0
	BoneIndices [4]uint32  // offset 64: indices of up to 4 influencing bones
	BoneWeights [4]float32 // offset 80: blend weights for each bone (sum to 1.0)
}

// Size returns the size of the GPUSkinnedVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (96)
func (g *GPUSkinnedVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// SkinnedVertexLayout describes GPUSkinnedVertex to the render pipeline.
// Shader locations 0-6 match the VertexInput struct in the scene shader.
//
// Returns:
//   - wgpu.VertexBufferLayout: the vertex buffer layout
func SkinnedVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 96,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 4},
			{Format: wgpu.VertexFormatUint32x4, Offset: 64, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 80, ShaderLocation: 6},
		},
	}
}
