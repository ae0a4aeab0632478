package renderer

import "github.com/cogentcore/webgpu/wgpu"

func bufferEntry(binding uint32, visibility wgpu.ShaderStage, bindingType wgpu.BufferBindingType, minSize uint64) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}
	entry.Buffer.Type = bindingType
	entry.Buffer.MinBindingSize = minSize
	return entry
}

func textureEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: wgpu.ShaderStageFragment}
	entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	return entry
}

func samplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: wgpu.ShaderStageFragment}
	entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	return entry
}

// frameLayoutDescriptor describes group 0: the per-frame camera, fog and light uniform.
func frameLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			bufferEntry(0, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, wgpu.BufferBindingTypeUniform, FrameUniformSize),
		},
	}
}

// objectLayoutDescriptor describes group 1: the object transform and its joint palette.
func objectLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			bufferEntry(BindingObjectUniform, wgpu.ShaderStageVertex, wgpu.BufferBindingTypeUniform, ObjectUniformSize),
			bufferEntry(BindingObjectJoints, wgpu.ShaderStageVertex, wgpu.BufferBindingTypeReadOnlyStorage, JointMatrixSize),
		},
	}
}

// materialLayoutDescriptor describes group 2: surface factors, base color and normal textures.
func materialLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			bufferEntry(BindingMaterialUniform, wgpu.ShaderStageFragment, wgpu.BufferBindingTypeUniform, MaterialUniformSize),
			textureEntry(BindingMaterialBase),
			textureEntry(BindingMaterialNormal),
			samplerEntry(BindingMaterialSampler),
		},
	}
}
