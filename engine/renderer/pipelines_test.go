package renderer

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPipelines(t *testing.T) {
	pipelines, err := DefaultPipelines()
	require.NoError(t, err)
	require.Len(t, pipelines, 2)

	lit, lines := pipelines[0], pipelines[1]
	assert.Equal(t, PipelineLit, lit.PipelineKey())
	assert.Equal(t, wgpu.CullModeBack, lit.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, lit.Topology())
	assert.Equal(t, "fs_main", lit.Shader(shader.ShaderTypeFragment).EntryPoint())

	assert.Equal(t, PipelineLines, lines.PipelineKey())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, lines.Topology())
	assert.Equal(t, "fs_unlit", lines.Shader(shader.ShaderTypeFragment).EntryPoint())
	assert.Equal(t, "vs_main", lines.Shader(shader.ShaderTypeVertex).EntryPoint())
}

func TestSceneSourceDeclaresEveryEntryPoint(t *testing.T) {
	for _, fn := range []string{"fn vs_main", "fn fs_main", "fn fs_unlit"} {
		assert.True(t, strings.Contains(shader.SceneSource, fn), fn)
	}
}

func TestLayoutsMatchUniformSizes(t *testing.T) {
	obj := objectLayoutDescriptor()
	require.Len(t, obj.Entries, 2)
	assert.Equal(t, uint64(ObjectUniformSize), obj.Entries[BindingObjectUniform].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, obj.Entries[BindingObjectJoints].Buffer.Type)

	mat := materialLayoutDescriptor()
	require.Len(t, mat.Entries, 4)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, mat.Entries[BindingMaterialSampler].Sampler.Type)
}
