package renderer

import (
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline keys registered by DefaultPipelines.
const (
	// PipelineLit draws lit, fogged, back-face culled triangles.
	PipelineLit = "lit"

	// PipelineLines draws unlit, fogged line lists (grid helpers).
	PipelineLines = "lines"
)

// DefaultPipelines builds the two scene pipelines from shader.SceneSource.
//
// Returns:
//   - []pipeline.Pipeline: the lit and line pipelines
//   - error: an error if a shader cannot be built
func DefaultPipelines() ([]pipeline.Pipeline, error) {
	vs, err := shader.NewShader("scene_vs", shader.ShaderTypeVertex, shader.WithSource(shader.SceneSource))
	if err != nil {
		return nil, err
	}
	litFS, err := shader.NewShader("scene_fs_lit", shader.ShaderTypeFragment, shader.WithSource(shader.SceneSource))
	if err != nil {
		return nil, err
	}
	unlitFS, err := shader.NewShader("scene_fs_unlit", shader.ShaderTypeFragment,
		shader.WithSource(shader.SceneSource),
		shader.WithEntryPoint("fs_unlit"),
	)
	if err != nil {
		return nil, err
	}

	return []pipeline.Pipeline{
		pipeline.NewPipeline(PipelineLit,
			pipeline.WithVertexShader(vs),
			pipeline.WithFragmentShader(litFS),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		pipeline.NewPipeline(PipelineLines,
			pipeline.WithVertexShader(vs),
			pipeline.WithFragmentShader(unlitFS),
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		),
	}, nil
}
