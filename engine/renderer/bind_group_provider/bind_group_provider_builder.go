package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithMeshBuffers sets pre-created vertex and index buffers.
//
// Parameters:
//   - vertex: the vertex buffer
//   - index: the index buffer
//   - indexCount: number of indices to draw
//
// Returns:
//   - BindGroupProviderOption: a function that sets the mesh buffers
func WithMeshBuffers(vertex, index *wgpu.Buffer, indexCount int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexBuffer = vertex
		p.indexBuffer = index
		p.indexCount = indexCount
	}
}
