package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// BindGroup indices shared by every scene pipeline. They match the @group
// attributes in shader.SceneSource.
const (
	GroupFrame    = 0
	GroupObject   = 1
	GroupMaterial = 2
)

// Uniform and storage sizes in bytes. The Go structs that fill these buffers live with their
// owners (scene, game_object, material) and are checked against these values in tests.
const (
	FrameUniformSize    = 160
	ObjectUniformSize   = 144
	MaterialUniformSize = 48
	JointMatrixSize     = 64
)

// Binding indices inside the object and material groups.
const (
	BindingObjectUniform = 0
	BindingObjectJoints  = 1

	BindingMaterialUniform = 0
	BindingMaterialBase    = 1
	BindingMaterialNormal  = 2
	BindingMaterialSampler = 3
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
