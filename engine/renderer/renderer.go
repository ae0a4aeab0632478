package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-robot/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingPipelines     []pipeline.Pipeline
	sampler              common.SamplerStagingData
}

// Renderer defines the interface for the rendering system.
//
// Every scene pipeline shares one pipeline layout with three bind groups: frame (camera, fog,
// lights), object (transform and joint palette) and material (factors and textures). The Renderer
// creates the GPU side of each group on request and records draws between BeginFrame and EndFrame.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline objects for one or more pipelines and caches
	// them by PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color of the main pass.
	SetClearColor(color [4]float32)

	// InitMesh uploads vertex and index data into a new mesh provider.
	//
	// Parameters:
	//   - label: debug label for the buffers
	//   - vertexData: raw vertex bytes (model.GPUSkinnedVertex layout)
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices to draw
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: provider holding the vertex and index buffers
	//   - error: an error if buffer creation fails
	InitMesh(label string, vertexData, indexData []byte, indexCount int) (bind_group_provider.BindGroupProvider, error)

	// InitFrame creates the frame uniform provider bound at group 0.
	//
	// Parameters:
	//   - label: debug label for the uniform and bind group
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the frame provider
	//   - error: an error if creation fails
	InitFrame(label string) (bind_group_provider.BindGroupProvider, error)

	// InitObject creates the object provider bound at group 1.
	//
	// Parameters:
	//   - label: debug label for the buffers and bind group
	//   - jointCount: number of skinning matrices to reserve (0 for static objects)
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the object provider
	//   - error: an error if creation fails
	InitObject(label string, jointCount int) (bind_group_provider.BindGroupProvider, error)

	// InitMaterial creates the group 2 resources of a material and attaches them to it.
	// Materials that already have a provider are left untouched. Textures that fail to decode
	// are logged and replaced with neutral defaults.
	//
	// Parameters:
	//   - mat: the material to initialize
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	InitMaterial(mat material.Material) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	// Must be paired with EndFrame after all DrawCall invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes a single draw command within the current render pass.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - bindGroups: frame, object and material providers, in group order
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees every pipeline and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU device for the window surface, configures the surface at the
// window size and registers the pipelines supplied through options (DefaultPipelines when none).
// Panics if the device or a pipeline cannot be created.
//
// Parameters:
//   - backendType: the GPU API to use
//   - win: the window whose surface is rendered to
//   - options: functional options
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		sampler:       common.DefaultSampler(),
	}

	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(win.Width(), win.Height())

	pipelines := r.pendingPipelines
	if len(pipelines) == 0 {
		var err error
		if pipelines, err = DefaultPipelines(); err != nil {
			panic(err)
		}
	}
	if err := r.RegisterPipelines(pipelines...); err != nil {
		panic(err)
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color [4]float32) {
	r.backend.SetClearColor(color)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMesh(label string, vertexData, indexData []byte, indexCount int) (bind_group_provider.BindGroupProvider, error) {
	p := bind_group_provider.NewBindGroupProvider(label)
	if err := r.backend.InitMeshBuffers(p, vertexData, indexData, indexCount); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (r *renderer) InitFrame(label string) (bind_group_provider.BindGroupProvider, error) {
	p := bind_group_provider.NewBindGroupProvider(label)
	if err := r.backend.InitFrameBindGroup(p); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (r *renderer) InitObject(label string, jointCount int) (bind_group_provider.BindGroupProvider, error) {
	p := bind_group_provider.NewBindGroupProvider(label)
	if err := r.backend.InitObjectBindGroup(p, jointCount); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (r *renderer) InitMaterial(mat material.Material) error {
	if mat.BindGroupProvider() != nil {
		return nil
	}

	base := whiteTexture()
	if tex := mat.DiffuseTexture(); tex != nil {
		if decoded, err := tex.Decode(); err != nil {
			log.Printf("[Renderer] material %q: base color texture ignored: %v", mat.Name(), err)
		} else {
			base = decoded
		}
	}

	normal := common.FlatNormalTexture()
	switch {
	case mat.NormalPixels() != nil:
		normal = *mat.NormalPixels()
	case mat.NormalTexture() != nil:
		if decoded, err := mat.NormalTexture().Decode(); err != nil {
			log.Printf("[Renderer] material %q: normal map ignored: %v", mat.Name(), err)
		} else {
			normal = decoded
		}
	}

	uniform := mat.Uniform()
	p := bind_group_provider.NewBindGroupProvider("Material " + mat.Name())
	if err := r.backend.InitMaterialBindGroup(p, common.StructToBytes(&uniform), base, normal, r.sampler); err != nil {
		p.Release()
		return fmt.Errorf("failed to init material %q: %w", mat.Name(), err)
	}
	mat.SetBindGroupProvider(p)
	return nil
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}

func whiteTexture() common.TextureStagingData {
	return common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
}
