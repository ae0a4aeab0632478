package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/camera"
	"github.com/Carmen-Shannon/oxy-robot/engine/game_object"
	"github.com/Carmen-Shannon/oxy-robot/engine/light"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/bind_group_provider"
)

var (
	// ErrNoModel is returned when adding a GameObject that has no Model.
	ErrNoModel = errors.New("game object has no model")

	// ErrDuplicateObject is returned when adding a GameObject that is already in the scene.
	ErrDuplicateObject = errors.New("game object already in scene")
)

// Fog is linear distance fog: fully clear at Near, fully Color at Far.
type Fog struct {
	Color [4]float32
	Near  float32
	Far   float32
}

// Scene holds a Camera, a Renderer, lights, fog and an ordered list of GameObjects.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently drawn.
	Active() bool

	// SetActive sets whether this scene is drawn.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Fog returns the scene fog.
	Fog() Fog

	// SetFog replaces the scene fog. The renderer clear color follows the fog color.
	SetFog(fog Fog)

	// AddLight appends a light. Lights are packed in insertion order every frame.
	AddLight(l light.Light)

	// Lights returns a copy of the light list.
	Lights() []light.Light

	// Add uploads the object's model (once per model) and creates the object's GPU buffers,
	// then appends it to the draw list.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object ID
	//   - error: ErrNoModel, ErrDuplicateObject or an upload failure
	Add(obj game_object.GameObject) (uint64, error)

	// Get retrieves a GameObject by its ID, or nil.
	Get(id uint64) game_object.GameObject

	// Remove drops the object from the draw list and releases its GPU buffers.
	// The shared model stays uploaded.
	Remove(id uint64)

	// Objects returns the objects in draw order.
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	Count() int

	// Draw writes the frame uniform and every visible object's uniforms, then issues one
	// draw call per mesh of each enabled object whose bounding sphere is inside the view
	// frustum. Must be called between Renderer.BeginFrame and Renderer.EndFrame.
	//
	// Returns:
	//   - int: the number of objects drawn
	//   - error: the first draw call failure
	Draw() (int, error)

	// Clear removes every object, releasing their GPU buffers.
	Clear()

	// Release frees every GPU resource the scene created, including uploaded models.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	fog    Fog
	lights []light.Light

	objects  []game_object.GameObject
	registry map[uint64]game_object.GameObject
	models   []model.Model

	frameProvider bind_group_provider.BindGroupProvider

	cullingDisabled bool
}

var _ Scene = &scene{}

// NewScene creates a new Scene and its per-frame GPU buffers.
// Panics if the renderer is nil or the frame buffers cannot be created.
// Default fog is white from 20 to 100 units.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera to draw with
//   - r: the renderer to draw with
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: cannot create a Scene without a Renderer")
	}
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		active:   true,
		cam:      cam,
		r:        r,
		fog:      Fog{Color: [4]float32{1, 1, 1, 1}, Near: 20, Far: 100},
		registry: make(map[uint64]game_object.GameObject),
	}
	for _, option := range options {
		option(s)
	}

	frame, err := r.InitFrame("Frame " + name)
	if err != nil {
		panic(fmt.Sprintf("scene: failed to create frame buffers for %q: %v", name, err))
	}
	s.frameProvider = frame
	r.SetClearColor(s.fog.Color)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Fog() Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(fog Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = fog
	s.r.SetClearColor(fog.Color)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) Add(obj game_object.GameObject) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mdl := obj.Model()
	if mdl == nil {
		return 0, ErrNoModel
	}
	if _, exists := s.registry[obj.ID()]; exists {
		return 0, fmt.Errorf("%w: %d", ErrDuplicateObject, obj.ID())
	}

	if err := s.uploadModel(mdl); err != nil {
		return 0, fmt.Errorf("failed to upload model %q: %w", mdl.Name(), err)
	}

	if obj.ObjectProvider() == nil {
		provider, err := s.r.InitObject(fmt.Sprintf("Object %s#%d", obj.Name(), obj.ID()), obj.JointCount())
		if err != nil {
			return 0, fmt.Errorf("failed to create object buffers for %q: %w", obj.Name(), err)
		}
		obj.SetObjectProvider(provider)
	}

	s.objects = append(s.objects, obj)
	s.registry[obj.ID()] = obj
	return obj.ID(), nil
}

// uploadModel creates mesh buffers and material bind groups the first time a model is seen.
// Caller must hold the write lock.
func (s *scene) uploadModel(mdl model.Model) error {
	if !mdl.Uploaded() {
		for i, mesh := range mdl.Meshes() {
			if mdl.MeshProvider(i) != nil {
				continue
			}
			provider, err := s.r.InitMesh(
				fmt.Sprintf("Mesh %s/%s", mdl.Name(), mesh.Name),
				common.SliceToBytes(mesh.Vertices),
				common.SliceToBytes(mesh.Indices),
				len(mesh.Indices),
			)
			if err != nil {
				return err
			}
			mdl.SetMeshProvider(i, provider)
		}
	}
	for _, mat := range mdl.Materials() {
		if err := s.r.InitMaterial(mat); err != nil {
			return err
		}
	}
	if !slices.Contains(s.models, mdl) {
		s.models = append(s.models, mdl)
	}
	return nil
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.registry[id]
	if !exists {
		return
	}
	delete(s.registry, id)
	s.objects = slices.DeleteFunc(s.objects, func(o game_object.GameObject) bool { return o.ID() == id })
	obj.Release()
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Draw() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cam == nil {
		return 0, fmt.Errorf("scene %q has no camera attached", s.name)
	}

	frame := GPUFrameUniform{
		Camera:   s.cam.Block(),
		FogColor: s.fog.Color,
		FogRange: [4]float32{s.fog.Near, s.fog.Far, 0, 0},
		Lights:   light.Pack(s.lights),
	}
	writes := []bind_group_provider.BufferWrite{{
		Provider: s.frameProvider,
		Binding:  0,
		Data:     common.StructToBytes(&frame),
	}}

	frustum := s.cam.Frustum()
	visible := make([]game_object.GameObject, 0, len(s.objects))
	for _, obj := range s.objects {
		if !obj.Enabled() || obj.ObjectProvider() == nil {
			continue
		}
		if !s.cullingDisabled {
			center, radius := obj.WorldBoundingSphere()
			if !frustum.ContainsSphere(center, radius) {
				continue
			}
		}
		visible = append(visible, obj)

		uniform := obj.Uniform()
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: obj.ObjectProvider(),
			Binding:  renderer.BindingObjectUniform,
			Data:     common.StructToBytes(&uniform),
		})
		if obj.JointCount() > 0 {
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: obj.ObjectProvider(),
				Binding:  renderer.BindingObjectJoints,
				Data:     common.SliceToBytes(obj.Joints()),
			})
		}
	}
	s.r.WriteBuffers(writes)

	for _, obj := range visible {
		mdl := obj.Model()
		for i := range mdl.Meshes() {
			meshProvider := mdl.MeshProvider(i)
			if meshProvider == nil {
				continue
			}
			mat := mdl.MeshMaterial(i)
			if mat.BindGroupProvider() == nil {
				continue
			}
			key := common.Coalesce(mat.PipelineKey(), renderer.PipelineLit)
			bindGroups := []bind_group_provider.BindGroupProvider{s.frameProvider, obj.ObjectProvider(), mat.BindGroupProvider()}
			if err := s.r.DrawCall(key, meshProvider, bindGroups); err != nil {
				return 0, fmt.Errorf("draw call failed for %q in scene %q: %w", obj.Name(), s.name, err)
			}
		}
	}
	return len(visible), nil
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range s.objects {
		obj.Release()
	}
	s.objects = nil
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range s.objects {
		obj.Release()
	}
	s.objects = nil
	s.registry = make(map[uint64]game_object.GameObject)
	for _, mdl := range s.models {
		mdl.Release()
	}
	s.models = nil
	if s.frameProvider != nil {
		s.frameProvider.Release()
		s.frameProvider = nil
	}
}
