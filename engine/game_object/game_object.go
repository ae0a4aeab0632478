package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/bind_group_provider"

	"github.com/go-gl/mathgl/mgl32"
)

var objectCount atomic.Uint64

// gameObject is the implementation of the GameObject interface.
type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool
	mdl     model.Model

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	joints []mgl32.Mat4

	objectProvider bind_group_provider.BindGroupProvider
}

// GameObject is a placed instance of a Model in a scene.
// Several objects may share one Model; each owns its transform, its joint palette and the
// GPU buffers holding them.
type GameObject interface {
	// ID retrieves the unique identifier of the GameObject.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name retrieves the object's label (used in GPU resource labels and logs).
	Name() string

	// Enabled reports whether the object is drawn.
	//
	// Returns:
	//   - bool: true if the object is drawn
	Enabled() bool

	// Model retrieves the Model this object draws.
	//
	// Returns:
	//   - model.Model: the associated model
	Model() model.Model

	// Position retrieves the world-space position.
	Position() mgl32.Vec3

	// Rotation retrieves the Euler rotation in radians, applied X then Y then Z.
	Rotation() mgl32.Vec3

	// Scale retrieves the per-axis scale.
	Scale() mgl32.Vec3

	// ModelMatrix composes position, rotation and scale into the world matrix.
	//
	// Returns:
	//   - mgl32.Mat4: translation * rotation * scale
	ModelMatrix() mgl32.Mat4

	// Joints returns a copy of the skinning palette (empty for static models).
	Joints() []mgl32.Mat4

	// JointCount returns the size of the skinning palette.
	JointCount() int

	// ApplyPose rebuilds the skinning palette from per-bone local transforms.
	// Ignored for static models or when the pose length does not match the skeleton.
	//
	// Parameters:
	//   - pose: one local transform per bone, in skeleton order
	ApplyPose(pose []model.Transform)

	// WorldBoundingSphere returns the model bounding sphere moved into world space.
	//
	// Returns:
	//   - mgl32.Vec3: sphere center
	//   - float32: sphere radius scaled by the largest scale axis
	WorldBoundingSphere() (mgl32.Vec3, float32)

	// Uniform packs the per-object GPU uniform.
	Uniform() GPUObjectUniform

	// ObjectProvider returns the GPU buffers holding the object uniform and joints.
	ObjectProvider() bind_group_provider.BindGroupProvider

	// SetEnabled toggles drawing of the object.
	SetEnabled(enabled bool)

	// SetPosition sets the world-space position.
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the Euler rotation in radians.
	SetRotation(rotation mgl32.Vec3)

	// SetScale sets the per-axis scale.
	SetScale(scale mgl32.Vec3)

	// SetObjectProvider attaches the GPU buffers created for this object.
	SetObjectProvider(provider bind_group_provider.BindGroupProvider)

	// Release frees the object's GPU buffers. The shared Model is left alone.
	Release()
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the specified options applied.
// Objects start enabled, at the origin, unrotated and with unit scale. Skinned models start
// with the skeleton's rest pose in the palette.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		id:    objectCount.Add(1),
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.mdl != nil && obj.mdl.Skinned() {
		sk := obj.mdl.Skeleton()
		obj.joints = make([]mgl32.Mat4, len(sk.Bones))
		sk.JointMatrices(sk.RestPose(), obj.joints)
	}
	if obj.name == "" && obj.mdl != nil {
		obj.name = obj.mdl.Name()
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.ModelMatrix(g.position, g.rotation, g.scale)
}

func (g *gameObject) Joints() []mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]mgl32.Mat4(nil), g.joints...)
}

func (g *gameObject) JointCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.joints)
}

func (g *gameObject) ApplyPose(pose []model.Transform) {
	if g.mdl == nil || !g.mdl.Skinned() {
		return
	}
	sk := g.mdl.Skeleton()
	if len(pose) != len(sk.Bones) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	sk.JointMatrices(pose, g.joints)
}

func (g *gameObject) WorldBoundingSphere() (mgl32.Vec3, float32) {
	if g.mdl == nil {
		return g.Position(), 0
	}
	center, radius := g.mdl.BoundingSphere()
	g.mu.Lock()
	defer g.mu.Unlock()
	world := common.ModelMatrix(g.position, g.rotation, g.scale).Mul4x1(center.Vec4(1)).Vec3()
	s := max(abs(g.scale[0]), abs(g.scale[1]), abs(g.scale[2]))
	return world, radius * s
}

func (g *gameObject) Uniform() GPUObjectUniform {
	g.mu.Lock()
	defer g.mu.Unlock()
	m := common.ModelMatrix(g.position, g.rotation, g.scale)
	u := GPUObjectUniform{
		Model:        m,
		NormalMatrix: m.Inv().Transpose(),
	}
	if len(g.joints) > 0 {
		u.Flags[0] = 1
		u.Flags[1] = uint32(len(g.joints))
	}
	return u
}

func (g *gameObject) ObjectProvider() bind_group_provider.BindGroupProvider {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.objectProvider
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(position mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = position
}

func (g *gameObject) SetRotation(rotation mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = rotation
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
}

func (g *gameObject) SetObjectProvider(provider bind_group_provider.BindGroupProvider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objectProvider = provider
}

func (g *gameObject) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.objectProvider != nil {
		g.objectProvider.Release()
		g.objectProvider = nil
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
