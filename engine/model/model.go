package model

import (
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/material"

	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	skeleton       *Skeleton
	animations     []*AnimationClip
	meshes         []ImportedMesh
	meshProviders  []bind_group_provider.BindGroupProvider
	materials      []material.Material
	defaultMat     material.Material
	pipelineKey    string
	boundingCenter mgl32.Vec3
	boundingRadius float32
}

// Model defines the interface for a loaded 3D model.
// A Model holds the imported meshes, skeleton hierarchy, animation clips and render materials.
// It is produced by the Loader; GPU mesh buffers are attached later by the scene the first
// time the model is drawn, through SetMeshProvider.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Skinned reports whether this model uses skeletal animation.
	//
	// Returns:
	//   - bool: true if the model has bone data
	Skinned() bool

	// Skeleton retrieves the bone hierarchy for this model.
	// Returns nil for static (non-skinned) models.
	//
	// Returns:
	//   - *Skeleton: the skeleton or nil
	Skeleton() *Skeleton

	// Animations retrieves all animation clips bundled with this model.
	//
	// Returns:
	//   - []*AnimationClip: the animation clips
	Animations() []*AnimationClip

	// AnimationNames returns the names of all animation clips, in file order.
	//
	// Returns:
	//   - []string: the animation clip names
	AnimationNames() []string

	// Animation looks a clip up by name.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - *AnimationClip: the clip, or nil
	//   - bool: whether the clip exists
	Animation(name string) (*AnimationClip, bool)

	// Meshes returns every primitive of the model.
	Meshes() []ImportedMesh

	// MeshProvider returns the GPU buffers for mesh i, or nil before upload.
	MeshProvider(i int) bind_group_provider.BindGroupProvider

	// SetMeshProvider attaches the GPU buffers for mesh i.
	//
	// Parameters:
	//   - i: mesh index
	//   - provider: the provider holding the mesh vertex and index buffers
	SetMeshProvider(i int, provider bind_group_provider.BindGroupProvider)

	// Uploaded reports whether every mesh has GPU buffers attached.
	Uploaded() bool

	// MeshMaterial returns the render material for mesh i.
	// Meshes without a material index share a default white material.
	//
	// Parameters:
	//   - i: mesh index
	//
	// Returns:
	//   - material.Material: the material to draw mesh i with
	MeshMaterial(i int) material.Material

	// Materials returns every render material, including the shared default one.
	Materials() []material.Material

	// BoundingSphere returns the model-space bounding sphere of all meshes at bind pose.
	//
	// Returns:
	//   - mgl32.Vec3: sphere center
	//   - float32: sphere radius
	BoundingSphere() (mgl32.Vec3, float32)

	// Release frees the GPU resources of every mesh and material.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// Render materials are built from the imported materials of the model.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	m.meshProviders = make([]bind_group_provider.BindGroupProvider, len(m.meshes))
	m.defaultMat = material.NewMaterial(material.WithName(m.name+"/default"), material.WithPipelineKey(m.pipelineKey))
	m.boundingCenter, m.boundingRadius = boundingSphere(m.meshes)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skinned() bool {
	return m.skeleton != nil && len(m.skeleton.Bones) > 0
}

func (m *model) Skeleton() *Skeleton {
	return m.skeleton
}

func (m *model) Animations() []*AnimationClip {
	return m.animations
}

func (m *model) AnimationNames() []string {
	names := make([]string, len(m.animations))
	for i, anim := range m.animations {
		names[i] = anim.Name
	}
	return names
}

func (m *model) Animation(name string) (*AnimationClip, bool) {
	for _, anim := range m.animations {
		if anim.Name == name {
			return anim, true
		}
	}
	return nil, false
}

func (m *model) Meshes() []ImportedMesh {
	return m.meshes
}

func (m *model) MeshProvider(i int) bind_group_provider.BindGroupProvider {
	if i < 0 || i >= len(m.meshProviders) {
		return nil
	}
	return m.meshProviders[i]
}

func (m *model) SetMeshProvider(i int, provider bind_group_provider.BindGroupProvider) {
	if i < 0 || i >= len(m.meshProviders) {
		return
	}
	m.meshProviders[i] = provider
}

func (m *model) Uploaded() bool {
	for _, p := range m.meshProviders {
		if p == nil {
			return false
		}
	}
	return true
}

func (m *model) MeshMaterial(i int) material.Material {
	if i < 0 || i >= len(m.meshes) {
		return m.defaultMat
	}
	idx := m.meshes[i].MaterialIndex
	if idx < 0 || idx >= len(m.materials) {
		return m.defaultMat
	}
	return m.materials[idx]
}

func (m *model) Materials() []material.Material {
	return append(append([]material.Material{}, m.materials...), m.defaultMat)
}

func (m *model) BoundingSphere() (mgl32.Vec3, float32) {
	return m.boundingCenter, m.boundingRadius
}

func (m *model) Release() {
	for i, p := range m.meshProviders {
		if p != nil {
			p.Release()
			m.meshProviders[i] = nil
		}
	}
	for _, mat := range m.Materials() {
		if p := mat.BindGroupProvider(); p != nil {
			p.Release()
			mat.SetBindGroupProvider(nil)
		}
	}
}

// boundingSphere encloses the axis-aligned bounds of every mesh.
func boundingSphere(meshes []ImportedMesh) (mgl32.Vec3, float32) {
	if len(meshes) == 0 {
		return mgl32.Vec3{}, 0
	}
	lo := mgl32.Vec3(meshes[0].BoundingMin)
	hi := mgl32.Vec3(meshes[0].BoundingMax)
	for _, mesh := range meshes[1:] {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], mesh.BoundingMin[a])
			hi[a] = max(hi[a], mesh.BoundingMax[a])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	return center, hi.Sub(center).Len()
}
