package model

import (
	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSkeleton is an option builder that sets the bone hierarchy of the Model.
//
// Parameters:
//   - skeleton: the skeleton to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the skeleton option to a model
func WithSkeleton(skeleton *Skeleton) ModelBuilderOption {
	return func(m *model) {
		m.skeleton = skeleton
	}
}

// WithAnimations is an option builder that sets the animation clips of the Model.
//
// Parameters:
//   - animations: the animation clips to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the animations option to a model
func WithAnimations(animations []*AnimationClip) ModelBuilderOption {
	return func(m *model) {
		m.animations = animations
	}
}

// WithMeshes sets the primitives of the Model.
//
// Parameters:
//   - meshes: imported primitives with CPU-side vertex and index data
//
// Returns:
//   - ModelBuilderOption: a function that applies the meshes option to a model
func WithMeshes(meshes []ImportedMesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = meshes
	}
}

// WithImportedMaterials converts imported materials into render materials drawn with pipelineKey.
//
// Parameters:
//   - mats: materials read from the model file
//   - pipelineKey: the pipeline every converted material uses
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithImportedMaterials(mats []common.ImportedMaterial, pipelineKey string) ModelBuilderOption {
	return func(m *model) {
		m.pipelineKey = pipelineKey
		m.materials = make([]material.Material, len(mats))
		for i, im := range mats {
			m.materials[i] = material.FromImported(im, material.WithPipelineKey(pipelineKey))
		}
	}
}

// FromImported builds a Model from an importer result.
//
// Parameters:
//   - imported: the importer output
//   - pipelineKey: the pipeline used by the model materials
//
// Returns:
//   - Model: a new Model
func FromImported(imported *ImportedModel, pipelineKey string) Model {
	return NewModel(
		WithName(imported.Name),
		WithSkeleton(imported.Skeleton),
		WithAnimations(imported.Animations),
		WithMeshes(imported.Meshes),
		WithImportedMaterials(imported.Materials, pipelineKey),
	)
}

// WithMaterials sets ready-made render materials, indexed by ImportedMesh.MaterialIndex.
// Used for procedural geometry that never went through an importer.
//
// Parameters:
//   - mats: the render materials
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithMaterials(mats ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = mats
	}
}

// WithPipelineKey sets the pipeline of the model's default material.
func WithPipelineKey(key string) ModelBuilderOption {
	return func(m *model) {
		m.pipelineKey = key
	}
}
