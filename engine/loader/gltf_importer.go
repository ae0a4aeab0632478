package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

// gltfImporter is the glTF/GLB loaderBackend. It runs the parser, then the skeleton,
// mesh, animation and material extractors in that order.
type gltfImporter struct{}

var _ loaderBackend = &gltfImporter{}

// newGLTFImporter creates a new glTF importer.
func newGLTFImporter() loaderBackend {
	return &gltfImporter{}
}

func (imp *gltfImporter) Import(path string) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.convert(parser, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

func (imp *gltfImporter) ImportReader(r io.Reader, name, baseDir string) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, baseDir); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return imp.convert(parser, name)
}

func (imp *gltfImporter) convert(parser gltfParser, fallbackName string) (*model.ImportedModel, error) {
	doc := parser.Document()

	out := &model.ImportedModel{Name: modelName(doc, fallbackName)}

	skeletons := newGLTFSkeletonExtractor(parser)
	skinIndex := skeletons.FindSkin()
	var mapping gltfSkinMapping
	if skinIndex >= 0 {
		var err error
		out.Skeleton, mapping, err = skeletons.ExtractSkeleton(skinIndex)
		if err != nil {
			return nil, fmt.Errorf("skeleton extraction failed: %w", err)
		}
	}

	meshes, err := newGLTFMeshExtractor(parser).ExtractMeshes(skinIndex, mapping.jointToBone)
	if err != nil {
		return nil, fmt.Errorf("mesh extraction failed: %w", err)
	}
	out.Meshes = meshes

	if out.Skeleton != nil && len(doc.Animations) > 0 {
		out.Animations, err = newGLTFAnimationExtractor(parser).ExtractAnimations(mapping.nodeToBone)
		if err != nil {
			return nil, fmt.Errorf("animation extraction failed: %w", err)
		}
	}

	out.Materials, err = newGLTFMaterialExtractor(parser).ExtractMaterials()
	if err != nil {
		return nil, fmt.Errorf("material extraction failed: %w", err)
	}

	return out, nil
}

// modelName prefers the default scene name over the file name.
func modelName(doc *gltfDocument, fallback string) string {
	var sceneName string
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		sceneName = doc.Scenes[*doc.Scene].Name
	}
	return common.Coalesce(sceneName, fallback, "unnamed_model")
}
