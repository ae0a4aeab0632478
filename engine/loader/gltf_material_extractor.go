package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-robot/common"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser gltfParser
}

// gltfMaterialExtractor reads metallic-roughness material factors and textures.
type gltfMaterialExtractor interface {
	// ExtractMaterials converts every material in document order.
	//
	// Returns:
	//   - []common.ImportedMaterial: one entry per glTF material
	//   - error: error if a texture reference is invalid
	ExtractMaterials() ([]common.ImportedMaterial, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a material extractor over a parsed document.
func newGLTFMaterialExtractor(parser gltfParser) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{parser: parser}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterials() ([]common.ImportedMaterial, error) {
	doc := e.parser.Document()
	out := make([]common.ImportedMaterial, len(doc.Materials))

	for i := range doc.Materials {
		src := &doc.Materials[i]
		mat := common.ImportedMaterial{
			Name:      src.Name,
			BaseColor: [4]float32{1, 1, 1, 1},
			Metallic:  1,
			Roughness: 1,
		}
		if mat.Name == "" {
			mat.Name = fmt.Sprintf("material_%d", i)
		}

		if pbr := src.PbrMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				mat.BaseColor = *pbr.BaseColorFactor
			}
			if pbr.MetallicFactor != nil {
				mat.Metallic = *pbr.MetallicFactor
			}
			if pbr.RoughnessFactor != nil {
				mat.Roughness = *pbr.RoughnessFactor
			}
			if pbr.BaseColorTexture != nil {
				tex, err := e.texture(pbr.BaseColorTexture.Index, "diffuse")
				if err != nil {
					return nil, fmt.Errorf("material %q: base color texture: %w", mat.Name, err)
				}
				mat.DiffuseTexture = tex
			}
		}
		if src.NormalTexture != nil {
			tex, err := e.texture(src.NormalTexture.Index, "normal")
			if err != nil {
				return nil, fmt.Errorf("material %q: normal texture: %w", mat.Name, err)
			}
			mat.NormalTexture = tex
		}
		if src.EmissiveFactor != nil {
			mat.Emissive = *src.EmissiveFactor
		}

		out[i] = mat
	}
	return out, nil
}

// texture resolves a texture to embedded bytes (buffer view or data URI) or a file path.
// A texture without a source image yields nil.
func (e *gltfMaterialExtractorImpl) texture(index int, role string) (*common.ImportedTexture, error) {
	doc := e.parser.Document()
	if index < 0 || index >= len(doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", index)
	}
	src := doc.Textures[index].Source
	if src == nil {
		return nil, nil
	}
	if *src < 0 || *src >= len(doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", *src)
	}
	img := &doc.Images[*src]

	tex := &common.ImportedTexture{
		Name:     common.Coalesce(img.Name, role),
		MimeType: img.MimeType,
	}
	switch {
	case img.BufferView != nil:
		data, err := e.parser.BufferView(*img.BufferView)
		if err != nil {
			return nil, fmt.Errorf("failed to read image buffer view: %w", err)
		}
		tex.Data = data
	case strings.HasPrefix(img.URI, "data:"):
		data, mime, err := decodeDataURI(img.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image data URI: %w", err)
		}
		tex.Data = data
		tex.MimeType = common.Coalesce(tex.MimeType, mime)
	case img.URI != "":
		// Decoded lazily by the renderer; a missing file falls back to a flat texture there.
		tex.Path = filepath.Join(e.parser.BaseDir(), img.URI)
	default:
		return nil, nil
	}
	return tex, nil
}
