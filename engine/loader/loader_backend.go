package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

// loaderBackend imports one model file format into CPU-side model data.
type loaderBackend interface {
	// Import reads and converts the file at path.
	//
	// Parameters:
	//   - path: the file to import
	//
	// Returns:
	//   - *model.ImportedModel: meshes, skeleton, clips and materials
	//   - error: error if the file cannot be read or is malformed
	Import(path string) (*model.ImportedModel, error)

	// ImportReader converts a model read from r. Relative resources resolve against baseDir.
	//
	// Parameters:
	//   - r: the model bytes
	//   - name: model name used when the file does not carry one
	//   - baseDir: directory for relative URIs
	//
	// Returns:
	//   - *model.ImportedModel: meshes, skeleton, clips and materials
	//   - error: error if the data is malformed
	ImportReader(r io.Reader, name, baseDir string) (*model.ImportedModel, error)
}
