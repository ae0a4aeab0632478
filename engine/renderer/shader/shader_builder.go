package shader

import "errors"

// ErrEmptySource is returned when a shader is built without WGSL source.
var ErrEmptySource = errors.New("shader source is empty")

// ShaderBuilderOption configures a shader during construction. Options that read from disk may fail.
type ShaderBuilderOption func(*shader) error

// WithSource sets the WGSL source directly.
//
// Parameters:
//   - source: WGSL code
//
// Returns:
//   - ShaderBuilderOption: a function that sets the source
func WithSource(source string) ShaderBuilderOption {
	return func(s *shader) error {
		s.source = source
		return nil
	}
}

// WithSourceFile reads WGSL source from a file.
//
// Parameters:
//   - path: path to a .wgsl file
//
// Returns:
//   - ShaderBuilderOption: a function that loads and sets the source
func WithSourceFile(path string) ShaderBuilderOption {
	return func(s *shader) error {
		src, err := readSourceFile(path)
		if err != nil {
			return err
		}
		s.source = src
		return nil
	}
}

// WithEntryPoint overrides the default entry point ("vs_main" or "fs_main").
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) error {
		s.entryPoint = entryPoint
		return nil
	}
}

// WithLabel overrides the GPU debug label, which defaults to the shader key.
func WithLabel(label string) ShaderBuilderOption {
	return func(s *shader) error {
		s.label = label
		return nil
	}
}
