package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShaderDefaultsEntryPoint(t *testing.T) {
	vs, err := NewShader("vs", ShaderTypeVertex, WithSource(SceneSource))
	require.NoError(t, err)
	assert.Equal(t, "vs_main", vs.EntryPoint())

	fs, err := NewShader("fs", ShaderTypeFragment, WithSource(SceneSource), WithEntryPoint("fs_unlit"))
	require.NoError(t, err)
	assert.Equal(t, "fs_unlit", fs.EntryPoint())
	assert.Equal(t, "fs", fs.ModuleDescriptor().Label)
}

func TestNewShaderRequiresSource(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeVertex)
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = NewShader("missing", ShaderTypeVertex, WithSourceFile("does-not-exist.wgsl"))
	assert.Error(t, err)
}

func TestWithSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("@vertex fn vs_main() {}"), 0o644))

	s, err := NewShader("file", ShaderTypeVertex, WithSourceFile(path))
	require.NoError(t, err)
	assert.Contains(t, s.Source(), "vs_main")
}
