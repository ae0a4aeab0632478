package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/engine/loader"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandDefaults(t *testing.T) {
	cmd := newRootCommand()
	flags := cmd.Flags()

	tests := map[string]string{
		"model":         "./RobotExpressive.glb",
		"width":         "1280",
		"height":        "720",
		"resting-state": "Walking",
		"emote-keys":    "false",
		"ground-normal": "normal.jpg",
		"stars":         "200",
		"msaa":          "4",
		"vsync":         "true",
	}
	for name, want := range tests {
		f := flags.Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, want, f.DefValue, name)
	}

	info, _, err := cmd.Find([]string{"info"})
	require.NoError(t, err)
	assert.Equal(t, "info", info.Name())
}

func TestMSAASampleCount(t *testing.T) {
	off, err := msaaSampleCount(1)
	require.NoError(t, err)
	assert.Equal(t, renderer.MSAAOff, off)

	on, err := msaaSampleCount(4)
	require.NoError(t, err)
	assert.Equal(t, renderer.MSAA4x, on)

	_, err = msaaSampleCount(8)
	assert.Error(t, err)
}

func TestPrintInfo(t *testing.T) {
	m := model.NewModel(
		model.WithName("Robot"),
		model.WithSkeleton(&model.Skeleton{
			Bones:      []model.Bone{{Name: "Hips", ParentIndex: -1, InverseBindMatrix: mgl32.Ident4(), LocalTransform: model.IdentityTransform()}},
			RootMatrix: mgl32.Ident4(),
		}),
		model.WithAnimations([]*model.AnimationClip{
			{Name: "Idle", Duration: 2},
			{Name: "Wave", Duration: 1.5},
		}),
		model.WithMeshes([]model.ImportedMesh{{
			Name:     "Body",
			Vertices: make([]model.GPUSkinnedVertex, 3),
			Indices:  []uint32{0, 1, 2},
		}}),
	)

	var out bytes.Buffer
	printInfo(&out, "robot.glb", m)

	text := out.String()
	assert.Contains(t, text, "Name:    Robot")
	assert.Contains(t, text, "Meshes:  1 (3 vertices, 1 triangles)")
	assert.Contains(t, text, "Bones:   1")
	assert.Contains(t, text, "Clips:   2")
	assert.Regexp(t, `Idle\s+2\.00s\s+repeat`, text)
	assert.Regexp(t, `Wave\s+1\.50s\s+once`, text)
}

func TestRunInfoReportsLoadError(t *testing.T) {
	err := runInfo(context.Background(), &bytes.Buffer{}, "robot.fbx")
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}
