package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/engine/camera"
	"github.com/Carmen-Shannon/oxy-robot/engine/game_object"
	"github.com/Carmen-Shannon/oxy-robot/engine/geometry"
	"github.com/Carmen-Shannon/oxy-robot/engine/light"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/pipeline"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawCall struct {
	key        string
	mesh       bind_group_provider.BindGroupProvider
	bindGroups []bind_group_provider.BindGroupProvider
}

// fakeRenderer records what the scene asks of the GPU.
type fakeRenderer struct {
	meshes     int
	objects    []int
	materials  int
	clearColor [4]float32
	writes     []bind_group_provider.BufferWrite
	draws      []drawCall
	drawErr    error
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Pipeline(string) pipeline.Pipeline               { return nil }
func (f *fakeRenderer) RegisterPipelines(...pipeline.Pipeline) error    { return nil }
func (f *fakeRenderer) Resize(int, int)                                 {}
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode)             {}
func (f *fakeRenderer) SetClearColor(c [4]float32)                      { f.clearColor = c }
func (f *fakeRenderer) WriteBuffers(w []bind_group_provider.BufferWrite) { f.writes = append(f.writes, w...) }
func (f *fakeRenderer) BeginFrame() error                               { return nil }
func (f *fakeRenderer) EndFrame()                                       {}
func (f *fakeRenderer) Present()                                        {}
func (f *fakeRenderer) Release()                                        {}

func (f *fakeRenderer) InitMesh(label string, _, _ []byte, indexCount int) (bind_group_provider.BindGroupProvider, error) {
	f.meshes++
	p := bind_group_provider.NewBindGroupProvider(label)
	p.SetIndexCount(indexCount)
	return p, nil
}

func (f *fakeRenderer) InitFrame(label string) (bind_group_provider.BindGroupProvider, error) {
	return bind_group_provider.NewBindGroupProvider(label), nil
}

func (f *fakeRenderer) InitObject(label string, jointCount int) (bind_group_provider.BindGroupProvider, error) {
	f.objects = append(f.objects, jointCount)
	return bind_group_provider.NewBindGroupProvider(label), nil
}

func (f *fakeRenderer) InitMaterial(mat material.Material) error {
	if mat.BindGroupProvider() == nil {
		f.materials++
		mat.SetBindGroupProvider(bind_group_provider.NewBindGroupProvider(mat.Name()))
	}
	return nil
}

func (f *fakeRenderer) DrawCall(key string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.draws = append(f.draws, drawCall{key: key, mesh: mesh, bindGroups: bindGroups})
	return nil
}

func boxModel() model.Model {
	mat := material.NewMaterial(material.WithName("box"))
	return model.NewModel(
		model.WithName("box"),
		model.WithMeshes([]model.ImportedMesh{geometry.Box(1, 1, 1, [4]float32{1, 1, 1, 1})}),
		model.WithMaterials(mat),
	)
}

func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{}
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{0, 0, 10}),
		camera.WithClipPlanes(0.1, 100),
	)
	return NewScene("test", cam, r, options...), r
}

func TestNewSceneSetsClearColorToFog(t *testing.T) {
	fog := Fog{Color: [4]float32{0.5, 0.5, 0.5, 1}, Near: 20, Far: 100}
	s, r := newTestScene(t, WithFog(fog))

	assert.Equal(t, fog.Color, r.clearColor)
	assert.Equal(t, fog, s.Fog())

	s.SetFog(Fog{Color: [4]float32{1, 0, 0, 1}})
	assert.Equal(t, [4]float32{1, 0, 0, 1}, r.clearColor)
}

func TestAddUploadsSharedModelOnce(t *testing.T) {
	s, r := newTestScene(t)
	mdl := boxModel()

	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(mdl)))
	require.NoError(t, err)
	_, err = s.Add(game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithPosition(mgl32.Vec3{2, 0, 0})))
	require.NoError(t, err)

	assert.Equal(t, 1, r.meshes)
	assert.Equal(t, 2, r.materials, "box material plus the model default")
	assert.Equal(t, []int{0, 0}, r.objects)
	assert.Equal(t, 2, s.Count())
	assert.True(t, mdl.Uploaded())
}

func TestAddRejectsMissingModelAndDuplicates(t *testing.T) {
	s, _ := newTestScene(t)

	_, err := s.Add(game_object.NewGameObject())
	assert.ErrorIs(t, err, ErrNoModel)

	obj := game_object.NewGameObject(game_object.WithModel(boxModel()))
	_, err = s.Add(obj)
	require.NoError(t, err)
	_, err = s.Add(obj)
	assert.ErrorIs(t, err, ErrDuplicateObject)
}

func TestDrawCullsAndSkipsDisabled(t *testing.T) {
	s, r := newTestScene(t)
	mdl := boxModel()

	visible := game_object.NewGameObject(game_object.WithModel(mdl))
	behind := game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithPosition(mgl32.Vec3{0, 0, 50}))
	disabled := game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithEnabled(false))
	for _, o := range []game_object.GameObject{visible, behind, disabled} {
		_, err := s.Add(o)
		require.NoError(t, err)
	}

	drawn, err := s.Draw()
	require.NoError(t, err)
	assert.Equal(t, 1, drawn)

	require.Len(t, r.draws, 1)
	call := r.draws[0]
	assert.Equal(t, renderer.PipelineLit, call.key)
	assert.Equal(t, 36, call.mesh.IndexCount())
	require.Len(t, call.bindGroups, 3)
	assert.Same(t, visible.ObjectProvider(), call.bindGroups[renderer.GroupObject])

	// Frame uniform plus one object uniform; static objects write no joints.
	require.Len(t, r.writes, 2)
	assert.Len(t, r.writes[0].Data, renderer.FrameUniformSize)
	assert.Len(t, r.writes[1].Data, renderer.ObjectUniformSize)
}

func TestDrawWithCullingDisabled(t *testing.T) {
	s, r := newTestScene(t, WithCullingDisabled(true))
	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(boxModel()), game_object.WithPosition(mgl32.Vec3{0, 0, 50})))
	require.NoError(t, err)

	drawn, err := s.Draw()
	require.NoError(t, err)
	assert.Equal(t, 1, drawn)
	assert.Len(t, r.draws, 1)
}

func TestDrawWritesJointPalette(t *testing.T) {
	s, r := newTestScene(t)
	sk := &model.Skeleton{
		Bones:           []model.Bone{{Name: "root", ParentIndex: -1, InverseBindMatrix: mgl32.Ident4(), LocalTransform: model.IdentityTransform()}},
		RootBoneIndices: []int32{0},
		BoneNameToIndex: map[string]int32{"root": 0},
		RootMatrix:      mgl32.Ident4(),
	}
	mesh := geometry.Box(1, 1, 1, [4]float32{1, 1, 1, 1})
	mesh.Skinned = true
	mdl := model.NewModel(model.WithName("robot"), model.WithSkeleton(sk), model.WithMeshes([]model.ImportedMesh{mesh}))

	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(mdl)))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, r.objects)

	_, err = s.Draw()
	require.NoError(t, err)
	require.Len(t, r.writes, 3)
	assert.Equal(t, renderer.BindingObjectJoints, r.writes[2].Binding)
	assert.Len(t, r.writes[2].Data, renderer.JointMatrixSize)
}

func TestDrawReturnsDrawCallError(t *testing.T) {
	s, r := newTestScene(t)
	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(boxModel())))
	require.NoError(t, err)

	r.drawErr = errors.New("pipeline missing")
	_, err = s.Draw()
	assert.ErrorIs(t, err, r.drawErr)
}

func TestRemoveReleasesObjectBuffers(t *testing.T) {
	s, _ := newTestScene(t)
	obj := game_object.NewGameObject(game_object.WithModel(boxModel()))
	id, err := s.Add(obj)
	require.NoError(t, err)

	s.Remove(id)

	assert.Zero(t, s.Count())
	assert.Nil(t, s.Get(id))
	assert.Nil(t, obj.ObjectProvider())
	s.Remove(id)
}

func TestLightsAndFrameUniformSize(t *testing.T) {
	s, _ := newTestScene(t, WithLights(light.NewLight(light.LightTypeAmbient)))
	s.AddLight(light.NewLight(light.LightTypePoint))

	assert.Len(t, s.Lights(), 2)

	var frame GPUFrameUniform
	assert.Equal(t, renderer.FrameUniformSize, frame.Size())
}
