package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docBuilder assembles a glTF document with a single binary buffer.
type docBuilder struct {
	bin       bytes.Buffer
	views     []map[string]any
	accessors []map[string]any
}

func (b *docBuilder) add(data any, componentType int, typ string, count int, extra map[string]any) int {
	for b.bin.Len()%4 != 0 {
		b.bin.WriteByte(0)
	}
	off := b.bin.Len()
	if err := binary.Write(&b.bin, binary.LittleEndian, data); err != nil {
		panic(err)
	}
	b.views = append(b.views, map[string]any{"buffer": 0, "byteOffset": off, "byteLength": b.bin.Len() - off})
	acc := map[string]any{"bufferView": len(b.views) - 1, "componentType": componentType, "type": typ, "count": count}
	for k, v := range extra {
		acc[k] = v
	}
	b.accessors = append(b.accessors, acc)
	return len(b.accessors) - 1
}

// robotDocument describes a two-joint skinned triangle whose skin lists the child joint
// first, a static prop node translated up by 5, and two clips.
func robotDocument() (map[string]any, *docBuilder) {
	b := &docBuilder{}
	pos := b.add([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, gltfFloat, "VEC3", 3, nil)
	joints := b.add([]uint8{0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}, gltfUnsignedByte, "VEC4", 3, nil)
	weights := b.add([]float32{2, 2, 0, 0, 1, 0, 0, 0, 0, 3, 0, 0}, gltfFloat, "VEC4", 3, nil)
	indices := b.add([]uint16{0, 1, 2}, gltfUnsignedShort, "SCALAR", 3, nil)

	spineIBM := mgl32.Translate3D(0, -2, 0)
	hipsIBM := mgl32.Translate3D(0, -1, 0)
	ibm := b.add(append(append([]float32{}, spineIBM[:]...), hipsIBM[:]...), gltfFloat, "MAT4", 2, nil)

	times := b.add([]float32{0, 1.5}, gltfFloat, "SCALAR", 2, nil)
	rotations := b.add([]float32{0, 0, 0, 1, 0, 0.7071068, 0, 0.7071068}, gltfFloat, "VEC4", 2, nil)
	translations := b.add([]float32{0, 1, 0, 0, 2, 0}, gltfFloat, "VEC3", 2, nil)

	doc := map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"name": "RobotScene", "nodes": []int{0, 4}}},
		"nodes": []any{
			map[string]any{"name": "Armature", "translation": []float32{0, 1, 0}, "children": []int{1, 3}},
			map[string]any{"name": "Hips", "children": []int{2}},
			map[string]any{"name": "Spine", "translation": []float32{0, 1, 0}},
			map[string]any{"name": "Body", "mesh": 0, "skin": 0, "translation": []float32{9, 9, 9}},
			map[string]any{"name": "Prop", "mesh": 1, "translation": []float32{0, 5, 0}},
		},
		"meshes": []any{
			map[string]any{"name": "Body", "primitives": []any{map[string]any{
				"attributes": map[string]int{"POSITION": pos, "JOINTS_0": joints, "WEIGHTS_0": weights},
				"indices":    indices,
				"material":   0,
			}}},
			map[string]any{"name": "Prop", "primitives": []any{map[string]any{
				"attributes": map[string]int{"POSITION": pos},
				"indices":    indices,
			}}},
		},
		"skins": []any{map[string]any{"joints": []int{2, 1}, "inverseBindMatrices": ibm}},
		"animations": []any{
			map[string]any{
				"name": "Wave",
				"samplers": []any{
					map[string]any{"input": times, "output": rotations, "interpolation": "STEP"},
					map[string]any{"input": times, "output": translations},
				},
				"channels": []any{
					map[string]any{"sampler": 0, "target": map[string]any{"node": 1, "path": "rotation"}},
					map[string]any{"sampler": 1, "target": map[string]any{"node": 2, "path": "translation"}},
					map[string]any{"sampler": 1, "target": map[string]any{"node": 4, "path": "translation"}},
				},
			},
			map[string]any{
				"name":     "Idle",
				"samplers": []any{map[string]any{"input": times, "output": translations}},
				"channels": []any{map[string]any{"sampler": 0, "target": map[string]any{"node": 2, "path": "translation"}}},
			},
		},
		"materials": []any{map[string]any{
			"name":                 "Metal",
			"pbrMetallicRoughness": map[string]any{"baseColorFactor": []float32{1, 0, 0, 1}, "metallicFactor": 0.5},
			"emissiveFactor":       []float32{0, 0.2, 0},
		}},
	}
	return doc, b
}

func finish(doc map[string]any, b *docBuilder) {
	doc["bufferViews"] = b.views
	doc["accessors"] = b.accessors
}

func encodeGLB(t *testing.T, doc map[string]any, b *docBuilder) []byte {
	t.Helper()
	for b.bin.Len()%4 != 0 {
		b.bin.WriteByte(0)
	}
	finish(doc, b)
	doc["buffers"] = []any{map[string]any{"byteLength": b.bin.Len()}}

	js, err := json.Marshal(doc)
	require.NoError(t, err)
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}

	var out bytes.Buffer
	total := 12 + 8 + len(js) + 8 + b.bin.Len()
	require.NoError(t, binary.Write(&out, binary.LittleEndian, glbHeader{Magic: glbMagic, Version: glbVersion, Length: uint32(total)}))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, glbChunkHeader{Length: uint32(len(js)), Type: glbChunkJSON}))
	out.Write(js)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, glbChunkHeader{Length: uint32(b.bin.Len()), Type: glbChunkBIN}))
	out.Write(b.bin.Bytes())
	return out.Bytes()
}

func writeRobot(t *testing.T) string {
	t.Helper()
	doc, b := robotDocument()
	path := filepath.Join(t.TempDir(), "robot.glb")
	require.NoError(t, os.WriteFile(path, encodeGLB(t, doc, b), 0o644))
	return path
}

func TestLoadGLBSkeleton(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	m, err := l.Load(writeRobot(t))
	require.NoError(t, err)

	assert.Equal(t, "RobotScene", m.Name())
	require.True(t, m.Skinned())

	sk := m.Skeleton()
	require.Len(t, sk.Bones, 2)
	assert.Equal(t, "Hips", sk.Bones[0].Name)
	assert.Equal(t, int32(-1), sk.Bones[0].ParentIndex)
	assert.Equal(t, "Spine", sk.Bones[1].Name)
	assert.Equal(t, int32(0), sk.Bones[1].ParentIndex)
	assert.Equal(t, []int32{0}, sk.RootBoneIndices)
	assert.Equal(t, int32(1), sk.BoneNameToIndex["Spine"])

	// Inverse bind matrices follow their joints through the sort.
	assert.InDelta(t, -1, sk.Bones[0].InverseBindMatrix[13], 1e-6)
	assert.InDelta(t, -2, sk.Bones[1].InverseBindMatrix[13], 1e-6)
	assert.Equal(t, [3]float32{0, 1, 0}, sk.Bones[1].LocalTransform.Translation)

	// The armature node above the root joint becomes the root matrix.
	assert.InDelta(t, 1, sk.RootMatrix[13], 1e-6)

	palette := make([]mgl32.Mat4, len(sk.Bones))
	sk.JointMatrices(sk.RestPose(), palette)
	for i, jm := range palette {
		assert.True(t, jm.ApproxEqualThreshold(mgl32.Ident4(), 1e-5), "bone %d rest palette is identity", i)
	}
}

func TestLoadGLBMeshes(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	m, err := l.Load(writeRobot(t))
	require.NoError(t, err)

	meshes := m.Meshes()
	require.Len(t, meshes, 2)

	body := meshes[0]
	assert.True(t, body.Skinned)
	assert.Equal(t, []uint32{0, 1, 2}, body.Indices)
	assert.Equal(t, 0, body.MaterialIndex)
	// Skinned meshes ignore their node transform.
	assert.Equal(t, [3]float32{1, 0, 0}, body.Vertices[1].Position)
	// Skin slots (Spine, Hips) are remapped to sorted bones (1, 0).
	assert.Equal(t, [4]uint32{1, 0, 0, 0}, body.Vertices[0].BoneIndices)
	assert.Equal(t, [4]float32{0.5, 0.5, 0, 0}, body.Vertices[0].BoneWeights)
	assert.InDelta(t, 1, body.Vertices[2].BoneWeights[1], 1e-6)
	// Missing normals are generated from the counter-clockwise face.
	assert.InDelta(t, 1, body.Vertices[0].Normal[2], 1e-6)
	assert.InDelta(t, 1, mgl32.Vec3{body.Vertices[0].Tangent[0], body.Vertices[0].Tangent[1], body.Vertices[0].Tangent[2]}.Len(), 1e-5)

	prop := meshes[1]
	assert.False(t, prop.Skinned)
	assert.Equal(t, -1, prop.MaterialIndex)
	assert.Equal(t, [3]float32{0, 5, 0}, prop.Vertices[0].Position)
	assert.Equal(t, [3]float32{0, 5, 0}, prop.BoundingMin)
	assert.Equal(t, [3]float32{1, 6, 0}, prop.BoundingMax)
	assert.Zero(t, prop.Vertices[0].BoneWeights)
}

func TestLoadGLBAnimations(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	m, err := l.Load(writeRobot(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Wave", "Idle"}, m.AnimationNames())

	wave, ok := m.Animation("Wave")
	require.True(t, ok)
	assert.InDelta(t, 1.5, wave.Duration, 1e-6)
	require.Len(t, wave.Channels, 2, "the prop channel targets no joint")

	hips := wave.Channels[0]
	assert.Equal(t, int32(0), hips.BoneIndex)
	assert.True(t, hips.RotationStep)
	assert.False(t, hips.PositionStep)
	require.Len(t, hips.RotationKeys, 2)
	assert.InDelta(t, 0.7071068, hips.RotationKeys[1].Value[1], 1e-6)

	spine := wave.Channels[1]
	assert.Equal(t, int32(1), spine.BoneIndex)
	assert.False(t, spine.PositionStep)
	assert.Equal(t, []model.VectorKeyframe{{Time: 0, Value: [3]float32{0, 1, 0}}, {Time: 1.5, Value: [3]float32{0, 2, 0}}}, spine.PositionKeys)
}

func TestLoadGLBMaterials(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	m, err := l.Load(writeRobot(t))
	require.NoError(t, err)

	mat := m.MeshMaterial(0)
	assert.Equal(t, "Metal", mat.Name())
	assert.Equal(t, [4]float32{1, 0, 0, 1}, mat.BaseColor())
	assert.InDelta(t, 0.5, mat.Metallic(), 1e-6)
	assert.InDelta(t, 1, mat.Roughness(), 1e-6)
	assert.InDelta(t, 0.2, mat.Emissive()[1], 1e-6)
	assert.Equal(t, "lit", mat.PipelineKey())

	// The prop has no material and draws with the model default.
	assert.Equal(t, "RobotScene/default", m.MeshMaterial(1).Name())
}

func TestLoadCachesByPath(t *testing.T) {
	path := writeRobot(t)
	l := NewLoader(BackendTypeGLTF)

	first, err := l.Load(path)
	require.NoError(t, err)
	second, err := l.Load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, l.Get(path))
	assert.Len(t, l.Models(), 1)
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)

	_, err := l.Load("robot.fbx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.Load(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.glb")
	require.NoError(t, os.WriteFile(bad, []byte{0x67, 0x6C, 0x54, 0x46, 1, 0, 0, 0, 0, 0, 0, 0}, 0o644))
	_, err = l.Load(bad)
	assert.ErrorIs(t, err, errInvalidGLBVersion)
}

func TestLoadRejectsTruncatedChunk(t *testing.T) {
	var glb bytes.Buffer
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, glbHeader{Magic: glbMagic, Version: glbVersion, Length: 20}))
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, glbChunkHeader{Length: 0xC0000000, Type: glbChunkJSON}))

	_, _, err := splitGLB(glb.Bytes())
	assert.ErrorIs(t, err, errTruncatedGLBChunk)

	path := filepath.Join(t.TempDir(), "truncated.glb")
	require.NoError(t, os.WriteFile(path, glb.Bytes(), 0o644))
	_, err = NewLoader(BackendTypeGLTF).Load(path)
	assert.ErrorIs(t, err, errTruncatedGLBChunk)
}

// embeddedRobot encodes the robot document as glTF JSON with a data URI buffer, applying
// edit to the document first.
func embeddedRobot(t *testing.T, edit func(b *docBuilder)) []byte {
	t.Helper()
	doc, b := robotDocument()
	edit(b)
	finish(doc, b)
	doc["buffers"] = []any{map[string]any{
		"byteLength": b.bin.Len(),
		"uri":        "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(b.bin.Bytes()),
	}}
	js, err := json.Marshal(doc)
	require.NoError(t, err)
	return js
}

func TestLoadRejectsNegativeOffsets(t *testing.T) {
	tests := map[string]func(b *docBuilder){
		"bufferView byteOffset": func(b *docBuilder) { b.views[0]["byteOffset"] = -4 },
		"bufferView byteLength": func(b *docBuilder) { b.views[0]["byteLength"] = -4 },
		"accessor byteOffset":   func(b *docBuilder) { b.accessors[0]["byteOffset"] = -4 },
		"accessor count":        func(b *docBuilder) { b.accessors[0]["count"] = -1 },
	}
	for name, edit := range tests {
		t.Run(name, func(t *testing.T) {
			js := embeddedRobot(t, edit)
			assert.NotPanics(t, func() {
				_, err := NewLoader(BackendTypeGLTF).LoadReader(name, bytes.NewReader(js))
				assert.ErrorContains(t, err, "negative")
			})
		})
	}
}

func TestLoadAsync(t *testing.T) {
	path := writeRobot(t)
	l := NewLoader(BackendTypeGLTF, WithWorkers(2))

	f := l.LoadAsync(path)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := f.Wait(ctx)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Model)
	assert.Equal(t, path, f.Path())

	polled, ok := f.Poll()
	assert.True(t, ok)
	assert.Same(t, res.Model, polled.Model)

	// Cached paths resolve without touching the pool.
	again, ok := l.LoadAsync(path).Poll()
	assert.True(t, ok)
	assert.Same(t, res.Model, again.Model)
}

func TestLoadAsyncFailure(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := l.LoadAsync(filepath.Join(t.TempDir(), "missing.glb")).Wait(ctx)
	assert.Error(t, res.Err)
	assert.Nil(t, res.Model)
}

func TestFutureWaitHonorsContext(t *testing.T) {
	f := newFuture("slow.glb")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.Wait(ctx)
	assert.ErrorIs(t, res.Err, context.Canceled)

	_, ok := f.Poll()
	assert.False(t, ok)

	f.resolve(Result{Err: assert.AnError})
	f.resolve(Result{})
	got, ok := f.Poll()
	assert.True(t, ok)
	assert.Equal(t, assert.AnError, got.Err, "a future resolves once")
}

func TestLoadReaderGLTFWithDataURI(t *testing.T) {
	doc, b := robotDocument()
	finish(doc, b)
	doc["buffers"] = []any{map[string]any{
		"byteLength": b.bin.Len(),
		"uri":        "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(b.bin.Bytes()),
	}}
	js, err := json.Marshal(doc)
	require.NoError(t, err)

	l := NewLoader(BackendTypeGLTF, WithPipelineKey("custom"))
	m, err := l.LoadReader("embedded", bytes.NewReader(js))
	require.NoError(t, err)

	assert.Len(t, m.Meshes(), 2)
	assert.Len(t, m.Skeleton().Bones, 2)
	assert.Equal(t, "custom", m.MeshMaterial(0).PipelineKey())
	assert.Same(t, m, l.Get("embedded"))
}

func TestAppendFloatsNormalizes(t *testing.T) {
	u8 := appendFloats(nil, []byte{255, 0, 51}, gltfAccessor{ComponentType: gltfUnsignedByte, Normalized: true})
	assert.InDeltaSlice(t, []float32{1, 0, 0.2}, u8, 1e-6)

	i16 := appendFloats(nil, []byte{0x00, 0x80, 0xff, 0x7f}, gltfAccessor{ComponentType: gltfShort, Normalized: true})
	assert.InDeltaSlice(t, []float32{-1, 1}, i16, 1e-6)

	raw := appendFloats(nil, []byte{7}, gltfAccessor{ComponentType: gltfUnsignedByte})
	assert.Equal(t, []float32{7}, raw)
}

func TestDecomposeMatrix(t *testing.T) {
	q := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	m := common.TRS(mgl32.Vec3{1, 2, 3}, q, mgl32.Vec3{2, 2, 2})

	tr := decomposeMatrix(m)

	assert.InDeltaSlice(t, []float32{1, 2, 3}, tr.Translation[:], 1e-5)
	assert.InDeltaSlice(t, []float32{2, 2, 2}, tr.Scale[:], 1e-5)
	assert.True(t, tr.Matrix().ApproxEqualThreshold(m, 1e-4))
}

func TestDecodeDataURI(t *testing.T) {
	data, mime, err := decodeDataURI("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png")))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Equal(t, "image/png", mime)

	_, _, err = decodeDataURI("data:text/plain,hello")
	assert.ErrorIs(t, err, errInvalidDataURI)
}
