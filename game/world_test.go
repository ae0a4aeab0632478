package game

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/engine/light"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldCamera(t *testing.T) {
	w := newWorld(WithAspect(2))

	assert.InDelta(t, mgl32.DegToRad(75), w.Camera.Fov(), 1e-6)
	assert.Equal(t, float32(2), w.Camera.Aspect())
	assert.Equal(t, float32(0.1), w.Camera.Near())
	assert.Equal(t, float32(1000), w.Camera.Far())
	for i, want := range []float32{10, 10, 30} {
		assert.InDelta(t, want, w.Camera.Position()[i], 1e-3)
	}
	assertVec3(t, mgl32.Vec3{}, w.Camera.Target())
	assert.Same(t, w.Orbit, w.Camera.Controller())
}

func TestWorldLights(t *testing.T) {
	w := newWorld()

	require.Len(t, w.Lights, 2)
	assert.Equal(t, light.LightTypeAmbient, w.Lights[0].Type())
	assert.Equal(t, light.LightTypePoint, w.Lights[1].Type())
	assert.Equal(t, [3]float32{5, 5, 5}, w.Lights[1].Position())
	assert.Equal(t, [3]float32{1, 1, 1}, w.Lights[1].Color())
}

func TestWorldGround(t *testing.T) {
	w := newWorld()
	ground := w.Ground.Model()

	mesh := ground.Meshes()[0]
	minX, maxX := mesh.Vertices[0].Position[0], mesh.Vertices[0].Position[0]
	for _, v := range mesh.Vertices {
		minX, maxX = min(minX, v.Position[0]), max(maxX, v.Position[0])
	}
	assert.Equal(t, float32(150), maxX-minX)

	mat := ground.MeshMaterial(0)
	assert.Equal(t, renderer.PipelineLit, mat.PipelineKey())
	color := mat.BaseColor()
	assert.InDelta(t, 0x31/255.0, color[0], 1e-6)
	assert.InDelta(t, 0x31/255.0, color[1], 1e-6)
	assert.InDelta(t, 0x8a/255.0, color[2], 1e-6)
	assert.Equal(t, float32(1), color[3])
	assert.Nil(t, mat.NormalTexture())

	w = newWorld(WithGroundNormalMap("normal.jpg"))
	tex := w.Ground.Model().MeshMaterial(0).NormalTexture()
	require.NotNil(t, tex)
	assert.Equal(t, "normal.jpg", tex.Path)
}

func TestWorldGrid(t *testing.T) {
	mat := newWorld().Grid.Model().MeshMaterial(0)

	assert.Equal(t, renderer.PipelineLines, mat.PipelineKey())
	assert.True(t, mat.Unlit())
}

func TestWorldStars(t *testing.T) {
	w := newWorld(WithSeed(7))
	require.Len(t, w.Stars, 200)

	shared := w.Stars[0].Model()
	for _, star := range w.Stars {
		assert.Same(t, shared, star.Model())
		for _, c := range star.Position() {
			assert.GreaterOrEqual(t, c, float32(-50))
			assert.LessOrEqual(t, c, float32(50))
		}
	}

	again := newWorld(WithSeed(7))
	other := newWorld(WithSeed(8))
	assert.Equal(t, w.Stars[0].Position(), again.Stars[0].Position())
	assert.NotEqual(t, w.Stars[0].Position(), other.Stars[0].Position())

	assert.Empty(t, newWorld(WithStars(0)).Stars)
	assert.Len(t, newWorld(WithStars(3)).Objects(), 5)
}
