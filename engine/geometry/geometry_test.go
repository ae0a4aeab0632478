package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxFacesWindOutward(t *testing.T) {
	m := Box(150, 1, 150, [4]float32{1, 1, 1, 1})

	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)
	assert.Equal(t, [3]float32{-75, -0.5, -75}, m.BoundingMin)
	assert.Equal(t, [3]float32{75, 0.5, 75}, m.BoundingMax)

	for tri := 0; tri < len(m.Indices); tri += 3 {
		a := mgl32.Vec3(m.Vertices[m.Indices[tri]].Position)
		b := mgl32.Vec3(m.Vertices[m.Indices[tri+1]].Position)
		c := mgl32.Vec3(m.Vertices[m.Indices[tri+2]].Position)
		n := mgl32.Vec3(m.Vertices[m.Indices[tri]].Normal)

		face := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, face.Dot(n), float32(0), "triangle %d is counter-clockwise from outside", tri/3)
		assert.Greater(t, a.Dot(n), float32(0), "triangle %d lies on the outward side", tri/3)
	}
}

func TestBoxTangentsArePerpendicularToNormals(t *testing.T) {
	m := Box(1, 2, 3, [4]float32{1, 1, 1, 1})
	for i, v := range m.Vertices {
		tan := mgl32.Vec3{v.Tangent[0], v.Tangent[1], v.Tangent[2]}
		assert.InDelta(t, 0, tan.Dot(v.Normal), 1e-6, "vertex %d", i)
		assert.Equal(t, float32(1), v.Tangent[3])
	}
}

func TestSphereVerticesLieOnRadius(t *testing.T) {
	m := Sphere(0.25, 24, 24, [4]float32{1, 1, 1, 1})

	assert.Len(t, m.Vertices, 25*25)
	// Pole rows contribute one triangle per segment, every other row two.
	assert.Len(t, m.Indices, (24*2+24*22*2)*3)
	for _, v := range m.Vertices {
		assert.InDelta(t, 0.25, mgl32.Vec3(v.Position).Len(), 1e-5)
		assert.Zero(t, v.BoneWeights)
	}
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices))
	}
}

func TestSphereClampsSegments(t *testing.T) {
	m := Sphere(1, 0, 0, [4]float32{})
	assert.Len(t, m.Vertices, 4*3)
}

func TestGridColorsCenterLines(t *testing.T) {
	center := [4]float32{0.25, 0.25, 0.25, 1}
	other := [4]float32{0.5, 0.5, 0.5, 1}
	m := Grid(150, 150, center, other)

	require.Len(t, m.Vertices, 151*4)
	assert.Len(t, m.Indices, len(m.Vertices))

	centerVerts := 0
	for _, v := range m.Vertices {
		assert.Zero(t, v.Position[1])
		if v.Color == center {
			centerVerts++
			assert.True(t, v.Position[0] == 0 || v.Position[2] == 0)
		}
	}
	assert.Equal(t, 4, centerVerts)
	assert.Equal(t, float32(-75), m.Vertices[0].Position[0])
}
