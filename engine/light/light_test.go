package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackSumsAmbientAndTakesFirstPoint(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithIntensity(0.5)),
		NewLight(LightTypePoint, WithPosition([3]float32{5, 5, 5}), WithHexColor(0xff0000)),
		NewLight(LightTypeAmbient, WithColor([3]float32{0, 0, 1})),
		NewLight(LightTypePoint, WithPosition([3]float32{-1, 0, 0})),
		NewLight(LightTypeAmbient, WithEnabled(false)),
	}

	block := Pack(lights)
	assert.Equal(t, [4]float32{0.5, 0.5, 1.5, 0}, block.Ambient)
	assert.Equal(t, [4]float32{5, 5, 5, 1}, block.PointPosition)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, block.PointColor)
	assert.Equal(t, 48, block.Size())
}

func TestPackWithoutPointLight(t *testing.T) {
	block := Pack([]Light{NewLight(LightTypeAmbient), nil})
	assert.Equal(t, [4]float32{}, block.PointColor)
}

func TestSetters(t *testing.T) {
	l := NewLight(LightTypePoint)
	l.SetPosition([3]float32{1, 2, 3})
	l.SetIntensity(2)
	l.SetColor([3]float32{0.5, 0.5, 0.5})
	l.SetEnabled(false)

	assert.Equal(t, [3]float32{1, 2, 3}, l.Position())
	assert.Equal(t, float32(2), l.Intensity())
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, l.Color())
	assert.False(t, l.Enabled())
}
