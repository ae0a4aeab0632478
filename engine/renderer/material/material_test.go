package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/stretchr/testify/assert"
)

func TestUniformPacksFlags(t *testing.T) {
	m := NewMaterial(
		WithHexColor(0xffffff),
		WithMetallic(0.25),
		WithRoughness(0.5),
		WithUnlit(true),
		WithNormalPixels(common.FlatNormalTexture()),
	)

	u := m.Uniform()
	assert.Equal(t, [4]float32{1, 1, 1, 1}, u.BaseColor)
	assert.Equal(t, [4]float32{0.25, 0.5, 1, 1}, u.Params)
	assert.Equal(t, 48, u.Size())
}

func TestFromImportedKeepsFactors(t *testing.T) {
	m := FromImported(common.ImportedMaterial{
		Name:      "Main",
		BaseColor: [4]float32{0.5, 0.4, 0.3, 1},
		Metallic:  1,
		Roughness: 0.2,
		Emissive:  [3]float32{0.1, 0, 0},
	}, WithPipelineKey("lit"))

	assert.Equal(t, "Main", m.Name())
	assert.Equal(t, [4]float32{0.5, 0.4, 0.3, 1}, m.BaseColor())
	assert.Equal(t, float32(1), m.Metallic())
	assert.Equal(t, "lit", m.PipelineKey())
	assert.False(t, m.HasNormalMap())
	assert.Equal(t, float32(0.1), m.Uniform().Emissive[0])
}
