package light

import "unsafe"

// GPULightBlock is the lighting section of the frame uniform.
// Matches the ambient, point_pos and point_color fields of the WGSL Frame struct.
// Size: 48 bytes.
type GPULightBlock struct {
	Ambient       [4]float32 // offset  0: summed ambient rgb * intensity
	PointPosition [4]float32 // offset 16: xyz position, w unused
	PointColor    [4]float32 // offset 32: rgb * intensity of the point light, zero when none
}

// Size returns the size of the GPULightBlock struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULightBlock) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Pack folds a light list into the frame lighting block.
// Ambient lights add up; the first enabled point light is used and later ones are ignored.
//
// Parameters:
//   - lights: the scene lights, in insertion order
//
// Returns:
//   - GPULightBlock: the packed block
func Pack(lights []Light) GPULightBlock {
	var block GPULightBlock
	havePoint := false
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		c, i := l.Color(), l.Intensity()
		switch l.Type() {
		case LightTypeAmbient:
			block.Ambient[0] += c[0] * i
			block.Ambient[1] += c[1] * i
			block.Ambient[2] += c[2] * i
		case LightTypePoint:
			if havePoint {
				continue
			}
			havePoint = true
			p := l.Position()
			block.PointPosition = [4]float32{p[0], p[1], p[2], 1}
			block.PointColor = [4]float32{c[0] * i, c[1] * i, c[2] * i, 1}
		}
	}
	return block
}
