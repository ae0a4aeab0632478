package material

import (
	"unsafe"
)

// GPUMaterialUniform is the GPU-aligned material uniform (group 2, binding 0).
// Matches the WGSL Material struct in the scene shader.
// Size: 48 bytes.
type GPUMaterialUniform struct {
	BaseColor [4]float32 // offset  0: RGBA albedo
	Emissive  [4]float32 // offset 16: rgb emissive, w unused
	Params    [4]float32 // offset 32: metallic, roughness, unlit flag, normal map flag
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}
