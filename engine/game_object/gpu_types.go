package game_object

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUObjectUniform is the per-object uniform of the scene shader (group 1, binding 0).
// Matches the WGSL Object struct layout exactly.
// Size: 144 bytes.
type GPUObjectUniform struct {
	Model        mgl32.Mat4 // offset   0: world matrix
	NormalMatrix mgl32.Mat4 // offset  64: inverse transpose of the world matrix
	Flags        [4]uint32  // offset 128: x = skinned, y = joint count
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}
