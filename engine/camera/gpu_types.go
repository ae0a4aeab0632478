package camera

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraBlock is the camera section of the frame uniform.
// Matches the view_proj and camera_pos fields of the WGSL Frame struct.
// Size: 80 bytes.
type GPUCameraBlock struct {
	ViewProj mgl32.Mat4 // offset  0: combined view-projection matrix (mat4x4<f32>)
	Position [4]float32 // offset 64: world-space eye position, w = 1
}

// Size returns the size of the GPUCameraBlock struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraBlock) Size() int {
	return int(unsafe.Sizeof(*g))
}
