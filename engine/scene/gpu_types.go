package scene

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-robot/engine/camera"
	"github.com/Carmen-Shannon/oxy-robot/engine/light"
)

// GPUFrameUniform is the per-frame uniform of the scene shader (group 0, binding 0).
// Matches the WGSL Frame struct layout exactly.
// Size: 160 bytes.
type GPUFrameUniform struct {
	Camera   camera.GPUCameraBlock // offset   0: view_proj, camera_pos
	FogColor [4]float32            // offset  80: linear fog color
	FogRange [4]float32            // offset  96: x = near, y = far
	Lights   light.GPULightBlock   // offset 112: ambient, point_pos, point_color
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}
