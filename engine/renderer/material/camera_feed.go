package material

import (
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraFeed copies a camera's position into an SDF material once per frame.
type CameraFeed struct {
	material Material
}

// NewCameraFeed creates a CameraFeed targeting the given material.
//
// Parameters:
//   - m: the material whose uniform receives the camera position
//
// Returns:
//   - *CameraFeed: the feed
func NewCameraFeed(m Material) *CameraFeed {
	return &CameraFeed{material: m}
}

// Material returns the material this feed writes to.
//
// Returns:
//   - Material: the target material
func (f *CameraFeed) Material() Material {
	return f.material
}

// Push stores position in the material's uniform without transformation and returns the
// buffer write that uploads it. The caller batches the write with the rest of the frame's
// uploads.
//
// Parameters:
//   - position: the camera's world-space position this frame
//
// Returns:
//   - bind_group_provider.BufferWrite: the upload for the material's SdfParams binding
func (f *CameraFeed) Push(position mgl32.Vec3) bind_group_provider.BufferWrite {
	f.material.SetCameraPosition(position)
	params := f.material.Params()
	return bind_group_provider.BufferWrite{
		Provider: f.material.BindGroupProvider(),
		Binding:  f.material.ParamsBinding(),
		Offset:   0,
		Data:     params.Marshal(),
	}
}
