package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Perspective creates a right-handed perspective projection matrix mapping depth to
// the WebGPU clip range [0, 1]. mgl32.Perspective targets the OpenGL [-1, 1] range
// and cannot be used directly with a WebGPU depth buffer.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ViewMatrix builds the world-to-camera matrix for a camera placed at position with
// the given rotation. The camera looks down its local -Z axis with +Y up.
//
// Parameters:
//   - position: camera position in world space
//   - rotation: camera orientation
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func ViewMatrix(position mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4 {
	inv := rotation.Normalize().Conjugate().Mat4()
	return inv.Mul4(mgl32.Translate3D(-position.X(), -position.Y(), -position.Z()))
}

// Float32Finite reports whether v is neither NaN nor an infinity.
//
// Parameters:
//   - v: the value to check
//
// Returns:
//   - bool: true if v is a finite number
func Float32Finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
