package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUSDFParamsSource is the canonical WGSL definition of the SdfParams struct.
// Matches GPUSDFParams layout exactly (16 bytes).
//
//go:embed assets/sdf_params.wgsl
var GPUSDFParamsSource string

// GPUSDFParams is the GPU-aligned uniform for the SDF fragment shader.
// Matches the WGSL SdfParams struct layout exactly (see GPUSDFParamsSource).
// Size: 16 bytes (vec3<f32> rounded up to its 16-byte alignment).
type GPUSDFParams struct {
	CameraPosition mgl32.Vec3 // offset  0: world-space camera position (vec3<f32>)
	_pad           float32    // offset 12: padding to 16 bytes
}

// Size returns the size of the GPUSDFParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUSDFParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSDFParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUSDFParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.CameraPosition[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.CameraPosition[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.CameraPosition[2]))
	return buf
}
