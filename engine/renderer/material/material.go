package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultParamsBinding is the binding index of the SdfParams uniform within the material's bind group.
const DefaultParamsBinding = 1

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name              string
	params            GPUSDFParams
	paramsBinding     int
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for the signed-distance-field surface material.
// The material owns the SdfParams uniform read by the SDF fragment stage. Its only
// per-frame input is the camera position, supplied by a CameraFeed.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// CameraPosition retrieves the camera position currently held in the uniform.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space camera position
	CameraPosition() mgl32.Vec3

	// SetCameraPosition stores the camera position in the uniform, component for component.
	//
	// Parameters:
	//   - position: the world-space camera position
	SetCameraPosition(position mgl32.Vec3)

	// Params retrieves a copy of the uniform block.
	//
	// Returns:
	//   - GPUSDFParams: the current uniform values
	Params() GPUSDFParams

	// ParamsBinding retrieves the binding index of the uniform within the material's bind group.
	//
	// Returns:
	//   - int: the binding index
	ParamsBinding() int

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The material gets its own bind group provider labelled after its name unless one is supplied.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:            &sync.Mutex{},
		name:          "sdf",
		paramsBinding: DefaultParamsBinding,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider("material_" + m.name)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) CameraPosition() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.CameraPosition
}

func (m *material) SetCameraPosition(position mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.CameraPosition = position
}

func (m *material) Params() GPUSDFParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}

func (m *material) ParamsBinding() int {
	return m.paramsBinding
}

func (m *material) PipelineKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pipelineKey = key
}
