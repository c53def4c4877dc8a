package material

import (
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithCameraPosition is an option builder that seeds the uniform's camera position.
//
// Parameters:
//   - position: the initial world-space camera position
//
// Returns:
//   - MaterialBuilderOption: a function that applies the camera position to a material
func WithCameraPosition(position mgl32.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.params.CameraPosition = position
	}
}

// WithParamsBinding is an option builder that sets the binding index of the SdfParams uniform.
//
// Parameters:
//   - binding: the binding index declared by the fragment shader
//
// Returns:
//   - MaterialBuilderOption: a function that applies the binding to a material
func WithParamsBinding(binding int) MaterialBuilderOption {
	return func(m *material) {
		m.paramsBinding = binding
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key of the material.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider is an option builder that sets the bind group provider of the material.
//
// Parameters:
//   - provider: the bind group provider
//
// Returns:
//   - MaterialBuilderOption: a function that applies the provider to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
