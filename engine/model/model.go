package model

import (
	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	material              material.Material
	meshProvider          bind_group_provider.BindGroupProvider
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for a GPU-ready mesh. It holds the raw vertex and index
// data awaiting upload, the BindGroupProvider that owns the GPU mesh buffers once uploaded,
// and the material the mesh is drawn with.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Material retrieves the material this mesh is drawn with.
	//
	// Returns:
	//   - material.Material: the render material
	Material() material.Material

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData retrieves the raw vertex bytes for upload.
	VertexData() []byte

	// IndexData retrieves the raw uint32 index bytes for upload.
	IndexData() []byte

	// IndexCount retrieves the number of indices drawn.
	IndexCount() int
}

var _ Model = &model{}

// NewModel creates a new Model configured with the provided options.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the new model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + "_mesh")
	}
	return m
}

// NewCube creates an axis-aligned cube mesh of the given edge length centred at the origin,
// drawn with the given material. The SDF shader treats the cube as its viewport volume.
//
// Parameters:
//   - name: the model identifier
//   - size: the cube's edge length
//   - mat: the material to draw the cube with
//
// Returns:
//   - Model: the cube model
func NewCube(name string, size float32, mat material.Material) Model {
	vertices, indices := CubeMesh(size)
	return NewModel(
		WithName(name),
		WithMaterial(mat),
		WithVertexData(common.SliceToBytes(vertices)),
		WithIndexData(common.SliceToBytes(indices)),
		WithIndexCount(len(indices)),
	)
}

// CubeMesh returns 8 vertices and 36 indices forming 12 triangles (2 per face).
// All outward faces wind counter-clockwise.
//
// Parameters:
//   - size: the cube's edge length
//
// Returns:
//   - []GPUVertex: the cube corners
//   - []uint32: the triangle indices
func CubeMesh(size float32) ([]GPUVertex, []uint32) {
	h := size / 2
	vertices := []GPUVertex{
		{Position: [3]float32{-h, -h, -h}}, {Position: [3]float32{h, -h, -h}},
		{Position: [3]float32{h, h, -h}}, {Position: [3]float32{-h, h, -h}},
		{Position: [3]float32{-h, -h, h}}, {Position: [3]float32{h, -h, h}},
		{Position: [3]float32{h, h, h}}, {Position: [3]float32{-h, h, h}},
	}
	indices := []uint32{
		4, 5, 6, 4, 6, 7, // Front  (+Z)
		1, 0, 3, 1, 3, 2, // Back   (-Z)
		5, 1, 2, 5, 2, 6, // Right  (+X)
		0, 4, 7, 0, 7, 3, // Left   (-X)
		3, 7, 6, 3, 6, 2, // Top    (+Y)
		0, 1, 5, 0, 5, 4, // Bottom (-Y)
	}
	return vertices, indices
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}
