package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/material"
)

func TestCubeMesh(t *testing.T) {
	vertices, indices := CubeMesh(10)
	if len(vertices) != 8 || len(indices) != 36 {
		t.Fatalf("expected 8 vertices and 36 indices, got %d and %d", len(vertices), len(indices))
	}
	for i, v := range vertices {
		for axis, c := range v.Position {
			if c != 5 && c != -5 {
				t.Errorf("vertex %d axis %d: expected +-5, got %f", i, axis, c)
			}
		}
	}
	for _, idx := range indices {
		if idx >= 8 {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestNewCube(t *testing.T) {
	mat := material.NewMaterial()
	cube := NewCube("sdf_cube", 10, mat)
	if cube.IndexCount() != 36 {
		t.Errorf("expected 36 indices, got %d", cube.IndexCount())
	}
	if len(cube.VertexData()) != 8*12 {
		t.Errorf("expected %d vertex bytes, got %d", 8*12, len(cube.VertexData()))
	}
	if len(cube.IndexData()) != 36*4 {
		t.Errorf("expected %d index bytes, got %d", 36*4, len(cube.IndexData()))
	}
	if cube.Material() != mat {
		t.Error("cube does not hold its material")
	}
	if cube.MeshProvider().Label() != "sdf_cube_mesh" {
		t.Errorf("unexpected mesh provider label %q", cube.MeshProvider().Label())
	}
}
