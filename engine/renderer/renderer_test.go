package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 1, Visibility: wgpu.ShaderStageFragment}}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(merged))
	}
	if got := merged[0].Entries[0].Visibility; got != wgpu.ShaderStageVertex {
		t.Errorf("group 0: expected vertex visibility, got %v", got)
	}
	if got := merged[1].Entries[0].Binding; got != 1 {
		t.Errorf("group 1: expected binding 1, got %d", got)
	}

	shared := merged[2].Entries
	if len(shared) != 2 || shared[0].Binding != 0 || shared[1].Binding != 1 {
		t.Fatalf("group 2: expected sorted bindings 0 and 1, got %+v", shared)
	}
	if shared[0].Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("group 2 binding 0: expected both stages, got %v", shared[0].Visibility)
	}
	if shared[1].Visibility != wgpu.ShaderStageFragment {
		t.Errorf("group 2 binding 1: expected fragment only, got %v", shared[1].Visibility)
	}
}
