package shader

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const shippedShaders = "../../../examples/assets/shaders"

const vertexSource = `//@oxy:include camera
//@oxy:include vertex
//@oxy:group 0 0 storage_uniform camera camera

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_position: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.world_position = in.position;
    out.clip_position = camera.view_proj * vec4<f32>(in.position, 1.0);
    return out;
}
`

const fragmentSource = `//@oxy:include sdf_params
//@oxy:group 1 1 storage_uniform sdf sdf_params

/* block comment with @group(9) @binding(9) var<uniform> ghost: f32; */
@fragment
fn fs_main(@location(0) world_position: vec3<f32>) -> @location(0) vec4<f32> {
    // @group(8) @binding(8) var<uniform> ignored: f32;
    return vec4<f32>(normalize(world_position - sdf.camera_position), 1.0);
}
`

func TestParseVertexShader(t *testing.T) {
	s, err := ParseShader("sdf_vert", ShaderTypeVertex, vertexSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.EntryPoint() != "vs_main" {
		t.Errorf("expected entry point vs_main, got %q", s.EntryPoint())
	}
	if !strings.Contains(s.Source(), "@group(0) @binding(0) var<uniform> camera: CameraUniform;") {
		t.Errorf("expected generated camera declaration, got:\n%s", s.Source())
	}

	desc := s.BindGroupLayoutDescriptor(0)
	if len(desc.Entries) != 1 {
		t.Fatalf("expected 1 entry in group 0, got %d", len(desc.Entries))
	}
	e := desc.Entries[0]
	if e.Buffer.Type != wgpu.BufferBindingTypeUniform || e.Buffer.MinBindingSize != 80 {
		t.Errorf("unexpected camera entry: type=%v size=%d", e.Buffer.Type, e.Buffer.MinBindingSize)
	}
	if e.Visibility != wgpu.ShaderStageVertex {
		t.Errorf("expected vertex visibility, got %v", e.Visibility)
	}

	layouts := s.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 vertex layout, got %d", len(layouts))
	}
	l := layouts[0][0]
	if l.ArrayStride != 12 || len(l.Attributes) != 1 || l.Attributes[0].Format != wgpu.VertexFormatFloat32x3 {
		t.Errorf("unexpected vertex layout %+v", l)
	}
	if len(s.Declarations()) != 1 {
		t.Errorf("expected 1 declaration, got %d", len(s.Declarations()))
	}
}

func TestParseFragmentShader(t *testing.T) {
	s, err := ParseShader("sdf_frag", ShaderTypeFragment, fragmentSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.EntryPoint() != "fs_main" {
		t.Errorf("expected entry point fs_main, got %q", s.EntryPoint())
	}
	if len(s.BindGroupLayoutDescriptors()) != 1 {
		t.Fatalf("commented declarations must be ignored, got groups %v", s.BindGroupLayoutDescriptors())
	}
	group, binding, ok := s.BindGroupFromVarName("sdf")
	if !ok || group != 1 || binding != 1 {
		t.Fatalf("expected sdf at 1/1, got %d/%d ok=%v", group, binding, ok)
	}
	e := s.BindGroupLayoutDescriptor(1).Entries[0]
	if e.Binding != 1 || e.Buffer.MinBindingSize != 16 || e.Visibility != wgpu.ShaderStageFragment {
		t.Errorf("unexpected sdf entry %+v", e)
	}
	if len(s.VertexLayouts()) != 0 {
		t.Error("fragment shaders must not parse vertex layouts")
	}
	if s.BindGroupVarName(1, 1) != "sdf" || s.BindGroupVarName(3, 0) != "" {
		t.Error("unexpected variable name lookup")
	}
}

func TestParseShaderErrors(t *testing.T) {
	tests := []struct {
		name       string
		shaderType ShaderType
		source     string
		wantErr    string
	}{
		{"unknown annotation", ShaderTypeFragment, "//@oxy:frobnicate x\n@fragment fn f() {}", "unknown @oxy annotation"},
		{"unknown struct", ShaderTypeFragment, "//@oxy:include lights\n@fragment fn f() {}", "unknown struct type"},
		{"bad group number", ShaderTypeFragment, "//@oxy:group x 0 storage_uniform a camera\n@fragment fn f() {}", "invalid group number"},
		{"missing entry point", ShaderTypeVertex, "@fragment fn f() {}", "entry point"},
		{"texture binding", ShaderTypeFragment, "@group(0) @binding(0) var tex: texture_2d<f32>;\n@fragment fn f() {}", "unsupported resource"},
		{"duplicate binding", ShaderTypeFragment, "@group(0) @binding(0) var<uniform> a: f32;\n@group(0) @binding(0) var<uniform> b: f32;\n@fragment fn f() {}", "declared twice"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseShader("bad", tc.shaderType, tc.source)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadShippedShaders(t *testing.T) {
	tests := []struct {
		file       string
		shaderType ShaderType
		group      int
		size       uint64
	}{
		{"sdf-vert.wgsl", ShaderTypeVertex, 0, 80},
		{"sdf-frag.wgsl", ShaderTypeFragment, 1, 16},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join(shippedShaders, tc.file)
			s, err := LoadShader(tc.file, tc.shaderType, path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Path() != path {
				t.Errorf("expected path %q, got %q", path, s.Path())
			}
			entries := s.BindGroupLayoutDescriptor(tc.group).Entries
			if len(entries) != 1 || entries[0].Buffer.MinBindingSize != tc.size {
				t.Errorf("unexpected group %d entries %+v", tc.group, entries)
			}
		})
	}
}

func TestLoadShaderMissingFile(t *testing.T) {
	if _, err := LoadShader("missing", ShaderTypeFragment, filepath.Join(t.TempDir(), "nope.wgsl")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestComputeStructSizes(t *testing.T) {
	structs := parseStructBlocks(`
struct Outer { inner: Inner, tail: f32, };
struct Inner { a: vec3<f32>, b: array<vec4<f32>, 2>, };
`)
	sizes := computeStructSizes(structs)
	if got := sizes["Inner"].size; got != 48 {
		t.Errorf("expected Inner size 48, got %d", got)
	}
	if got := sizes["Outer"].size; got != 64 {
		t.Errorf("expected Outer size 64, got %d", got)
	}
}
