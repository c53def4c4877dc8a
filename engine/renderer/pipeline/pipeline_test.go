package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const testVertex = `//@oxy:include vertex
@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position, 1.0);
}
`

const testFragment = `@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

const testFragmentReloaded = `@fragment
fn fs_reloaded() -> @location(0) vec4<f32> {
    return vec4<f32>(0.5);
}
`

func mustParse(t *testing.T, key string, shaderType shader.ShaderType, src string) shader.Shader {
	t.Helper()
	s, err := shader.ParseShader(key, shaderType, src)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", key, err)
	}
	return s
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("sdf")
	if p.PipelineKey() != "sdf" {
		t.Errorf("expected key sdf, got %q", p.PipelineKey())
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("depth test and write must default to enabled")
	}
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("unexpected primitive defaults: cull=%v topology=%v front=%v", p.CullMode(), p.Topology(), p.FrontFace())
	}
	if p.BlendState() != nil {
		t.Error("blending must default to disabled")
	}
	if p.RenderPipeline() != nil {
		t.Error("unregistered pipeline must not hold a GPU pipeline")
	}
}

func TestWithShaderReplacesOneStage(t *testing.T) {
	vs := mustParse(t, "vs", shader.ShaderTypeVertex, testVertex)
	fs := mustParse(t, "fs", shader.ShaderTypeFragment, testFragment)
	p := NewPipeline("sdf",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithCullMode(wgpu.CullModeFront),
	)

	reloaded := mustParse(t, "fs", shader.ShaderTypeFragment, testFragmentReloaded)
	next := p.WithShader(reloaded)

	if next.PipelineKey() != p.PipelineKey() {
		t.Errorf("replacement must keep the key, got %q", next.PipelineKey())
	}
	if next.Shader(shader.ShaderTypeVertex) != vs {
		t.Error("replacement must keep the vertex shader")
	}
	if next.Shader(shader.ShaderTypeFragment).EntryPoint() != "fs_reloaded" {
		t.Errorf("expected reloaded fragment entry point, got %q", next.Shader(shader.ShaderTypeFragment).EntryPoint())
	}
	if next.CullMode() != wgpu.CullModeFront {
		t.Error("replacement must keep pipeline settings")
	}
	if p.Shader(shader.ShaderTypeFragment) != fs {
		t.Error("the original pipeline must not change")
	}
}
