package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraFeedPush(t *testing.T) {
	tests := []struct {
		name     string
		position mgl32.Vec3
	}{
		{"default placement", mgl32.Vec3{0, 0, 10}},
		{"negative components", mgl32.Vec3{-3.25, 7.5, -0.125}},
		{"tiny radius", mgl32.Vec3{0, 0, 0.05}},
		{"large values", mgl32.Vec3{1e6, -1e-6, 42}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMaterial(WithName("sdf_test"))
			feed := NewCameraFeed(m)
			w := feed.Push(tc.position)

			if m.CameraPosition() != tc.position {
				t.Errorf("expected uniform %v, got %v", tc.position, m.CameraPosition())
			}
			if w.Provider != m.BindGroupProvider() {
				t.Error("write does not target the material's provider")
			}
			if w.Binding != DefaultParamsBinding || w.Offset != 0 {
				t.Errorf("unexpected binding/offset %d/%d", w.Binding, w.Offset)
			}
			if len(w.Data) != 16 {
				t.Fatalf("expected 16 bytes, got %d", len(w.Data))
			}
			for i := range 3 {
				got := math.Float32frombits(binary.LittleEndian.Uint32(w.Data[i*4:]))
				if got != tc.position[i] {
					t.Errorf("component %d: expected %v, got %v", i, tc.position[i], got)
				}
			}
		})
	}
}

func TestCameraFeedLastPushWins(t *testing.T) {
	m := NewMaterial(WithCameraPosition(mgl32.Vec3{9, 9, 9}), WithParamsBinding(3))
	feed := NewCameraFeed(m)
	feed.Push(mgl32.Vec3{1, 2, 3})
	w := feed.Push(mgl32.Vec3{4, 5, 6})
	if m.CameraPosition() != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("expected last pushed position, got %v", m.CameraPosition())
	}
	if w.Binding != 3 {
		t.Errorf("expected binding 3, got %d", w.Binding)
	}
}

func TestMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithPipelineKey("sdf_cube"))
	if m.Name() != "sdf" || m.PipelineKey() != "sdf_cube" {
		t.Errorf("unexpected name/key %q/%q", m.Name(), m.PipelineKey())
	}
	if m.BindGroupProvider().Label() != "material_sdf" {
		t.Errorf("unexpected provider label %q", m.BindGroupProvider().Label())
	}
	p := m.Params()
	if p.Size() != 16 {
		t.Errorf("expected 16 byte params, got %d", p.Size())
	}
}
