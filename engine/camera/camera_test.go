package camera

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraViewMatrixFollowsRig(t *testing.T) {
	cam := NewCamera(WithAspect(testViewport.Aspect()))

	eye := cam.ViewMatrix().Mul4x1(cam.Rig().Position().Vec4(1))
	if !vec4Near(eye, mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("expected camera position at view origin, got %v", eye)
	}
	focus := cam.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !vec4Near(focus, mgl32.Vec4{0, 0, -10, 1}) {
		t.Errorf("expected focus 10 units down -Z in view space, got %v", focus)
	}

	if _, err := cam.Update(FrameInput{OrbitDelta: mgl32.Vec2{200, 0}}, testViewport); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eye = cam.ViewMatrix().Mul4x1(cam.Rig().Position().Vec4(1))
	if !vec4Near(eye, mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("expected view matrix to track orbit, got %v", eye)
	}
}

func TestCameraProjectionDepthRange(t *testing.T) {
	cam := NewCamera(WithNear(0.5), WithFar(50))
	proj := cam.ProjectionMatrix()

	tests := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", -0.5, 0},
		{"far plane", -50, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip := proj.Mul4x1(mgl32.Vec4{0, 0, tc.z, 1})
			if got := clip.Z() / clip.W(); !floatNear(got, tc.depth) {
				t.Errorf("expected depth %f, got %f", tc.depth, got)
			}
		})
	}

	id := proj.Mul4(cam.InverseProjectionMatrix())
	if !matNear(id, mgl32.Ident4()) {
		t.Errorf("expected inverse projection to invert, got %v", id)
	}
}

func TestCameraPassesPerspectiveToRig(t *testing.T) {
	fov := float32(math.Pi / 3)
	cam := NewCamera(WithFov(fov), WithAspect(2))
	p, ok := cam.Projection().(Perspective)
	if !ok || p.Fov != fov || p.AspectRatio != 2 {
		t.Fatalf("unexpected projection %#v", cam.Projection())
	}

	if _, err := cam.Update(FrameInput{PanDelta: mgl32.Vec2{80, 0}}, testViewport); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := -80 * fov * 2 / testViewport.Width * 10
	if got := cam.Rig().Focus().X(); !floatNear(got, want) {
		t.Errorf("expected focus x %f, got %f", want, got)
	}
}

func TestCameraUpdateErrorKeepsMatrices(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewProjectionMatrix()
	_, err := cam.Update(FrameInput{OrbitDelta: mgl32.Vec2{1, 1}}, Viewport{})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if cam.ViewProjectionMatrix() != before {
		t.Error("matrices changed on a failed update")
	}
}

func TestCameraUniformMarshal(t *testing.T) {
	rig := NewRig(mgl32.Vec3{1, 2, 3})
	cam := NewCamera(WithRig(rig))
	u := cam.Uniform()
	if u.Size() != 80 {
		t.Fatalf("expected 80 byte uniform, got %d", u.Size())
	}
	if u.ViewProj != cam.ViewProjectionMatrix() {
		t.Error("uniform view-projection does not match camera")
	}

	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("expected 80 bytes, got %d", len(buf))
	}
	pos := rig.Position()
	for i := range 3 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+i*4:]))
		if got != pos[i] {
			t.Errorf("component %d: expected %f, got %f", i, pos[i], got)
		}
	}
	if binary.LittleEndian.Uint32(buf[76:]) != 0 {
		t.Error("expected zero padding")
	}
}
