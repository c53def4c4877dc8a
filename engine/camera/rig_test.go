package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

var testViewport = Viewport{Width: 800, Height: 600}

// Comparisons use absolute error. mgl32's ApproxEqual helpers are relative and shrink the
// threshold to eps*eps when the expected value is 0, which float32 rounding exceeds.
func floatNear(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func vecNear(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < eps
}

func vec4Near(a, b mgl32.Vec4) bool {
	return a.Sub(b).Len() < eps
}

func matNear(a, b mgl32.Mat4) bool {
	for i := range a {
		if !floatNear(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestNearHelpersTolerateRoundingAtZero(t *testing.T) {
	tests := []struct {
		name string
		got  mgl32.Vec3
		want mgl32.Vec3
		near bool
	}{
		{"rounding at zero component", mgl32.Vec3{0, 5.0000005, -4.7683716e-07}, mgl32.Vec3{0, 5, 0}, true},
		{"rounding off axis", mgl32.Vec3{-7.0710683, 8.7422774e-07, -7.071068}, mgl32.Vec3{-7.071068, 0, -7.071068}, true},
		{"real difference", mgl32.Vec3{0, 5, 0.01}, mgl32.Vec3{0, 5, 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := vecNear(tc.got, tc.want); got != tc.near {
				t.Errorf("vecNear(%v, %v) = %v, expected %v", tc.got, tc.want, got, tc.near)
			}
		})
	}
	if !floatNear(2.3841858e-07, 0) {
		t.Error("expected float rounding at zero to compare near")
	}
}

func TestNewRigFromPlacement(t *testing.T) {
	tests := []struct {
		name      string
		placement mgl32.Vec3
		radius    float32
	}{
		{"default", DefaultPlacement, 10},
		{"off-axis", mgl32.Vec3{3, 4, 0}, 5},
		{"above focus", mgl32.Vec3{0, 5, 0}, 5},
		{"diagonal", mgl32.Vec3{2, -3, 6}, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRig(tc.placement)
			if !floatNear(r.Radius(), tc.radius) {
				t.Errorf("expected radius %f, got %f", tc.radius, r.Radius())
			}
			if r.Focus() != (mgl32.Vec3{}) {
				t.Errorf("expected focus at origin, got %v", r.Focus())
			}
			if !vecNear(r.Position(), tc.placement) {
				t.Errorf("expected position %v, got %v", tc.placement, r.Position())
			}
			forward := r.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
			toOrigin := tc.placement.Mul(-1).Normalize()
			if !vecNear(forward, toOrigin) {
				t.Errorf("expected camera to look at origin, forward=%v", forward)
			}
			if r.UpsideDown() {
				t.Error("expected upside-down flag to start false")
			}
		})
	}
}

func TestNewRigClampsDegeneratePlacement(t *testing.T) {
	r := NewRig(mgl32.Vec3{})
	if r.Radius() != DefaultMinRadius {
		t.Errorf("expected radius clamped to %f, got %f", DefaultMinRadius, r.Radius())
	}
	if r.Orientation() != mgl32.QuatIdent() {
		t.Errorf("expected identity orientation, got %v", r.Orientation())
	}
}

func TestZoom(t *testing.T) {
	tests := []struct {
		name      string
		placement mgl32.Vec3
		scroll    float32
		radius    float32
	}{
		{"scroll in one notch", DefaultPlacement, 1, 8},
		{"scroll out one notch", DefaultPlacement, -1, 12},
		{"fractional scroll", DefaultPlacement, 0.5, 9},
		{"clamped at floor", mgl32.Vec3{0, 0, 1}, 10, DefaultMinRadius},
		{"exactly to zero clamps", mgl32.Vec3{0, 0, 1}, 5, DefaultMinRadius},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRig(tc.placement)
			before := r.Orientation()
			got, err := r.Update(FrameInput{Scroll: tc.scroll}, testViewport, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !floatNear(r.Radius(), tc.radius) {
				t.Errorf("expected radius %f, got %f", tc.radius, r.Radius())
			}
			if r.Orientation() != before || r.Focus() != (mgl32.Vec3{}) {
				t.Error("zoom must only change the radius")
			}
			want := mgl32.Vec3{0, 0, tc.radius}
			if !vecNear(got.Position, want) {
				t.Errorf("expected position %v, got %v", want, got.Position)
			}
		})
	}
}

func TestZoomRateOption(t *testing.T) {
	r := NewRig(DefaultPlacement, WithZoomRate(0.5), WithMinRadius(2))
	if _, err := r.Update(FrameInput{Scroll: 1}, testViewport, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Radius() != 5 {
		t.Errorf("expected radius 5, got %f", r.Radius())
	}
	if _, err := r.Update(FrameInput{Scroll: 4}, testViewport, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Radius() != 2 {
		t.Errorf("expected radius clamped to 2, got %f", r.Radius())
	}
}

func TestOrbitYawFromViewportWidth(t *testing.T) {
	r := NewRig(DefaultPlacement)
	got, err := r.Update(FrameInput{OrbitDelta: mgl32.Vec2{100, 0}}, testViewport, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100px of an 800px viewport is an eighth of a turn.
	angle := float64(100) / 800 * 2 * math.Pi
	want := mgl32.Vec3{-10 * float32(math.Sin(angle)), 0, 10 * float32(math.Cos(angle))}
	if !vecNear(got.Position, want) {
		t.Errorf("expected position %v, got %v", want, got.Position)
	}
	if r.Radius() != 10 || r.Focus() != (mgl32.Vec3{}) {
		t.Error("orbit must only change the orientation")
	}
}

func TestOrbitPitchFromViewportHeight(t *testing.T) {
	r := NewRig(DefaultPlacement)
	// 150px of a 600px viewport is a quarter of pi.
	got, err := r.Update(FrameInput{OrbitDelta: mgl32.Vec2{0, 150}}, testViewport, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	angle := math.Pi / 4
	want := mgl32.Vec3{0, 10 * float32(math.Sin(angle)), 10 * float32(math.Cos(angle))}
	if !vecNear(got.Position, want) {
		t.Errorf("expected position %v, got %v", want, got.Position)
	}
}

func TestOrbitMirroredWhileUpsideDown(t *testing.T) {
	flipped := mgl32.QuatRotate(math.Pi, axisX)
	r := NewRig(DefaultPlacement, WithOrientation(flipped))

	// The flag only latches on an orbit edge.
	if _, err := r.Update(FrameInput{OrbitStarted: true}, testViewport, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.UpsideDown() {
		t.Fatal("expected upside-down flag after orbit start")
	}

	got, err := r.Update(FrameInput{OrbitDelta: mgl32.Vec2{100, 0}}, testViewport, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := float32(10 * math.Sin(math.Pi/4))
	want := mgl32.Vec3{-s, 0, -s}
	if !vecNear(got.Position, want) {
		t.Errorf("expected mirrored yaw to place camera at %v, got %v", want, got.Position)
	}
}

func TestUpsideDownOnlyChangesOnOrbitEdges(t *testing.T) {
	r := NewRig(DefaultPlacement)

	// Pitch past the pole without an edge; the flag must not follow the orientation.
	if _, err := r.Update(FrameInput{OrbitDelta: mgl32.Vec2{0, 450}}, testViewport, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isUpsideDown(r.Orientation()) {
		t.Fatal("expected orientation to be upside down after pitching 3/4 pi")
	}
	if r.UpsideDown() {
		t.Error("flag changed without an orbit edge")
	}

	frames := []struct {
		name  string
		input FrameInput
		want  bool
	}{
		{"release latches", FrameInput{OrbitEnded: true}, true},
		{"pan keeps flag", FrameInput{PanDelta: mgl32.Vec2{5, 5}}, true},
		{"zoom keeps flag", FrameInput{Scroll: 1}, true},
		{"orbit back upright keeps flag", FrameInput{OrbitDelta: mgl32.Vec2{0, -450}}, true},
		{"press latches upright", FrameInput{OrbitStarted: true}, false},
	}
	for _, f := range frames {
		if _, err := r.Update(f.input, testViewport, nil); err != nil {
			t.Fatalf("%s: unexpected error: %v", f.name, err)
		}
		if r.UpsideDown() != f.want {
			t.Errorf("%s: expected upside-down %v, got %v", f.name, f.want, r.UpsideDown())
		}
	}
}

func TestPanScalesWithRadius(t *testing.T) {
	fov := float32(math.Pi / 4)
	projection := Perspective{Fov: fov, AspectRatio: testViewport.Aspect()}
	input := FrameInput{PanDelta: mgl32.Vec2{40, 30}}

	near := NewRig(mgl32.Vec3{0, 0, 10})
	far := NewRig(mgl32.Vec3{0, 0, 20})
	for _, r := range []Rig{near, far} {
		if _, err := r.Update(input, testViewport, projection); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	px := 40 * fov * projection.AspectRatio / testViewport.Width
	py := 30 * fov / testViewport.Height
	want := mgl32.Vec3{-px, py, 0}.Mul(10)
	if !vecNear(near.Focus(), want) {
		t.Errorf("expected focus %v, got %v", want, near.Focus())
	}
	if !vecNear(far.Focus(), near.Focus().Mul(2)) {
		t.Errorf("expected doubling the radius to double the pan, got %v vs %v", far.Focus(), near.Focus())
	}
	if near.Radius() != 10 || near.Orientation() != mgl32.QuatIdent() {
		t.Error("pan must only change the focus")
	}
	if !vecNear(near.Position(), near.Focus().Add(mgl32.Vec3{0, 0, 10})) {
		t.Errorf("expected position to follow focus, got %v", near.Position())
	}
}

func TestPanWithoutPerspectiveUsesRawDelta(t *testing.T) {
	tests := []struct {
		name       string
		projection Projection
	}{
		{"orthographic", Orthographic{}},
		{"absent", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRig(DefaultPlacement)
			if _, err := r.Update(FrameInput{PanDelta: mgl32.Vec2{2, 3}}, testViewport, tc.projection); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := mgl32.Vec3{-20, 30, 0}
			if !vecNear(r.Focus(), want) {
				t.Errorf("expected focus %v, got %v", want, r.Focus())
			}
		})
	}
}

func TestGesturePriority(t *testing.T) {
	tests := []struct {
		name  string
		input FrameInput
		want  Gesture
	}{
		{"empty", FrameInput{}, GestureNone},
		{"edges only", FrameInput{OrbitStarted: true, OrbitEnded: true}, GestureNone},
		{"orbit", FrameInput{OrbitDelta: mgl32.Vec2{1, 0}}, GestureOrbit},
		{"orbit beats pan and zoom", FrameInput{OrbitDelta: mgl32.Vec2{0, 1}, PanDelta: mgl32.Vec2{1, 1}, Scroll: 1}, GestureOrbit},
		{"pan beats zoom", FrameInput{PanDelta: mgl32.Vec2{1, 0}, Scroll: -2}, GesturePan},
		{"zoom", FrameInput{Scroll: -0.1}, GestureZoom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectGesture(tc.input); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSimultaneousInputAppliesOneGesture(t *testing.T) {
	r := NewRig(DefaultPlacement)
	input := FrameInput{OrbitDelta: mgl32.Vec2{50, 0}, PanDelta: mgl32.Vec2{10, 10}, Scroll: 3}
	if _, err := r.Update(input, testViewport, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Focus() != (mgl32.Vec3{}) || r.Radius() != 10 {
		t.Errorf("expected pan and zoom to be dropped, focus=%v radius=%f", r.Focus(), r.Radius())
	}

	r = NewRig(DefaultPlacement)
	if _, err := r.Update(FrameInput{PanDelta: mgl32.Vec2{1, 0}, Scroll: 3}, testViewport, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Radius() != 10 {
		t.Errorf("expected zoom to be dropped, radius=%f", r.Radius())
	}
}

func TestInvalidViewportLeavesRigUntouched(t *testing.T) {
	flipped := mgl32.QuatRotate(math.Pi, axisX)
	tests := []struct {
		name     string
		input    FrameInput
		viewport Viewport
	}{
		{"zero width orbit", FrameInput{OrbitDelta: mgl32.Vec2{10, 0}, OrbitStarted: true}, Viewport{0, 600}},
		{"zero height pan", FrameInput{PanDelta: mgl32.Vec2{10, 0}}, Viewport{800, 0}},
		{"negative width orbit", FrameInput{OrbitDelta: mgl32.Vec2{1, 1}, OrbitEnded: true}, Viewport{-800, 600}},
		{"NaN height orbit", FrameInput{OrbitDelta: mgl32.Vec2{1, 1}}, Viewport{800, float32(math.NaN())}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRig(DefaultPlacement, WithOrientation(flipped))
			before := r.Transform()
			got, err := r.Update(tc.input, tc.viewport, nil)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if got != before || r.Transform() != before {
				t.Error("rig transform changed on a failed update")
			}
			if r.UpsideDown() || r.Radius() != 10 || r.Focus() != (mgl32.Vec3{}) {
				t.Error("rig state changed on a failed update")
			}
		})
	}
}

func TestZoomIgnoresViewport(t *testing.T) {
	r := NewRig(DefaultPlacement)
	if _, err := r.Update(FrameInput{Scroll: 1}, Viewport{}, nil); err != nil {
		t.Fatalf("zoom should not need a viewport: %v", err)
	}
	if r.Radius() != 8 {
		t.Errorf("expected radius 8, got %f", r.Radius())
	}
}

func TestPositionIsDerivedFromState(t *testing.T) {
	r := NewRig(mgl32.Vec3{4, 2, 7})
	projection := Perspective{Fov: math.Pi / 3, AspectRatio: testViewport.Aspect()}
	frames := []FrameInput{
		{OrbitStarted: true, OrbitDelta: mgl32.Vec2{37, -12}},
		{OrbitDelta: mgl32.Vec2{-210, 95}},
		{OrbitEnded: true},
		{PanDelta: mgl32.Vec2{13, -44}},
		{Scroll: 2.5},
		{Scroll: -1},
		{OrbitDelta: mgl32.Vec2{400, 400}},
		{PanDelta: mgl32.Vec2{-3, 8}},
	}
	for i, f := range frames {
		got, err := r.Update(f, testViewport, projection)
		if err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
		want := r.Focus().Add(r.Orientation().Rotate(mgl32.Vec3{0, 0, r.Radius()}))
		if !vecNear(got.Position, want) || got.Position != r.Position() {
			t.Errorf("frame %d: position %v does not match derived %v", i, got.Position, want)
		}
		if !floatNear(r.Orientation().Len(), 1) {
			t.Errorf("frame %d: orientation drifted from unit length: %f", i, r.Orientation().Len())
		}
	}
}

func TestEmptyInputIsNoOp(t *testing.T) {
	r := NewRig(mgl32.Vec3{1, 2, 3})
	before := r.Transform()
	for range 100 {
		got, err := r.Update(FrameInput{}, Viewport{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != before {
			t.Fatalf("transform drifted on empty input: %v -> %v", before, got)
		}
	}
}
