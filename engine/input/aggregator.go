package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Aggregator collects raw pointer events between frames and folds them into one camera.FrameInput.
// Physical mouse buttons are mapped to the logical "orbit" and "pan" buttons. Motion is routed by
// the buttons held when it arrives: orbit wins over pan, and motion with neither held is dropped.
type Aggregator interface {
	// MouseButton records a press or release of a physical mouse button.
	//
	// Parameters:
	//   - button: the button code (see common.MouseButton*)
	//   - pressed: true for press, false for release
	MouseButton(button int, pressed bool)

	// CursorPos records an absolute cursor position. The first position after construction or
	// Reset only establishes the baseline for later deltas.
	//
	// Parameters:
	//   - x: cursor x in pixels
	//   - y: cursor y in pixels
	CursorPos(x, y float64)

	// Motion records a relative pointer movement.
	//
	// Parameters:
	//   - dx: horizontal movement in pixels, positive right
	//   - dy: vertical movement in pixels, positive down
	Motion(dx, dy float32)

	// Scroll records vertical wheel motion. Positive values zoom in.
	//
	// Parameters:
	//   - delta: the wheel delta
	Scroll(delta float32)

	// Drain returns the input accumulated since the previous Drain and clears it.
	// Held button state survives the drain; everything else is discarded.
	//
	// Returns:
	//   - camera.FrameInput: the frame's input
	Drain() camera.FrameInput

	// OrbitHeld reports whether the orbit button is currently down.
	//
	// Returns:
	//   - bool: true while orbit is held
	OrbitHeld() bool

	// PanHeld reports whether the pan button is currently down.
	//
	// Returns:
	//   - bool: true while pan is held
	PanHeld() bool

	// Reset releases all buttons and forgets the cursor baseline, e.g. when the window loses focus.
	Reset()
}

// aggregator is the implementation of the Aggregator interface.
type aggregator struct {
	mu *sync.Mutex

	orbitButton int
	panButton   int

	orbitHeld bool
	panHeld   bool

	hasCursor bool
	lastX     float64
	lastY     float64

	pending camera.FrameInput
}

var _ Aggregator = &aggregator{}

// NewAggregator creates an Aggregator with orbit on the right button and pan on the middle button.
//
// Parameters:
//   - options: functional options to override the button mapping
//
// Returns:
//   - Aggregator: the new aggregator
func NewAggregator(options ...AggregatorBuilderOption) Aggregator {
	a := &aggregator{
		mu:          &sync.Mutex{},
		orbitButton: common.MouseButtonRight,
		panButton:   common.MouseButtonMiddle,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *aggregator) MouseButton(button int, pressed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch button {
	case a.orbitButton:
		if pressed && !a.orbitHeld {
			a.pending.OrbitStarted = true
		}
		if !pressed && a.orbitHeld {
			a.pending.OrbitEnded = true
		}
		a.orbitHeld = pressed
	case a.panButton:
		a.panHeld = pressed
	}
}

func (a *aggregator) CursorPos(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.hasCursor {
		a.route(float32(x-a.lastX), float32(y-a.lastY))
	}
	a.lastX, a.lastY = x, y
	a.hasCursor = true
}

func (a *aggregator) Motion(dx, dy float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.route(dx, dy)
}

// route adds a motion delta to the gesture selected by the held buttons. Caller holds mu.
func (a *aggregator) route(dx, dy float32) {
	d := mgl32.Vec2{dx, dy}
	switch {
	case a.orbitHeld:
		a.pending.OrbitDelta = a.pending.OrbitDelta.Add(d)
	case a.panHeld:
		a.pending.PanDelta = a.pending.PanDelta.Add(d)
	}
}

func (a *aggregator) Scroll(delta float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending.Scroll += delta
}

func (a *aggregator) Drain() camera.FrameInput {
	a.mu.Lock()
	defer a.mu.Unlock()
	in := a.pending
	a.pending = camera.FrameInput{}
	return in
}

func (a *aggregator) OrbitHeld() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.orbitHeld
}

func (a *aggregator) PanHeld() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.panHeld
}

func (a *aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.orbitHeld {
		a.pending.OrbitEnded = true
	}
	a.orbitHeld = false
	a.panHeld = false
	a.hasCursor = false
}
