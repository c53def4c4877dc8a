package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-sdf/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

const defaultTitle = "oxy-sdf"

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetMouseButtonCallback sets the callback for mouse button press and release.
	//
	// Parameters:
	//   - callback: function receiving the button code and whether it was pressed
	SetMouseButtonCallback(callback func(button int, pressed bool))

	// SetCursorPosCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position in pixels
	SetCursorPosCallback(callback func(x, y float64))

	// SetFocusCallback sets the callback for focus changes.
	//
	// Parameters:
	//   - callback: function receiving true when focus is gained and false when lost
	SetFocusCallback(callback func(focused bool))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Viewport returns the framebuffer size as a camera viewport.
	//
	// Returns:
	//   - camera.Viewport: the framebuffer size in pixels
	//   - error: camera.ErrMissingPrimaryViewport if the window is closed, minimized or not initialized
	Viewport() (camera.Viewport, error)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels, the unit of Viewport and the surface.
	width  int
	height int

	// windowWidth and windowHeight are the size in screen coordinates, the unit GLFW reports
	// cursor positions in. They differ from the framebuffer size on high-DPI displays.
	windowWidth  int
	windowHeight int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode uint32)
	onMouseButton func(button int, pressed bool)
	onCursorPos   func(x, y float64)
	onFocus       func(focused bool)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.title == "" {
		w.title = defaultTitle
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button int, pressed bool)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetCursorPosCallback(callback func(x, y float64)) {
	w.onCursorPos = callback
}

func (w *engineWindow) SetFocusCallback(callback func(focused bool)) {
	w.onFocus = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Viewport() (camera.Viewport, error) {
	if !w.IsRunning() || platformIsMinimized(w) {
		return camera.Viewport{}, camera.ErrMissingPrimaryViewport
	}
	return camera.Viewport{Width: float32(w.width), Height: float32(w.height)}, nil
}

// cursorToFramebuffer converts a cursor position from screen coordinates to framebuffer pixels
// so pointer deltas share the unit of Viewport. Sizes that are not positive leave the position unscaled.
//
// Parameters:
//   - x, y: the cursor position in screen coordinates
//   - windowWidth, windowHeight: the window size in screen coordinates
//   - fbWidth, fbHeight: the framebuffer size in pixels
//
// Returns:
//   - float64, float64: the cursor position in framebuffer pixels
func cursorToFramebuffer(x, y float64, windowWidth, windowHeight, fbWidth, fbHeight int) (float64, float64) {
	if windowWidth <= 0 || windowHeight <= 0 || fbWidth <= 0 || fbHeight <= 0 {
		return x, y
	}
	return x * float64(fbWidth) / float64(windowWidth), y * float64(fbHeight) / float64(windowHeight)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
