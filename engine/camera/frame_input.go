package camera

import (
	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameInput is the summed pointer input for a single frame.
// A fresh value is built every frame; nothing in it carries over to the next one.
type FrameInput struct {
	// OrbitDelta is the pointer motion in pixels accumulated while the orbit button was held.
	OrbitDelta mgl32.Vec2
	// PanDelta is the pointer motion in pixels accumulated while the pan button was held.
	PanDelta mgl32.Vec2
	// Scroll is the summed vertical wheel motion. Positive zooms in.
	Scroll float32
	// OrbitStarted is true on the frame the orbit button went down.
	OrbitStarted bool
	// OrbitEnded is true on the frame the orbit button was released.
	OrbitEnded bool
}

// IsZero reports whether the input carries no motion, scroll, or orbit edge.
//
// Returns:
//   - bool: true if the input is empty
func (f FrameInput) IsZero() bool {
	return f == FrameInput{}
}

// Viewport is the pixel size of the render surface the pointer moves over.
type Viewport struct {
	Width  float32
	Height float32
}

// Validate returns a ConfigurationError when either dimension is not a positive finite number.
//
// Returns:
//   - error: nil if the viewport can normalize pointer deltas
func (v Viewport) Validate() error {
	if !(v.Width > 0) || !(v.Height > 0) || !common.Float32Finite(v.Width) || !common.Float32Finite(v.Height) {
		return &ConfigurationError{Width: v.Width, Height: v.Height}
	}
	return nil
}

// Aspect returns Width / Height, or 1 for an unusable viewport.
//
// Returns:
//   - float32: the aspect ratio
func (v Viewport) Aspect() float32 {
	if v.Validate() != nil {
		return 1
	}
	return v.Width / v.Height
}

// Projection describes how the camera projects the scene. A nil Projection is treated like
// an orthographic one by the rig: pan deltas are used unscaled.
type Projection interface {
	isProjection()
}

// Perspective is a perspective projection. Fov is the vertical field of view in radians.
type Perspective struct {
	Fov         float32
	AspectRatio float32
}

// Orthographic is an orthographic projection.
type Orthographic struct{}

func (Perspective) isProjection()  {}
func (Orthographic) isProjection() {}

// Transform is the camera placement produced by Rig.Update.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}
