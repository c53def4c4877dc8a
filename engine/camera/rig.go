package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultMinRadius is the closest the rig may get to its focus point.
	DefaultMinRadius float32 = 0.05
	// DefaultZoomRate is the fraction of the radius removed per unit of scroll.
	DefaultZoomRate float32 = 0.2
)

// DefaultPlacement is the camera position a rig starts from when none is configured.
var DefaultPlacement = mgl32.Vec3{0, 0, 10}

type rigImpl struct {
	mu *sync.Mutex

	focus       mgl32.Vec3
	radius      float32
	upsideDown  bool
	orientation mgl32.Quat
	position    mgl32.Vec3

	minRadius float32
	zoomRate  float32
}

// Rig is an orbital camera controller. It orbits a focus point at a radius, pans the focus
// across the view plane and zooms by scaling the radius. The camera position is always derived
// from focus, radius and orientation and cannot be set directly.
type Rig interface {
	// Focus returns the point the camera orbits around and looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the focus point in world space
	Focus() mgl32.Vec3

	// Radius returns the distance from the focus to the camera.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// UpsideDown reports whether the camera's up axis pointed at or below the horizon the last
	// time an orbit gesture started or ended.
	//
	// Returns:
	//   - bool: the latched upside-down flag
	UpsideDown() bool

	// Orientation returns the camera rotation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Orientation() mgl32.Quat

	// Position returns the derived camera position, focus + orientation * (0, 0, radius).
	//
	// Returns:
	//   - mgl32.Vec3: the camera position in world space
	Position() mgl32.Vec3

	// Transform returns the current camera placement.
	//
	// Returns:
	//   - Transform: position and rotation
	Transform() Transform

	// MinRadius returns the radius floor applied by zoom.
	//
	// Returns:
	//   - float32: the minimum radius
	MinRadius() float32

	// Update applies one frame of input. At most one gesture is applied, chosen by SelectGesture.
	// When the orbit button went down or up this frame the upside-down flag is re-latched from
	// the current orientation before any rotation is applied.
	//
	// Parameters:
	//   - input: the frame's summed input
	//   - viewport: the pixel size of the render surface
	//   - projection: the camera projection, or nil for none
	//
	// Returns:
	//   - Transform: the camera placement after the update
	//   - error: a *ConfigurationError if orbit or pan is requested with an unusable viewport;
	//     the rig is left unchanged in that case
	Update(input FrameInput, viewport Viewport, projection Projection) (Transform, error)
}

var _ Rig = &rigImpl{}

// NewRig creates a Rig from an initial camera placement. The focus starts at the world origin,
// the radius is the placement's distance from the origin and the camera looks at the origin
// with +Y up.
//
// Parameters:
//   - placement: the initial camera position
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(placement mgl32.Vec3, options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:          &sync.Mutex{},
		radius:      placement.Len(),
		orientation: lookAtOrigin(placement),
		minRadius:   DefaultMinRadius,
		zoomRate:    DefaultZoomRate,
	}
	for _, option := range options {
		option(r)
	}
	if r.radius < r.minRadius {
		r.radius = r.minRadius
	}
	r.updatePosition()
	return r
}

func (r *rigImpl) Focus() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focus
}

func (r *rigImpl) Radius() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.radius
}

func (r *rigImpl) UpsideDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upsideDown
}

func (r *rigImpl) Orientation() mgl32.Quat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orientation
}

func (r *rigImpl) Position() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

func (r *rigImpl) Transform() Transform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transform()
}

func (r *rigImpl) MinRadius() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minRadius
}

func (r *rigImpl) Update(input FrameInput, viewport Viewport, projection Projection) (Transform, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gesture := SelectGesture(input)
	if gesture.needsViewport() {
		if err := viewport.Validate(); err != nil {
			return r.transform(), err
		}
	}

	if input.OrbitStarted || input.OrbitEnded {
		r.upsideDown = isUpsideDown(r.orientation)
	}

	switch gesture {
	case GestureOrbit:
		yaw, pitch := orbitAngles(input.OrbitDelta, viewport, r.upsideDown)
		r.orientation = orbit(r.orientation, yaw, pitch)
	case GesturePan:
		pan := panScale(input.PanDelta, viewport, projection)
		r.focus = r.focus.Add(panOffset(r.orientation, pan, r.radius))
	case GestureZoom:
		r.radius = zoom(r.radius, input.Scroll, r.zoomRate, r.minRadius)
	case GestureNone:
		return r.transform(), nil
	}

	r.updatePosition()
	return r.transform(), nil
}

// updatePosition recomputes the derived position from focus, radius and orientation.
// Every mutation path ends here. Caller must hold the mutex.
func (r *rigImpl) updatePosition() {
	r.position = r.focus.Add(r.orientation.Rotate(mgl32.Vec3{0, 0, r.radius}))
}

// transform returns the current placement. Caller must hold the mutex.
func (r *rigImpl) transform() Transform {
	return Transform{Position: r.position, Rotation: r.orientation}
}

// lookAtOrigin returns the rotation of a camera at eye that looks at the origin with +Y up.
// The camera's -Z axis points at the origin. A placement on the Y axis uses +X as its right axis,
// and a placement at the origin yields the identity rotation.
func lookAtOrigin(eye mgl32.Vec3) mgl32.Quat {
	if eye.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	back := eye.Normalize()
	right := axisY.Cross(back)
	if right.LenSqr() < 1e-12 {
		right = axisX
	}
	right = right.Normalize()
	up := back.Cross(right)
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, up, back).Mat4()).Normalize()
}
