package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Gesture is the single camera motion applied in a frame.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureOrbit
	GesturePan
	GestureZoom
)

func (g Gesture) String() string {
	switch g {
	case GestureOrbit:
		return "orbit"
	case GesturePan:
		return "pan"
	case GestureZoom:
		return "zoom"
	default:
		return "none"
	}
}

// needsViewport reports whether the gesture normalizes pointer deltas by the viewport size.
func (g Gesture) needsViewport() bool {
	return g == GestureOrbit || g == GesturePan
}

// SelectGesture picks the gesture for a frame. Orbit wins over pan, pan wins over zoom, and the
// losing inputs are discarded for that frame.
//
// Parameters:
//   - input: the frame's summed input
//
// Returns:
//   - Gesture: the gesture to apply
func SelectGesture(input FrameInput) Gesture {
	switch {
	case input.OrbitDelta.LenSqr() > 0:
		return GestureOrbit
	case input.PanDelta.LenSqr() > 0:
		return GesturePan
	case math.Abs(float64(input.Scroll)) > 0:
		return GestureZoom
	default:
		return GestureNone
	}
}

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
)

// isUpsideDown reports whether the camera's local up axis points at or below the horizon.
func isUpsideDown(orientation mgl32.Quat) bool {
	return orientation.Rotate(axisY).Y() <= 0
}

// orbitAngles converts an orbit pointer delta into yaw and pitch angles in radians.
// A full viewport width maps to one turn of yaw and a full height to half a turn of pitch.
// Yaw is mirrored while upside down so horizontal drags keep their on-screen direction.
func orbitAngles(delta mgl32.Vec2, viewport Viewport, upsideDown bool) (yaw, pitch float32) {
	yaw = delta.X() / viewport.Width * 2 * math.Pi
	if upsideDown {
		yaw = -yaw
	}
	pitch = delta.Y() / viewport.Height * math.Pi
	return yaw, pitch
}

// orbit applies yaw about world +Y and pitch about the camera's local X axis.
func orbit(orientation mgl32.Quat, yaw, pitch float32) mgl32.Quat {
	yawQ := mgl32.QuatRotate(-yaw, axisY)
	pitchQ := mgl32.QuatRotate(-pitch, axisX)
	return yawQ.Mul(orientation).Mul(pitchQ).Normalize()
}

// panScale converts a pan pointer delta into view-relative units. Under a perspective projection
// the delta is scaled by the field of view over the viewport size, so a drag across the whole
// viewport moves the focus by about one view width regardless of resolution.
func panScale(delta mgl32.Vec2, viewport Viewport, projection Projection) mgl32.Vec2 {
	p, ok := projection.(Perspective)
	if !ok {
		return delta
	}
	return mgl32.Vec2{
		delta.X() * p.Fov * p.AspectRatio / viewport.Width,
		delta.Y() * p.Fov / viewport.Height,
	}
}

// panOffset returns the world-space focus translation for a scaled pan delta.
func panOffset(orientation mgl32.Quat, pan mgl32.Vec2, radius float32) mgl32.Vec3 {
	right := orientation.Rotate(axisX).Mul(-pan.X())
	up := orientation.Rotate(axisY).Mul(pan.Y())
	return right.Add(up).Mul(radius)
}

// zoom shrinks the radius by a fraction of itself per scroll unit and clamps it to minRadius.
func zoom(radius, scroll, rate, minRadius float32) float32 {
	radius -= scroll * radius * rate
	if radius < minRadius {
		radius = minRadius
	}
	return radius
}
