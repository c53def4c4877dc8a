package camera

import "github.com/go-gl/mathgl/mgl32"

// RigBuilderOption is a functional option for configuring a Rig.
type RigBuilderOption func(*rigImpl)

// WithFocus sets the initial focus point. The initial orientation still looks from the
// placement toward the origin.
//
// Parameters:
//   - focus: the focus point in world space
//
// Returns:
//   - RigBuilderOption: functional option to set the focus
func WithFocus(focus mgl32.Vec3) RigBuilderOption {
	return func(r *rigImpl) {
		r.focus = focus
	}
}

// WithOrientation overrides the initial orientation derived from the placement.
//
// Parameters:
//   - orientation: the initial camera rotation
//
// Returns:
//   - RigBuilderOption: functional option to set the orientation
func WithOrientation(orientation mgl32.Quat) RigBuilderOption {
	return func(r *rigImpl) {
		r.orientation = orientation.Normalize()
	}
}

// WithMinRadius sets the radius floor applied by zoom. Non-positive values are ignored.
//
// Parameters:
//   - minRadius: the minimum orbit radius
//
// Returns:
//   - RigBuilderOption: functional option to set the minimum radius
func WithMinRadius(minRadius float32) RigBuilderOption {
	return func(r *rigImpl) {
		if minRadius > 0 {
			r.minRadius = minRadius
		}
	}
}

// WithZoomRate sets the fraction of the radius removed per scroll unit.
//
// Parameters:
//   - rate: the zoom rate
//
// Returns:
//   - RigBuilderOption: functional option to set the zoom rate
func WithZoomRate(rate float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.zoomRate = rate
	}
}
