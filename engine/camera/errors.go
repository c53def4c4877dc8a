package camera

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by Rig.Update when the viewport cannot be used to
	// normalize pointer deltas. Check with errors.Is.
	ErrConfiguration = errors.New("camera: invalid configuration")

	// ErrMissingPrimaryViewport is returned by viewport sources when no render surface is
	// active. The frame's camera update should be skipped.
	ErrMissingPrimaryViewport = errors.New("camera: missing primary viewport")
)

// ConfigurationError reports the viewport that failed validation.
type ConfigurationError struct {
	Width  float32
	Height float32
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("camera: invalid viewport %vx%v: dimensions must be positive", e.Width, e.Height)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
