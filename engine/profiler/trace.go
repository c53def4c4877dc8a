package profiler

import (
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-sdf/engine/camera"
	"github.com/gocarina/gocsv"
)

// TraceRecord is one CSV row of the camera trace.
type TraceRecord struct {
	Frame      uint64  `csv:"frame"`
	Gesture    string  `csv:"gesture"`
	PositionX  float32 `csv:"pos_x"`
	PositionY  float32 `csv:"pos_y"`
	PositionZ  float32 `csv:"pos_z"`
	FocusX     float32 `csv:"focus_x"`
	FocusY     float32 `csv:"focus_y"`
	FocusZ     float32 `csv:"focus_z"`
	Radius     float32 `csv:"radius"`
	UpsideDown bool    `csv:"upside_down"`
}

// CameraTrace writes one CSV row per frame in which the camera moved.
// A nil *CameraTrace records nothing, so callers need no enabled check.
type CameraTrace struct {
	out           io.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

// NewCameraTrace creates a trace writing to out.
//
// Parameters:
//   - out: the CSV destination
//
// Returns:
//   - *CameraTrace: the trace
func NewCameraTrace(out io.Writer) *CameraTrace {
	return &CameraTrace{out: out}
}

// CreateCameraTrace creates or truncates a trace file.
//
// Parameters:
//   - path: the CSV file to write
//
// Returns:
//   - *CameraTrace: the trace, closed with Close
//   - error: an error if the file cannot be created
func CreateCameraTrace(path string) (*CameraTrace, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating camera trace: %w", err)
	}
	return &CameraTrace{out: f, closer: f}, nil
}

// Record writes the rig state after a frame's update. Frames with no gesture are skipped.
//
// Parameters:
//   - frame: the frame number
//   - gesture: the gesture applied this frame
//   - rig: the rig after the update
//
// Returns:
//   - error: an error if the row cannot be written
func (t *CameraTrace) Record(frame uint64, gesture camera.Gesture, rig camera.Rig) error {
	if t == nil || gesture == camera.GestureNone {
		return nil
	}

	pos, focus := rig.Position(), rig.Focus()
	records := []TraceRecord{{
		Frame:      frame,
		Gesture:    gesture.String(),
		PositionX:  pos.X(),
		PositionY:  pos.Y(),
		PositionZ:  pos.Z(),
		FocusX:     focus.X(),
		FocusY:     focus.Y(),
		FocusZ:     focus.Z(),
		Radius:     rig.Radius(),
		UpsideDown: rig.UpsideDown(),
	}}

	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.out); err != nil {
			return fmt.Errorf("writing camera trace: %w", err)
		}
		t.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, t.out); err != nil {
			return fmt.Errorf("writing camera trace: %w", err)
		}
	}
	t.rows++
	return nil
}

// Rows returns the number of rows written.
//
// Returns:
//   - int: the row count
func (t *CameraTrace) Rows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Close closes the trace file if the trace owns one.
//
// Returns:
//   - error: an error from closing the file
func (t *CameraTrace) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	err := t.closer.Close()
	t.closer = nil
	return err
}
