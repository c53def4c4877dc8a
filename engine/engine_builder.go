package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-sdf/engine/camera"
	"github.com/Carmen-Shannon/oxy-sdf/engine/hotreload"
	"github.com/Carmen-Shannon/oxy-sdf/engine/input"
	"github.com/Carmen-Shannon/oxy-sdf/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithInput sets the aggregator window events are routed to.
//
// Parameters:
//   - a: the input aggregator
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(a input.Aggregator) EngineBuilderOption {
	return func(e *engine) {
		e.input = a
	}
}

// WithReloader sets the shader reloader whose results are applied at the start of each frame.
// The engine closes it on shutdown.
//
// Parameters:
//   - r: the shader reloader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithReloader(r hotreload.Reloader) EngineBuilderOption {
	return func(e *engine) {
		e.reloader = r
	}
}

// WithDraw adds a draw call issued every frame, in the order added.
//
// Parameters:
//   - d: the draw call
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDraw(d Draw) EngineBuilderOption {
	return func(e *engine) {
		e.draws = append(e.draws, d)
	}
}

// WithMaterialBinding records the material uniform binding a pipeline's bind group was
// built for. Fragment reloads that move the uniform are rejected.
//
// Parameters:
//   - pipelineKey: the pipeline drawing the material
//   - binding: the binding index of the material uniform
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaterialBinding(pipelineKey string, binding int) EngineBuilderOption {
	return func(e *engine) {
		e.paramsBinding[pipelineKey] = binding
	}
}

// WithCameraTrace records the rig after every frame with motion.
//
// Parameters:
//   - trace: the trace to write, the caller closes it
//   - rig: the rig to record
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraTrace(trace *profiler.CameraTrace, rig camera.Rig) EngineBuilderOption {
	return func(e *engine) {
		e.trace = trace
		e.traceRig = rig
	}
}

// WithLogger sets the engine's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
