package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/camera"
	"github.com/Carmen-Shannon/oxy-sdf/engine/hotreload"
	"github.com/Carmen-Shannon/oxy-sdf/engine/input"
	"github.com/Carmen-Shannon/oxy-sdf/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-sdf/engine/scene"
)

// ErrParamsBindingChanged is reported when a reloaded fragment shader moves the material
// uniform to a binding the existing bind group was not built for.
var ErrParamsBindingChanged = errors.New("engine: material params binding changed")

// Window is the part of window.Window the engine drives.
type Window interface {
	scene.ViewportSource
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetMouseButtonCallback(callback func(button int, pressed bool))
	SetCursorPosCallback(callback func(x, y float64))
	SetFocusCallback(callback func(focused bool))
	IsRunning() bool
	ProcessMessages()
	Close() error
}

// Renderer is the part of renderer.Renderer the engine drives.
type Renderer interface {
	bind_group_provider.BufferWriter
	Pipeline(key string) pipeline.Pipeline
	ReplacePipeline(p pipeline.Pipeline) error
	Resize(width, height int)
	BeginFrame() error
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame()
	Present()
}

// Draw is one draw call issued every frame.
type Draw struct {
	PipelineKey string
	Mesh        bind_group_provider.BindGroupProvider
	BindGroups  []bind_group_provider.BindGroupProvider
}

// engine implements the Engine interface.
// Runs every frame on the window's message-loop thread.
type engine struct {
	window   Window
	renderer Renderer
	scene    scene.Scene
	input    input.Aggregator
	reloader hotreload.Reloader
	draws    []Draw

	// paramsBinding is the material uniform binding each draw's bind groups were built for, by pipeline key.
	paramsBinding map[string]int

	profiler         *profiler.Profiler
	profilingEnabled bool
	trace            *profiler.CameraTrace
	traceRig         camera.Rig

	frame   uint64
	lastErr string
	logger  *slog.Logger
}

// Engine is the main entry point for the engine.
// It owns the frame loop: shader reloads, input, camera update, uploads and drawing.
type Engine interface {
	// Window returns the window the engine runs in.
	Window() Window

	// Scene returns the scene the engine updates each frame.
	Scene() scene.Scene

	// Input returns the aggregator window events are routed to.
	Input() input.Aggregator

	// Frame returns the number of frames stepped so far.
	Frame() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Step runs one frame.
	//
	// Returns:
	//   - error: a camera configuration, trace or draw error; missing viewports are not errors
	Step() error

	// Run wires the window callbacks and runs frames until the window closes.
	Run()

	// Quit closes the window and stops shader watching. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine. The window, renderer and scene are required; input
// defaults to an aggregator with the default button mapping.
//
// Parameters:
//   - w: the window to run in
//   - r: the renderer to draw with
//   - s: the scene to update
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w Window, r Renderer, s scene.Scene, options ...EngineBuilderOption) Engine {
	e := &engine{
		window:        w,
		renderer:      r,
		scene:         s,
		paramsBinding: make(map[string]int),
		logger:        slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.input == nil {
		e.input = input.NewAggregator()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	e.logger = e.logger.With("component", "engine")
	e.wireCallbacks()
	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Input() input.Aggregator {
	return e.input
}

func (e *engine) Frame() uint64 {
	return e.frame
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	e.window.SetUpdateCallback(func() {
		err := e.Step()
		switch {
		case err == nil:
			e.lastErr = ""
		case err.Error() != e.lastErr:
			e.lastErr = err.Error()
			e.logger.Error("frame failed", "frame", e.frame, "error", err)
		}
	})
	e.window.ProcessMessages()
	e.shutdown()
}

func (e *engine) Quit() {
	if e.window.IsRunning() {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("closing window", "error", err)
		}
	}
	e.shutdown()
}

func (e *engine) shutdown() {
	if e.reloader == nil {
		return
	}
	if err := e.reloader.Close(); err != nil {
		e.logger.Warn("closing shader reloader", "error", err)
	}
	e.reloader = nil
}

// wireCallbacks routes window events to the input aggregator, renderer and scene.
func (e *engine) wireCallbacks() {
	e.window.SetMouseButtonCallback(e.input.MouseButton)
	e.window.SetCursorPosCallback(e.input.CursorPos)
	e.window.SetScrollCallback(e.input.Scroll)
	e.window.SetFocusCallback(func(focused bool) {
		if !focused {
			e.input.Reset()
		}
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		if keyCode == common.KeyR && e.reloader != nil {
			e.logger.Info("reloading shaders")
			e.reloader.ReloadAll()
		}
	})
	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
		if width > 0 && height > 0 {
			e.scene.SetAspect(float32(width) / float32(height))
		}
	})
}

func (e *engine) Step() error {
	e.frame++
	e.applyReloads()

	frameInput := e.input.Drain()
	if !e.scene.Active() {
		return nil
	}

	frame, err := e.scene.Update(frameInput, e.window)
	if err != nil {
		return fmt.Errorf("frame %d: %w", e.frame, err)
	}
	if frame.Skipped {
		return nil
	}
	e.renderer.WriteBuffers(frame.Writes)

	var errs []error
	if e.traceRig != nil {
		if err := e.trace.Record(e.frame, frame.Gesture, e.traceRig); err != nil {
			errs = append(errs, err)
		}
	}

	if err := e.renderer.BeginFrame(); err != nil {
		// The surface is not ready, typically right after a resize; the next frame retries.
		e.logger.Debug("skipping draw", "frame", e.frame, "error", err)
	} else {
		for _, d := range e.draws {
			if err := e.renderer.DrawCall(d.PipelineKey, d.Mesh, d.BindGroups); err != nil {
				errs = append(errs, err)
			}
		}
		e.renderer.EndFrame()
		e.renderer.Present()
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	if len(errs) > 0 {
		return fmt.Errorf("frame %d: %w", e.frame, errors.Join(errs...))
	}
	return nil
}

// applyReloads drains every finished shader reload without blocking.
func (e *engine) applyReloads() {
	if e.reloader == nil {
		return
	}
	for {
		select {
		case res, ok := <-e.reloader.Results():
			if !ok {
				e.reloader = nil
				return
			}
			e.applyReload(res)
		default:
			return
		}
	}
}

// applyReload swaps the reloaded stage into every pipeline using it. On any failure the
// previous pipeline stays active.
func (e *engine) applyReload(res hotreload.Result) {
	if res.Err != nil {
		e.logger.Warn("shader reload failed, keeping previous pipeline", "shader", res.Key, "error", res.Err)
		return
	}

	for _, key := range e.pipelineKeys() {
		current := e.renderer.Pipeline(key)
		if current == nil {
			continue
		}
		stage := current.Shader(res.Shader.ShaderType())
		if stage == nil || stage.Key() != res.Key {
			continue
		}

		if err := e.checkParamsBinding(key, res.Shader); err != nil {
			e.logger.Warn("shader reload rejected, keeping previous pipeline", "shader", res.Key, "pipeline", key, "error", err)
			continue
		}
		if err := e.renderer.ReplacePipeline(current.WithShader(res.Shader)); err != nil {
			e.logger.Warn("pipeline rebuild failed, keeping previous pipeline", "shader", res.Key, "pipeline", key, "error", err)
			continue
		}
		e.logger.Info("shader reloaded", "shader", res.Key, "pipeline", key, "path", res.Path)
	}
}

// checkParamsBinding rejects a fragment shader whose material uniform moved.
func (e *engine) checkParamsBinding(pipelineKey string, s shader.Shader) error {
	want, tracked := e.paramsBinding[pipelineKey]
	if !tracked || s.ShaderType() != shader.ShaderTypeFragment {
		return nil
	}
	_, got, err := MaterialParamsBinding(s)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: binding %d, bind group built for %d", ErrParamsBindingChanged, got, want)
	}
	return nil
}

// pipelineKeys returns the distinct pipeline keys of the draw list in order.
func (e *engine) pipelineKeys() []string {
	keys := make([]string, 0, len(e.draws))
	seen := make(map[string]bool, len(e.draws))
	for _, d := range e.draws {
		if !seen[d.PipelineKey] {
			seen[d.PipelineKey] = true
			keys = append(keys, d.PipelineKey)
		}
	}
	return keys
}

// MaterialParamsBinding finds the group and binding a fragment shader declares for the
// sdf_params material uniform.
//
// Parameters:
//   - s: the fragment shader
//
// Returns:
//   - int: the bind group index
//   - int: the binding index
//   - error: an error if the shader declares no sdf_params binding
func MaterialParamsBinding(s shader.Shader) (int, int, error) {
	for _, decl := range s.Declarations() {
		if decl.Type != shader.AnnotationTypeBindingGroup || len(decl.Args) < 3 {
			continue
		}
		if decl.Args[2] == shader.AnnotationArgSDFParams && decl.Group != nil && decl.Binding != nil {
			return *decl.Group, *decl.Binding, nil
		}
	}
	return 0, 0, fmt.Errorf("shader %q declares no %s binding", s.Key(), shader.AnnotationArgSDFParams)
}
