// Package hotreload watches shader files and reparses them off the frame thread.
package hotreload

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/shader"
	"github.com/fsnotify/fsnotify"
)

// ErrUnknownSource is returned by Reload for a key that was not registered.
var ErrUnknownSource = errors.New("hotreload: unknown source")

// Source is one watched shader file.
type Source struct {
	Key  string
	Type shader.ShaderType
	Path string
}

// Result is the outcome of reparsing a Source. Exactly one of Shader and Err is set.
type Result struct {
	Key    string
	Path   string
	Shader shader.Shader
	Err    error
}

// ParseFunc loads a shader from disk. shader.LoadShader is the default.
type ParseFunc func(key string, shaderType shader.ShaderType, path string) (shader.Shader, error)

// Reloader watches shader sources and delivers reparsed shaders on a channel.
// Watching, debouncing and parsing run on background goroutines; the consumer polls Results
// from the frame thread and applies results there.
type Reloader interface {
	// Results returns the channel completed reloads are delivered on. It is closed by Close.
	//
	// Returns:
	//   - <-chan Result: the result channel
	Results() <-chan Result

	// Reload queues a reparse of a source regardless of file events.
	//
	// Parameters:
	//   - key: the source key
	//
	// Returns:
	//   - error: ErrUnknownSource if no source has the key
	Reload(key string) error

	// ReloadAll queues a reparse of every source.
	ReloadAll()

	// Close stops watching, waits for in-flight parses and closes the result channel.
	// Calling Close more than once is safe.
	//
	// Returns:
	//   - error: an error from closing the file watcher
	Close() error
}

// reloader is the implementation of the Reloader interface.
type reloader struct {
	mu *sync.Mutex

	watcher *fsnotify.Watcher
	pool    worker.DynamicWorkerPool
	parse   ParseFunc
	logger  *slog.Logger

	workers  int
	debounce time.Duration

	sources map[string]Source // keyed by absolute path
	byKey   map[string]Source
	timers  map[string]*time.Timer

	results  chan Result
	closeCh  chan struct{}
	runDone  chan struct{}
	closed   bool
	once     sync.Once
	inFlight sync.WaitGroup
	taskID   atomic.Int64
}

var _ Reloader = &reloader{}

// NewReloader starts watching the directories that contain the given sources.
//
// Parameters:
//   - sources: the shader files to watch
//   - options: functional options for debounce, workers, parser and logger
//
// Returns:
//   - Reloader: the running reloader
//   - error: an error if a path cannot be resolved or a directory cannot be watched
func NewReloader(sources []Source, options ...ReloaderBuilderOption) (Reloader, error) {
	r := &reloader{
		mu:       &sync.Mutex{},
		parse:    shader.LoadShader,
		logger:   slog.Default(),
		workers:  2,
		debounce: 100 * time.Millisecond,
		sources:  make(map[string]Source, len(sources)),
		byKey:    make(map[string]Source, len(sources)),
		timers:   make(map[string]*time.Timer),
		results:  make(chan Result, 16),
		closeCh:  make(chan struct{}),
		runDone:  make(chan struct{}),
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.With("component", "hotreload")

	dirs := make(map[string]struct{})
	for _, src := range sources {
		abs, err := filepath.Abs(src.Path)
		if err != nil {
			return nil, fmt.Errorf("hotreload: resolving %q: %w", src.Path, err)
		}
		src.Path = abs
		r.sources[abs] = src
		r.byKey[src.Key] = src
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("hotreload: creating watcher: %w", err)
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("hotreload: watching %q: %w", dir, err)
		}
	}
	r.watcher = w
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)

	go r.run()
	r.logger.Info("watching shaders", "sources", len(sources), "dirs", len(dirs))
	return r, nil
}

func (r *reloader) Results() <-chan Result {
	return r.results
}

func (r *reloader) Reload(key string) error {
	src, ok := r.byKey[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSource, key)
	}
	r.submit(src)
	return nil
}

func (r *reloader) ReloadAll() {
	for _, src := range r.byKey {
		r.submit(src)
	}
}

func (r *reloader) Close() error {
	var err error
	r.once.Do(func() {
		close(r.closeCh)
		err = r.watcher.Close()
		<-r.runDone

		r.mu.Lock()
		r.closed = true
		for path, t := range r.timers {
			t.Stop()
			delete(r.timers, path)
		}
		r.mu.Unlock()

		r.inFlight.Wait()
		close(r.results)
	})
	return err
}

// run forwards relevant file events to the debouncer until the watcher closes.
func (r *reloader) run() {
	defer close(r.runDone)
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			src, ok := r.sources[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			r.schedule(src)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("watcher error", "error", err)
		case <-r.closeCh:
			return
		}
	}
}

// schedule (re)starts the debounce timer of a source, so a burst of writes from one save
// produces a single reparse after the file goes quiet.
func (r *reloader) schedule(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if t, ok := r.timers[src.Path]; ok {
		t.Reset(r.debounce)
		return
	}
	r.timers[src.Path] = time.AfterFunc(r.debounce, func() {
		r.mu.Lock()
		delete(r.timers, src.Path)
		r.mu.Unlock()
		r.submit(src)
	})
}

// submit hands a reparse to the worker pool. The result is dropped if Close runs first.
func (r *reloader) submit(src Source) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.inFlight.Add(1)
	r.mu.Unlock()

	r.pool.SubmitTask(worker.Task{
		ID: int(r.taskID.Add(1)),
		Do: func() (any, error) {
			defer r.inFlight.Done()

			s, err := r.parse(src.Key, src.Type, src.Path)
			res := Result{Key: src.Key, Path: src.Path, Shader: s, Err: err}
			if err != nil {
				res.Shader = nil
				r.logger.Warn("shader reload failed", "key", src.Key, "error", err)
			} else {
				r.logger.Info("shader reparsed", "key", src.Key)
			}

			select {
			case r.results <- res:
			case <-r.closeCh:
			}
			return nil, nil
		},
	})
}
