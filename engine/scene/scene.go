package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-sdf/engine/camera"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/material"
	"github.com/mlange-42/ark/ecs"
)

// CameraComponent attaches a rig-driven camera to an entity.
type CameraComponent struct {
	Camera camera.Camera
}

// FeedComponent attaches the feed that forwards the entity's camera position to a material.
type FeedComponent struct {
	Feed *material.CameraFeed
}

// ViewportSource reports the pixel size of the primary render surface.
// The window implements it; it returns camera.ErrMissingPrimaryViewport when no surface is active.
type ViewportSource interface {
	Viewport() (camera.Viewport, error)
}

// Frame is the outcome of one scene update.
type Frame struct {
	// Gesture is the gesture the frame's input selected.
	Gesture camera.Gesture
	// Writes holds the camera uniform and feed uploads for every camera entity, in entity order.
	Writes []bind_group_provider.BufferWrite
	// Skipped is true when no viewport was available and no camera was updated.
	Skipped bool
}

// Scene owns the ECS world holding camera entities and drives them once per frame.
// Thread-safe for concurrent access, though Update is expected to run on the frame thread only.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently updated and rendered.
	Active() bool

	// SetActive sets whether this scene is updated and rendered.
	SetActive(active bool)

	// AddCamera creates an entity carrying the camera and its feed.
	// A nil feed is allowed for cameras that drive no material.
	//
	// Parameters:
	//   - cam: the camera to attach
	//   - feed: the feed receiving the camera position each frame
	//
	// Returns:
	//   - ecs.Entity: the new entity
	AddCamera(cam camera.Camera, feed *material.CameraFeed) ecs.Entity

	// RemoveCamera removes a camera entity. Unknown or already removed entities are ignored.
	//
	// Parameters:
	//   - entity: the entity returned by AddCamera
	RemoveCamera(entity ecs.Entity)

	// Camera returns the camera attached to an entity.
	//
	// Parameters:
	//   - entity: the entity returned by AddCamera
	//
	// Returns:
	//   - camera.Camera: the camera, or nil if the entity is not alive
	Camera(entity ecs.Entity) camera.Camera

	// Count returns the number of camera entities.
	Count() int

	// Update applies one frame of input to every camera entity and collects the frame's uploads.
	// When the viewport source reports camera.ErrMissingPrimaryViewport the frame is skipped and
	// the condition is logged once until a viewport becomes available again. Any other viewport
	// or rig error, such as a *camera.ConfigurationError, is returned and no writes are produced.
	//
	// Parameters:
	//   - input: the frame's summed input
	//   - viewports: the source of the primary viewport size
	//
	// Returns:
	//   - Frame: the frame's gesture and uploads
	//   - error: the viewport or rig error
	Update(input camera.FrameInput, viewports ViewportSource) (Frame, error)

	// SetAspect forwards a new surface aspect ratio to every camera.
	//
	// Parameters:
	//   - aspect: the width / height ratio
	SetAspect(aspect float32)
}

type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	world  *ecs.World
	mapper *ecs.Map2[CameraComponent, FeedComponent]
	filter *ecs.Filter2[CameraComponent, FeedComponent]

	viewportMissing bool
	logger          *slog.Logger
}

var _ Scene = &scene{}

// NewScene creates an active Scene with an empty world.
//
// Parameters:
//   - name: the scene's identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	world := ecs.NewWorld()
	s := &scene{
		mu:     &sync.Mutex{},
		name:   name,
		active: true,
		world:  world,
		mapper: ecs.NewMap2[CameraComponent, FeedComponent](world),
		filter: ecs.NewFilter2[CameraComponent, FeedComponent](world),
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.With("component", "scene", "scene", name)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) AddCamera(cam camera.Camera, feed *material.CameraFeed) ecs.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapper.NewEntity(&CameraComponent{Camera: cam}, &FeedComponent{Feed: feed})
}

func (s *scene) RemoveCamera(entity ecs.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.world.Alive(entity) {
		return
	}
	s.world.RemoveEntity(entity)
}

func (s *scene) Camera(entity ecs.Entity) camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.world.Alive(entity) {
		return nil
	}
	cc, _ := s.mapper.Get(entity)
	return cc.Camera
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	query := s.filter.Query()
	n := query.Count()
	query.Close()
	return n
}

func (s *scene) SetAspect(aspect float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	query := s.filter.Query()
	for query.Next() {
		cc, _ := query.Get()
		cc.Camera.SetAspect(aspect)
	}
}

func (s *scene) Update(input camera.FrameInput, viewports ViewportSource) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := Frame{Gesture: camera.SelectGesture(input)}

	viewport, err := viewports.Viewport()
	if err != nil {
		if errors.Is(err, camera.ErrMissingPrimaryViewport) {
			if !s.viewportMissing {
				s.logger.Warn("skipping camera update", "error", err)
				s.viewportMissing = true
			}
			frame.Skipped = true
			return frame, nil
		}
		return Frame{}, fmt.Errorf("querying viewport: %w", err)
	}
	if s.viewportMissing {
		s.logger.Info("viewport available", "width", viewport.Width, "height", viewport.Height)
		s.viewportMissing = false
	}

	query := s.filter.Query()
	for query.Next() {
		cc, fc := query.Get()
		if _, err := cc.Camera.Update(input, viewport); err != nil {
			entity := query.Entity()
			query.Close()
			return Frame{}, fmt.Errorf("updating camera of entity %v: %w", entity, err)
		}

		uniform := cc.Camera.Uniform()
		frame.Writes = append(frame.Writes, bind_group_provider.BufferWrite{
			Provider: cc.Camera.BindGroupProvider(),
			Binding:  camera.UniformBinding,
			Data:     uniform.Marshal(),
		})
		if fc.Feed != nil {
			frame.Writes = append(frame.Writes, fc.Feed.Push(cc.Camera.Rig().Position()))
		}
	}
	return frame, nil
}
