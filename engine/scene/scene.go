// Package scene orchestrates the per-frame lifecycle: input, component
// updates, the simulation step, camera sync, and render dispatch. A scene owns
// an insertion-ordered registry of game objects, one physics bridge, one
// camera, and the active input controller.
package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/kinesis-go/engine/camera"
	"github.com/Carmen-Shannon/kinesis-go/engine/game_object"
	"github.com/Carmen-Shannon/kinesis-go/engine/input"
	"github.com/Carmen-Shannon/kinesis-go/engine/physics"
	"github.com/Carmen-Shannon/kinesis-go/engine/renderer"
)

type scene struct {
	mu sync.RWMutex

	name   string
	active bool

	nextID  uint64
	objects map[uint64]game_object.GameObject
	order   []uint64

	cam      camera.Camera
	bridge   physics.Bridge
	adapter  renderer.RenderAdapter
	controls input.Controller

	initialized bool
	started     bool
}

// Scene is the engine-facing orchestrator. Objects added before Init are
// queued on the bridge and flushed when the simulation comes up; objects added
// afterwards are registered immediately.
//
// Update runs the frame phases in a fixed order: active input controller,
// component pass, simulation step with transform exchange, a second component
// pass so behaviors observe post-step state, then camera matrix sync. Render
// dispatches the resulting frame through the render adapter.
type Scene interface {
	game_object.SceneLookup

	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Active returns whether the scene participates in update and render.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the scene participates in update and render.
	//
	// Parameters:
	//   - active: true to activate
	SetActive(active bool)

	// Init binds the render adapter, resolves every object's mesh index
	// against it, and initializes the physics bridge, flushing queued
	// registrations. Awake is cascaded over all objects afterwards.
	//
	// Parameters:
	//   - adapter: the render adapter, or nil for headless operation
	//
	// Returns:
	//   - error: non-nil if the simulation module failed to initialize
	Init(adapter renderer.RenderAdapter) error

	// Add inserts an object into the scene, assigns it an id, and registers
	// it with the physics bridge. After Init the object is awoken (and
	// started, once the scene has started) immediately.
	//
	// Parameters:
	//   - obj: the object to add
	Add(obj game_object.GameObject)

	// Remove detaches an object and all of its descendants from the scene,
	// unregisters their simulation entities, and destroys their components.
	//
	// Parameters:
	//   - obj: the object to remove
	Remove(obj game_object.GameObject)

	// RemoveByName removes the first object with the given name, with the
	// same cascade as Remove.
	//
	// Parameters:
	//   - name: the object name
	//
	// Returns:
	//   - bool: false if no object carries the name
	RemoveByName(name string) bool

	// Object returns the object with the given id, or nil.
	//
	// Parameters:
	//   - id: the object id
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Object(id uint64) game_object.GameObject

	// Objects returns all objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Camera returns the scene camera, or nil.
	//
	// Returns:
	//   - camera.Camera: the camera or nil
	Camera() camera.Camera

	// Bridge returns the physics bridge.
	//
	// Returns:
	//   - physics.Bridge: the bridge
	Bridge() physics.Bridge

	// Renderer returns the bound render adapter, or nil before Init.
	//
	// Returns:
	//   - renderer.RenderAdapter: the adapter or nil
	Renderer() renderer.RenderAdapter

	// InputController returns the active input controller, or nil.
	//
	// Returns:
	//   - input.Controller: the active controller or nil
	InputController() input.Controller

	// SetInputController swaps the active input controller. The previous
	// controller stops receiving key events immediately; pass nil to detach.
	//
	// Parameters:
	//   - ctrl: the controller to activate or nil
	SetInputController(ctrl input.Controller)

	// HandleKey forwards a key transition to the active input controller.
	//
	// Parameters:
	//   - key: the key code
	//   - pressed: true for press or repeat, false for release
	HandleKey(key uint32, pressed bool)

	// Start cascades Start over every object. Idempotent; a no-op before
	// Init. Hosts that skip it get the same cascade on the first Update.
	Start()

	// Update advances the scene by one frame: input, components, simulation,
	// components again, camera. No-op while the scene is inactive.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// Render uploads the camera matrix, stages the simulation memory into
	// instance buffers, and draws the frame. No-op without an adapter.
	//
	// Returns:
	//   - error: non-nil if the frame could not be drawn
	Render() error
}

var _ Scene = &scene{}
var _ game_object.SceneLookup = &scene{}

// NewScene creates a Scene configured with the given options. A physics
// bridge is required; panics without one.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		name:    "scene",
		active:  true,
		nextID:  1,
		objects: make(map[uint64]game_object.GameObject),
	}
	for _, option := range options {
		option(s)
	}
	if s.bridge == nil {
		panic("scene: a physics bridge is required")
	}
	for _, id := range s.order {
		s.bridge.Register(s.objects[id])
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Init(adapter renderer.RenderAdapter) error {
	s.mu.Lock()
	s.adapter = adapter
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, obj := range snapshot {
		if mr := obj.MeshRenderer(); mr != nil {
			mr.ResolveMeshIndex(adapter)
		}
	}

	if err := s.bridge.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene %s: %w", s.name, err)
	}

	for _, obj := range snapshot {
		obj.Awake()
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	return nil
}

func (s *scene) Add(obj game_object.GameObject) {
	s.mu.Lock()
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	if _, exists := s.objects[obj.ID()]; exists {
		s.mu.Unlock()
		return
	}
	s.objects[obj.ID()] = obj
	s.order = append(s.order, obj.ID())
	initialized := s.initialized
	started := s.started
	adapter := s.adapter
	s.mu.Unlock()

	obj.SetScene(s)
	if initialized {
		if mr := obj.MeshRenderer(); mr != nil {
			mr.ResolveMeshIndex(adapter)
		}
	}
	s.bridge.Register(obj)
	if initialized {
		obj.Awake()
	}
	if started {
		obj.Start()
	}
}

func (s *scene) Remove(obj game_object.GameObject) {
	// Children go first so the tree never holds orphaned simulation slots.
	for _, child := range append([]game_object.GameObject(nil), obj.Children()...) {
		s.Remove(child)
	}

	s.mu.Lock()
	if _, exists := s.objects[obj.ID()]; !exists {
		s.mu.Unlock()
		return
	}
	delete(s.objects, obj.ID())
	for i, id := range s.order {
		if id == obj.ID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	obj.SetParent(nil)
	s.bridge.Unregister(obj)
	obj.SetScene(nil)
	obj.Destroy()
}

func (s *scene) RemoveByName(name string) bool {
	obj := s.FindByName(name)
	if obj == nil {
		return false
	}
	s.Remove(obj)
	return true
}

func (s *scene) Object(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[id]
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *scene) FindByName(name string) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if obj := s.objects[id]; obj.Name() == name {
			return obj
		}
	}
	return nil
}

func (s *scene) FindByTag(tag string) []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []game_object.GameObject
	for _, id := range s.order {
		if obj := s.objects[id]; obj.Tag() == tag {
			matches = append(matches, obj)
		}
	}
	return matches
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Bridge() physics.Bridge {
	return s.bridge
}

func (s *scene) Renderer() renderer.RenderAdapter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adapter
}

func (s *scene) InputController() input.Controller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controls
}

func (s *scene) SetInputController(ctrl input.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls = ctrl
}

func (s *scene) HandleKey(key uint32, pressed bool) {
	s.mu.RLock()
	ctrl := s.controls
	s.mu.RUnlock()
	if ctrl != nil {
		ctrl.HandleInput(key, pressed)
	}
}

func (s *scene) Start() {
	s.mu.Lock()
	if !s.initialized || s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, obj := range snapshot {
		obj.Start()
	}
}

func (s *scene) Update(deltaTime float32) {
	if !s.Active() {
		return
	}
	s.Start()

	s.mu.Lock()
	ctrl := s.controls
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if ctrl != nil {
		ctrl.Update(deltaTime)
	}

	for _, obj := range snapshot {
		obj.Update(deltaTime)
	}

	s.bridge.Update(deltaTime)

	// Second component pass: behaviors observe post-step transforms and
	// velocities within the same frame.
	for _, obj := range snapshot {
		obj.Update(deltaTime)
	}

	if s.cam != nil {
		s.cam.Update()
	}
}

func (s *scene) Render() error {
	s.mu.RLock()
	adapter := s.adapter
	active := s.active
	s.mu.RUnlock()
	if adapter == nil || !active {
		return nil
	}

	if s.cam != nil {
		adapter.UpdateCamera(s.cam.ViewProjectionMatrix())
	}

	mod := s.bridge.Module()
	layout := mod.Layout()
	adapter.MapTransformBuffer(mod.Memory(), int(layout.TransformsOffset), int(layout.MaxEntities))

	return adapter.Render()
}

// snapshotLocked returns the objects in insertion order. Caller holds at
// least a read lock. The snapshot lets update passes run without the scene
// lock, so components are free to call back into FindByName and FindByTag.
func (s *scene) snapshotLocked() []game_object.GameObject {
	snapshot := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, s.objects[id])
	}
	return snapshot
}
