package game_object

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/kinesis-go/engine/component"
)

type gameObject struct {
	id      uint64
	name    string
	tag     string
	enabled atomic.Bool

	components map[component.Kind]component.Component
	order      []component.Kind

	parent   GameObject
	children []GameObject

	scene SceneLookup
}

// SceneLookup is the narrow slice of the owning scene a game object may use to
// find other objects. It is set when the object is added to a scene and
// cleared on removal, so behaviors can locate collaborators without holding a
// full scene reference.
type SceneLookup interface {
	// FindByName returns the first object with the given name, or nil.
	//
	// Parameters:
	//   - name: the name to search for
	//
	// Returns:
	//   - GameObject: the matching object or nil
	FindByName(name string) GameObject

	// FindByTag returns all objects carrying the given tag, in registration
	// order.
	//
	// Parameters:
	//   - tag: the tag to search for
	//
	// Returns:
	//   - []GameObject: the matching objects, possibly empty
	FindByTag(tag string) []GameObject
}

// GameObject defines the interface for a scene entity: a named, taggable node
// in the scene tree that owns at most one component per kind. All spatial,
// render, and physics state lives in the components; the object itself is
// identity plus composition.
type GameObject interface {
	// ID returns the object's unique identifier, assigned by the scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Tag returns the object's tag, or the empty string if untagged.
	//
	// Returns:
	//   - string: the tag
	Tag() string

	// Enabled returns whether this object participates in update and render
	// passes.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object participates in update and render
	// passes.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// AddComponent attaches a component. Panics if a component of the same
	// kind is already attached.
	//
	// Parameters:
	//   - c: the component to attach
	AddComponent(c component.Component)

	// Component returns the attached component of the given kind, or nil.
	//
	// Parameters:
	//   - kind: the component kind to look up
	//
	// Returns:
	//   - component.Component: the component or nil
	Component(kind component.Kind) component.Component

	// Transform returns the attached Transform, or nil.
	//
	// Returns:
	//   - *component.Transform: the transform or nil
	Transform() *component.Transform

	// MeshRenderer returns the attached MeshRenderer, or nil.
	//
	// Returns:
	//   - *component.MeshRenderer: the renderer descriptor or nil
	MeshRenderer() *component.MeshRenderer

	// RigidBody returns the attached RigidBody, or nil.
	//
	// Returns:
	//   - *component.RigidBody: the body or nil
	RigidBody() *component.RigidBody

	// Awake invokes Awake on every attached component in attach order.
	Awake()

	// Start invokes Start on every attached component in attach order.
	Start()

	// Update invokes Update on every attached component in attach order.
	// Disabled objects are skipped.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// Destroy invokes Destroy on every attached component in attach order and
	// clears the component set.
	Destroy()

	// Parent returns the object's parent in the scene tree, or nil for roots.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns the object's direct children in attach order. The
	// returned slice is shared; callers must not mutate it.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// SetParent reparents the object, detaching it from any previous parent
	// first. Pass nil to make the object a root.
	//
	// Parameters:
	//   - parent: the new parent or nil
	SetParent(parent GameObject)

	// Scene returns the lookup handle of the owning scene, or nil if the
	// object is not in a scene.
	//
	// Returns:
	//   - SceneLookup: the scene lookup or nil
	Scene() SceneLookup

	// SetScene sets the owning scene's lookup handle. Called by the scene on
	// add and removal.
	//
	// Parameters:
	//   - s: the scene lookup or nil
	SetScene(s SceneLookup)

	addChild(child GameObject)
	removeChild(child GameObject)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		components: make(map[component.Kind]component.Component),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Tag() string {
	return g.tag
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) AddComponent(c component.Component) {
	kind := c.Kind()
	if _, exists := g.components[kind]; exists {
		panic(fmt.Sprintf("game_object: component kind %d already attached to %q", kind, g.name))
	}
	g.components[kind] = c
	g.order = append(g.order, kind)
}

func (g *gameObject) Component(kind component.Kind) component.Component {
	return g.components[kind]
}

func (g *gameObject) Transform() *component.Transform {
	if c, ok := g.components[component.KindTransform].(*component.Transform); ok {
		return c
	}
	return nil
}

func (g *gameObject) MeshRenderer() *component.MeshRenderer {
	if c, ok := g.components[component.KindMeshRenderer].(*component.MeshRenderer); ok {
		return c
	}
	return nil
}

func (g *gameObject) RigidBody() *component.RigidBody {
	if c, ok := g.components[component.KindRigidBody].(*component.RigidBody); ok {
		return c
	}
	return nil
}

func (g *gameObject) Awake() {
	for _, kind := range g.order {
		g.components[kind].Awake()
	}
}

func (g *gameObject) Start() {
	for _, kind := range g.order {
		g.components[kind].Start()
	}
}

func (g *gameObject) Update(deltaTime float32) {
	if !g.enabled.Load() {
		return
	}
	for _, kind := range g.order {
		g.components[kind].Update(deltaTime)
	}
}

func (g *gameObject) Destroy() {
	for _, kind := range g.order {
		g.components[kind].Destroy()
	}
	g.components = make(map[component.Kind]component.Component)
	g.order = nil
}

func (g *gameObject) Parent() GameObject {
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	return g.children
}

func (g *gameObject) SetParent(parent GameObject) {
	if g.parent == parent {
		return
	}
	if g.parent != nil {
		g.parent.removeChild(g)
	}
	g.parent = parent
	if parent != nil {
		parent.addChild(g)
	}
}

func (g *gameObject) Scene() SceneLookup {
	return g.scene
}

func (g *gameObject) SetScene(s SceneLookup) {
	g.scene = s
}

func (g *gameObject) addChild(child GameObject) {
	g.children = append(g.children, child)
}

func (g *gameObject) removeChild(child GameObject) {
	for i, c := range g.children {
		if c == child {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return
		}
	}
}
