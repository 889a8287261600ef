package component

// RenderMode selects the primitive topology an entity is drawn with.
type RenderMode int8

const (
	RenderTriangles RenderMode = iota
	RenderLines
)

// MeshRenderer describes how an entity is drawn: which registered mesh it
// instances, its material, color, and primitive mode. Entities without a
// MeshRenderer never receive a simulation slot.
//
// The mesh index is resolved lazily against the render adapter's mesh
// registry and must be resolved before the owning entity is registered with
// the physics bridge, because the simulation-side slot embeds the mesh index
// for render dispatch.
type MeshRenderer struct {
	Base

	MeshID     string
	MaterialID int32
	Color      [4]float32

	// Mode is tracked per entity ahead of renderer support; draw topology
	// currently comes from the registered geometry.
	Mode RenderMode

	meshIndex int
}

var _ Component = &MeshRenderer{}

// NewMeshRenderer creates a MeshRenderer for the given mesh identifier with
// an unresolved mesh index and opaque white color.
//
// Parameters:
//   - meshID: the mesh identifier to resolve against the render adapter
//
// Returns:
//   - *MeshRenderer: the newly created renderer descriptor
func NewMeshRenderer(meshID string) *MeshRenderer {
	return &MeshRenderer{
		MeshID:    meshID,
		Color:     [4]float32{1, 1, 1, 1},
		meshIndex: -1,
	}
}

func (m *MeshRenderer) Kind() Kind {
	return KindMeshRenderer
}

// MeshIndex returns the resolved mesh index, or -1 if unresolved.
//
// Returns:
//   - int: the mesh index or -1
func (m *MeshRenderer) MeshIndex() int {
	return m.meshIndex
}

// ResolveMeshIndex looks the mesh identifier up in the given registry and
// caches the resulting index. Resolution is idempotent; an already-resolved
// index is kept.
//
// Parameters:
//   - registry: the render adapter's mesh registry
//
// Returns:
//   - bool: true if the index is resolved after the call
func (m *MeshRenderer) ResolveMeshIndex(registry MeshIndexer) bool {
	if m.meshIndex >= 0 {
		return true
	}
	if registry == nil {
		return false
	}
	if idx := registry.MeshIndex(m.MeshID); idx >= 0 {
		m.meshIndex = idx
	}
	return m.meshIndex >= 0
}
