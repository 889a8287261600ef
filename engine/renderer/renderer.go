// Package renderer draws the simulation's shared memory block as
// GPU-instanced meshes. The adapter owns a mesh registry keyed by string id;
// the integer indices it assigns are embedded in simulation slot records and
// drive per-mesh instance batching at draw time.
package renderer

// Topology selects the primitive topology a mesh is drawn with.
type Topology int8

const (
	TopologyTriangles Topology = iota
	TopologyLines
)

// MeshGeometry is the raw geometry uploaded at mesh registration: interleaved
// position (3 floats) and normal (3 floats) per vertex, 32-bit indices, and
// the primitive topology.
type MeshGeometry struct {
	Vertices []float32
	Indices  []uint32
	Topology Topology
}

// VertexCount returns the number of vertices in the geometry.
//
// Returns:
//   - int: the vertex count
func (g MeshGeometry) VertexCount() int {
	return len(g.Vertices) / 6
}

// RenderAdapter is the contract the scene drives each frame: register meshes
// up front, push the camera matrix, map the simulation memory into instance
// buffers, then render.
//
// The transform block handed to MapTransformBuffer aliases live simulation
// memory; the adapter must finish reading it before returning so the next
// simulation step cannot race the copy.
type RenderAdapter interface {
	// RegisterMesh uploads geometry and assigns it the next mesh index.
	// Re-registering an id returns the existing index without re-upload.
	//
	// Parameters:
	//   - id: the mesh identifier
	//   - geometry: the geometry to upload
	//
	// Returns:
	//   - int: the assigned mesh index
	RegisterMesh(id string, geometry MeshGeometry) int

	// MeshIndex resolves a mesh identifier to its assigned index.
	//
	// Parameters:
	//   - id: the mesh identifier
	//
	// Returns:
	//   - int: the mesh index, or -1 if unregistered
	MeshIndex(id string) int

	// UpdateCamera uploads the combined view-projection matrix.
	//
	// Parameters:
	//   - viewProjection: the column-major view-projection matrix
	UpdateCamera(viewProjection [16]float32)

	// MapTransformBuffer reads entity records from the simulation memory and
	// stages them into per-mesh instance buffers. Inactive slots are skipped.
	//
	// Parameters:
	//   - memory: the raw simulation memory block
	//   - transformsOffset: the byte offset of the first entity record
	//   - entityCount: the number of entity records to scan, from the module's
	//     published layout
	MapTransformBuffer(memory []byte, transformsOffset, entityCount int)

	// Render draws every mesh's staged instances into the current surface.
	//
	// Returns:
	//   - error: non-nil if the surface texture could not be acquired
	Render() error

	// Resize reconfigures the surface and depth attachment.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// Release frees all GPU resources owned by the adapter.
	Release()
}
