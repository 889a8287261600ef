package renderer

import "math"

// CubeGeometry builds a unit cube centered at the origin with per-face
// normals. Scale to size through the instance transform.
//
// Returns:
//   - MeshGeometry: the cube geometry
func CubeGeometry() MeshGeometry {
	faces := [6]struct {
		normal [3]float32
		verts  [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}

	geo := MeshGeometry{
		Vertices: make([]float32, 0, 6*4*6),
		Indices:  make([]uint32, 0, 6*6),
	}
	for f, face := range faces {
		for _, v := range face.verts {
			geo.Vertices = append(geo.Vertices, v[0], v[1], v[2], face.normal[0], face.normal[1], face.normal[2])
		}
		base := uint32(f * 4)
		geo.Indices = append(geo.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return geo
}

// SphereGeometry builds a unit-radius UV sphere centered at the origin.
//
// Parameters:
//   - segments: longitudinal divisions (>= 3)
//   - rings: latitudinal divisions (>= 2)
//
// Returns:
//   - MeshGeometry: the sphere geometry
func SphereGeometry(segments, rings int) MeshGeometry {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	geo := MeshGeometry{
		Vertices: make([]float32, 0, (rings+1)*(segments+1)*6),
		Indices:  make([]uint32, 0, rings*segments*6),
	}
	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		y := float32(math.Cos(phi))
		r := float32(math.Sin(phi))
		for seg := 0; seg <= segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			x := r * float32(math.Cos(theta))
			z := r * float32(math.Sin(theta))
			// Unit sphere: the position doubles as the normal.
			geo.Vertices = append(geo.Vertices, x, y, z, x, y, z)
		}
	}
	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			geo.Indices = append(geo.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return geo
}

// GridGeometry builds a line grid on the XZ plane centered at the origin,
// useful as a ground reference.
//
// Parameters:
//   - halfSize: half the grid width in units
//   - divisions: line count per direction on each side of center
//
// Returns:
//   - MeshGeometry: the grid line geometry
func GridGeometry(halfSize float32, divisions int) MeshGeometry {
	if divisions < 1 {
		divisions = 1
	}

	geo := MeshGeometry{Topology: TopologyLines}
	step := halfSize / float32(divisions)
	idx := uint32(0)
	for i := -divisions; i <= divisions; i++ {
		d := float32(i) * step
		geo.Vertices = append(geo.Vertices,
			d, 0, -halfSize, 0, 1, 0,
			d, 0, halfSize, 0, 1, 0,
			-halfSize, 0, d, 0, 1, 0,
			halfSize, 0, d, 0, 1, 0,
		)
		geo.Indices = append(geo.Indices, idx, idx+1, idx+2, idx+3)
		idx += 4
	}
	return geo
}
