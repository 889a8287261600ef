package renderer

import (
	"math"
	"testing"
)

func TestCubeGeometry(t *testing.T) {
	geo := CubeGeometry()
	if geo.VertexCount() != 24 {
		t.Fatalf("expected 24 vertices, got %d", geo.VertexCount())
	}
	if len(geo.Indices) != 36 {
		t.Fatalf("expected 36 indices, got %d", len(geo.Indices))
	}
	if geo.Topology != TopologyTriangles {
		t.Fatalf("expected triangle topology")
	}

	// Unit cube: every coordinate is +-0.5.
	for i := 0; i < len(geo.Vertices); i += 6 {
		for axis := 0; axis < 3; axis++ {
			v := geo.Vertices[i+axis]
			if v != 0.5 && v != -0.5 {
				t.Fatalf("vertex coordinate %v outside unit cube", v)
			}
		}
	}
}

func TestSphereGeometryOnUnitRadius(t *testing.T) {
	geo := SphereGeometry(12, 8)
	if geo.VertexCount() == 0 || len(geo.Indices) == 0 {
		t.Fatalf("expected non-empty sphere geometry")
	}
	for i := 0; i < len(geo.Vertices); i += 6 {
		x, y, z := geo.Vertices[i], geo.Vertices[i+1], geo.Vertices[i+2]
		r := math.Sqrt(float64(x*x + y*y + z*z))
		if math.Abs(r-1) > 1e-5 {
			t.Fatalf("vertex at radius %v, expected 1", r)
		}
	}
	// Indices must reference valid vertices.
	for _, idx := range geo.Indices {
		if int(idx) >= geo.VertexCount() {
			t.Fatalf("index %d out of range for %d vertices", idx, geo.VertexCount())
		}
	}
}

func TestGridGeometryIsLines(t *testing.T) {
	geo := GridGeometry(10, 5)
	if geo.Topology != TopologyLines {
		t.Fatalf("expected line topology")
	}
	if len(geo.Indices)%2 != 0 {
		t.Fatalf("expected even index count for line list, got %d", len(geo.Indices))
	}
	// 2 lines per division step in each direction, 11 steps each.
	if geo.VertexCount() != 44 {
		t.Fatalf("expected 44 vertices, got %d", geo.VertexCount())
	}
}
