package osmnet

import (
	"testing"

	"go.uber.org/zap"
)

func testEdges(pairs ...[2]VertexID) []*Edge {
	edges := make([]*Edge, 0, len(pairs))
	for i, pair := range pairs {
		edges = append(edges, &Edge{
			ID:           EdgeID(i),
			Source:       pair[0],
			Target:       pair[1],
			LengthMeters: 100,
			Speed:        50,
			Capacity:     capacityNone,
		})
	}
	return edges
}

func TestStronglyConnectedComponents(t *testing.T) {
	edges := testEdges(
		[2]VertexID{0, 1}, [2]VertexID{1, 0},
		[2]VertexID{1, 2},
		[2]VertexID{2, 3}, [2]VertexID{3, 4}, [2]VertexID{4, 2},
	)
	active := []bool{true, true, true, true, true}
	component, sizes := stronglyConnectedComponents(newAdjacency(5, edges), active)
	if len(sizes) != 2 {
		t.Errorf("Number of components should be %d, but got %d", 2, len(sizes))
		return
	}
	if component[0] != component[1] {
		t.Errorf("Vertices 0 and 1 should be in the same component")
	}
	if component[2] != component[3] || component[3] != component[4] {
		t.Errorf("Vertices 2, 3 and 4 should be in the same component")
	}
	if component[0] == component[2] {
		t.Errorf("Vertices 0 and 2 should be in different components")
	}
}

func TestFilterLargestComponent(t *testing.T) {
	edges := testEdges(
		[2]VertexID{0, 1}, [2]VertexID{1, 0},
		[2]VertexID{1, 2},
		[2]VertexID{2, 3}, [2]VertexID{3, 4}, [2]VertexID{4, 2},
	)
	// Vertex 5 has no edges at all
	filtered, dropped := filterLargestComponent(edges, 6, zap.NewNop())
	if dropped != 2 {
		t.Errorf("Number of dropped vertices should be %d, but got %d", 2, dropped)
	}
	if len(filtered) != 3 {
		t.Errorf("Number of edges should be %d, but got %d", 3, len(filtered))
		return
	}
	expected := []EdgeID{3, 4, 5}
	for i, edge := range filtered {
		if edge.ID != expected[i] {
			t.Errorf("Edge on position %d should be %d, but got %d", i, expected[i], edge.ID)
		}
	}
}

func TestFilterLargestComponentTie(t *testing.T) {
	edges := testEdges(
		[2]VertexID{0, 1}, [2]VertexID{1, 0},
		[2]VertexID{1, 2},
		[2]VertexID{2, 3}, [2]VertexID{3, 2},
	)
	filtered, dropped := filterLargestComponent(edges, 4, zap.NewNop())
	if dropped != 2 {
		t.Errorf("Number of dropped vertices should be %d, but got %d", 2, dropped)
	}
	// Component {2, 3} is completed first
	if len(filtered) != 2 || filtered[0].ID != 3 || filtered[1].ID != 4 {
		t.Errorf("Edges of component {2, 3} should be kept")
	}
}

func TestFilterLargestComponentConnected(t *testing.T) {
	edges := testEdges([2]VertexID{0, 1}, [2]VertexID{1, 2}, [2]VertexID{2, 0})
	filtered, dropped := filterLargestComponent(edges, 3, zap.NewNop())
	if dropped != 0 {
		t.Errorf("Number of dropped vertices should be %d, but got %d", 0, dropped)
	}
	if len(filtered) != 3 {
		t.Errorf("Number of edges should be %d, but got %d", 3, len(filtered))
	}
	filtered, dropped = filterLargestComponent([]*Edge{}, 0, zap.NewNop())
	if len(filtered) != 0 || dropped != 0 {
		t.Errorf("Empty graph should stay empty")
	}
}

func TestFilterLargestComponentChain(t *testing.T) {
	// Deep chain with back edge to the first vertex
	const n = 100000
	pairs := make([][2]VertexID, 0, n)
	for i := 0; i < n-1; i++ {
		pairs = append(pairs, [2]VertexID{VertexID(i), VertexID(i + 1)})
	}
	pairs = append(pairs, [2]VertexID{VertexID(n - 1), 0})
	filtered, dropped := filterLargestComponent(testEdges(pairs...), n, zap.NewNop())
	if dropped != 0 || len(filtered) != n {
		t.Errorf("Cycle of %d vertices should be kept entirely, but got %d edges and %d dropped vertices", n, len(filtered), dropped)
	}
}
