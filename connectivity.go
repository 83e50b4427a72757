package osmnet

import (
	"time"

	"go.uber.org/zap"
)

// adjacency is forward star representation of directed graph over dense vertex identifiers
type adjacency struct {
	offsets []int
	targets []VertexID
}

func newAdjacency(verticesNum int, edges []*Edge) *adjacency {
	adj := &adjacency{
		offsets: make([]int, verticesNum+1),
		targets: make([]VertexID, len(edges)),
	}
	for _, edge := range edges {
		adj.offsets[edge.Source+1]++
	}
	for i := 1; i <= verticesNum; i++ {
		adj.offsets[i] += adj.offsets[i-1]
	}
	// Fill keeping order of edges for each source vertex
	pos := make([]int, verticesNum)
	copy(pos, adj.offsets[:verticesNum])
	for _, edge := range edges {
		adj.targets[pos[edge.Source]] = edge.Target
		pos[edge.Source]++
	}
	return adj
}

func (adj *adjacency) neighbours(v VertexID) []VertexID {
	return adj.targets[adj.offsets[v]:adj.offsets[v+1]]
}

type tarjanFrame struct {
	vertex VertexID
	next   int
}

// stronglyConnectedComponents labels every active vertex with its component (Tarjan's algorithm without recursion).
// Inactive vertices get -1. Components are numbered in order they are found, roots are visited in increasing order
func stronglyConnectedComponents(adj *adjacency, active []bool) ([]int, []int) {
	verticesNum := len(active)
	index := make([]int, verticesNum)
	lowlink := make([]int, verticesNum)
	onStack := make([]bool, verticesNum)
	component := make([]int, verticesNum)
	for i := range index {
		index[i] = -1
		component[i] = -1
	}
	sizes := []int{}
	stack := []VertexID{}
	callStack := []tarjanFrame{}
	counter := 0

	visit := func(v VertexID) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true
		callStack = append(callStack, tarjanFrame{vertex: v, next: adj.offsets[v]})
	}

	for root := 0; root < verticesNum; root++ {
		if !active[root] || index[root] != -1 {
			continue
		}
		visit(VertexID(root))
		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]
			v := top.vertex
			if top.next < adj.offsets[v+1] {
				w := adj.targets[top.next]
				top.next++
				if index[w] == -1 {
					visit(w)
				} else if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
				continue
			}
			if lowlink[v] == index[v] {
				componentID := len(sizes)
				size := 0
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					component[w] = componentID
					size++
					if w == v {
						break
					}
				}
				sizes = append(sizes, size)
			}
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1].vertex
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
		}
	}
	return component, sizes
}

// filterLargestComponent keeps edges of the largest strongly connected component only.
// Returns filtered edges and number of discarded vertices (vertices without edges are not counted)
func filterLargestComponent(edges []*Edge, verticesNum int, logger *zap.Logger) ([]*Edge, int) {
	st := time.Now()
	if len(edges) == 0 {
		return edges, 0
	}
	active := make([]bool, verticesNum)
	for _, edge := range edges {
		active[edge.Source] = true
		active[edge.Target] = true
	}
	graphVertices := 0
	for _, isActive := range active {
		if isActive {
			graphVertices++
		}
	}
	component, sizes := stronglyConnectedComponents(newAdjacency(verticesNum, edges), active)
	largest := 0
	for i, size := range sizes {
		if size > sizes[largest] {
			largest = i
		}
	}
	dropped := graphVertices - sizes[largest]
	if dropped == 0 {
		logger.Sugar().Infof("Graph is strongly connected (%d vertices). Done in %v", graphVertices, time.Since(st))
		return edges, 0
	}
	logger.Sugar().Warnf("Discarding %d vertices disconnected from the main graph", dropped)
	filtered := make([]*Edge, 0, len(edges))
	for _, edge := range edges {
		if component[edge.Source] == largest && component[edge.Target] == largest {
			filtered = append(filtered, edge)
		}
	}
	logger.Sugar().Infof("Largest strongly connected component: %d vertices, %d edges. Done in %v", sizes[largest], len(filtered), time.Since(st))
	return filtered, dropped
}
