package osmnet

import (
	"time"

	"go.uber.org/zap"
)

type vertexPair struct {
	source VertexID
	target VertexID
}

// resolveDuplicates keeps exactly one edge for every ordered (source, target) pair. Priority:
// (i) main graph edge, (ii) largest capacity, (iii) smallest free-flow travel time.
// Speeds have to be resolved already. Order of surviving edges is preserved
func resolveDuplicates(edges []*Edge, logger *zap.Logger) ([]*Edge, int) {
	st := time.Now()
	groups := make(map[vertexPair][]*Edge, len(edges))
	for _, edge := range edges {
		pair := vertexPair{edge.Source, edge.Target}
		groups[pair] = append(groups[pair], edge)
	}
	removed := make(map[*Edge]struct{})
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for _, edge := range discardedDuplicates(group) {
			removed[edge] = struct{}{}
		}
	}
	if len(removed) == 0 {
		logger.Sugar().Infof("No duplicate edges. Done in %v", time.Since(st))
		return edges, 0
	}
	logger.Sugar().Warnf("Removing %d duplicate edges", len(removed))
	result := make([]*Edge, 0, len(edges)-len(removed))
	for _, edge := range edges {
		if _, ok := removed[edge]; ok {
			continue
		}
		result = append(result, edge)
	}
	logger.Sugar().Infof("Duplicates resolved. Done in %v", time.Since(st))
	return result, len(removed)
}

// discardedDuplicates returns every edge of the group except the survivor
func discardedDuplicates(group []*Edge) []*Edge {
	discarded := []*Edge{}
	mains := []*Edge{}
	secondaries := []*Edge{}
	for _, edge := range group {
		if edge.MainGraph {
			mains = append(mains, edge)
		} else {
			secondaries = append(secondaries, edge)
		}
	}
	candidates := group
	if len(mains) == 1 {
		return secondaries
	}
	if len(mains) > 0 && len(secondaries) > 0 {
		discarded = append(discarded, secondaries...)
		candidates = mains
	}

	// Edges without capacity lose to any edge with capacity
	maxCapacity := capacityNone
	for _, edge := range candidates {
		if edge.HasCapacity() && edge.Capacity > maxCapacity {
			maxCapacity = edge.Capacity
		}
	}
	best := []*Edge{}
	for _, edge := range candidates {
		if edge.Capacity == maxCapacity {
			best = append(best, edge)
		} else {
			discarded = append(discarded, edge)
		}
	}
	if len(best) < 2 {
		return discarded
	}

	fastest := 0
	for i := 1; i < len(best); i++ {
		if best[i].FreeFlowTravelTime() < best[fastest].FreeFlowTravelTime() {
			fastest = i
		}
	}
	for i, edge := range best {
		if i != fastest {
			discarded = append(discarded, edge)
		}
	}
	return discarded
}
