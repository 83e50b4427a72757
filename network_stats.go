package osmnet

import (
	"fmt"
	"sort"
	"strings"
)

const lanesHistogramMax = 5

// NetworkStats is a summary of the final network
type NetworkStats struct {
	EdgesNum          int
	MainEdgesNum      int
	DuplicatesRemoved int
	VerticesDropped   int
	ImputedSpeeds     int
	UrbanEdges        int
	TotalLengthKm     float64
	MainLengthKm      float64
	EdgesByHighway    map[HighwayType]int
	// Index i holds number of edges with i+1 lanes, the last bucket holds 5 and more
	LanesHistogram [lanesHistogramMax]int
}

func collectStats(edges []*Edge) NetworkStats {
	stats := NetworkStats{
		EdgesNum:       len(edges),
		EdgesByHighway: make(map[HighwayType]int),
	}
	for _, edge := range edges {
		stats.TotalLengthKm += edge.LengthMeters / 1000.0
		if edge.MainGraph {
			stats.MainEdgesNum++
			stats.MainLengthKm += edge.LengthMeters / 1000.0
		}
		if edge.Urban {
			stats.UrbanEdges++
		}
		if edge.SpeedImputed {
			stats.ImputedSpeeds++
		}
		stats.EdgesByHighway[edge.HighwayType]++
		bucket := edge.Lanes
		if bucket > lanesHistogramMax {
			bucket = lanesHistogramMax
		}
		if bucket < 1 {
			bucket = 1
		}
		stats.LanesHistogram[bucket-1]++
	}
	return stats
}

func (stats NetworkStats) String() string {
	highways := make([]HighwayType, 0, len(stats.EdgesByHighway))
	for ht := range stats.EdgesByHighway {
		highways = append(highways, ht)
	}
	sort.Slice(highways, func(i, j int) bool { return highways[i] < highways[j] })
	byHighway := make([]string, 0, len(highways))
	for _, ht := range highways {
		byHighway = append(byHighway, fmt.Sprintf("%s=%d", ht, stats.EdgesByHighway[ht]))
	}
	lanes := make([]string, 0, lanesHistogramMax)
	for i, count := range stats.LanesHistogram {
		label := fmt.Sprintf("%d", i+1)
		if i == lanesHistogramMax-1 {
			label += "+"
		}
		lanes = append(lanes, fmt.Sprintf("%s=%d", label, count))
	}
	return fmt.Sprintf(`
Network statistics:
	edges: %d
	main graph edges: %d
	duplicates removed: %d
	vertices dropped: %d
	imputed speeds: %d
	urban edges: %d
	total length: %.3f km
	main graph length: %.3f km
	edges by road type: %s
	lanes: %s
	`,
		stats.EdgesNum,
		stats.MainEdgesNum,
		stats.DuplicatesRemoved,
		stats.VerticesDropped,
		stats.ImputedSpeeds,
		stats.UrbanEdges,
		stats.TotalLengthKm,
		stats.MainLengthKm,
		strings.Join(byHighway, ","),
		strings.Join(lanes, ","),
	)
}
