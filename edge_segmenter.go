package osmnet

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// edgeSegmenter splits valid ways into directed edges between consecutive vertices
type edgeSegmenter struct {
	cfg      *NetworkConfiguration
	vertices *vertexTable
	edges    []*Edge

	waysWithoutVertices int
	selfLoops           int
}

func buildEdges(src Source, vertices *vertexTable, cfg *NetworkConfiguration, logger *zap.Logger) ([]*Edge, error) {
	st := time.Now()
	segmenter := &edgeSegmenter{
		cfg:      cfg,
		vertices: vertices,
		edges:    []*Edge{},
	}
	err := src.ScanWays(func(way *RawWay) error {
		if !isValidWay(way, cfg) {
			return nil
		}
		segmenter.addWay(way)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan ways")
	}
	if segmenter.waysWithoutVertices > 0 {
		logger.Sugar().Warnf("Ways without any vertex: %d", segmenter.waysWithoutVertices)
	}
	logger.Sugar().Infof("Edges: %d (self-loops skipped: %d). Done in %v", len(segmenter.edges), segmenter.selfLoops, time.Since(st))
	return segmenter.edges, nil
}

func (segmenter *edgeSegmenter) addWay(way *RawWay) {
	source := -1
	for i, node := range way.Nodes {
		if _, ok := segmenter.vertices.lookup(node.ID); ok {
			source = i
			break
		}
	}
	if source < 0 {
		segmenter.waysWithoutVertices++
		return
	}
	attrs := resolveWayAttributes(way, segmenter.cfg)
	for target := source + 1; target < len(way.Nodes); target++ {
		if _, ok := segmenter.vertices.lookup(way.Nodes[target].ID); !ok {
			continue
		}
		segmenter.addSegment(way, source, target, &attrs)
		source = target
	}
}

// addSegment emits forward edge for way.Nodes[source:target+1] and backward one if way is bidirectional
func (segmenter *edgeSegmenter) addSegment(way *RawWay, source, target int, attrs *wayAttributes) {
	sourceID, _ := segmenter.vertices.lookup(way.Nodes[source].ID)
	targetID, _ := segmenter.vertices.lookup(way.Nodes[target].ID)
	if sourceID == targetID {
		segmenter.selfLoops++
		return
	}

	geom := make(orb.LineString, 0, target-source+1)
	for i := source; i <= target; i++ {
		if way.Nodes[i].Valid {
			geom = append(geom, way.Nodes[i].Point())
		}
	}
	lengthMeters := getSphericalLength(geom)

	forward := segmenter.newEdge(way, attrs)
	forward.Source = sourceID
	forward.Target = targetID
	forward.Geom = geom
	forward.LengthMeters = lengthMeters
	forward.Lanes = attrs.lanesForward
	forward.Speed = attrs.speedForward
	segmenter.edges = append(segmenter.edges, forward)
	if attrs.oneway {
		return
	}

	backward := segmenter.newEdge(way, attrs)
	backward.Source = targetID
	backward.Target = sourceID
	backward.Geom = reverseLine(geom)
	backward.LengthMeters = lengthMeters
	backward.Lanes = attrs.lanesBackward
	backward.Speed = attrs.speedBackward
	segmenter.edges = append(segmenter.edges, backward)
}

func (segmenter *edgeSegmenter) newEdge(way *RawWay, attrs *wayAttributes) *Edge {
	return &Edge{
		ID:          EdgeID(len(segmenter.edges)),
		Name:        attrs.name,
		Capacity:    attrs.capacity,
		SourceWayID: way.ID,
		HighwayType: attrs.highwayType,
		MainGraph:   segmenter.cfg.IsMainHighway(attrs.highwayType),
		AllowOD:     segmenter.cfg.IsODAllowed(attrs.highwayType),
	}
}
