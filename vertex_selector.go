package osmnet

import (
	"time"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// isValidWay checks if way takes part in the road network
func isValidWay(way *RawWay, cfg *NetworkConfiguration) bool {
	access := way.TagMap.Find("access")
	if access != "" && access != "yes" {
		return false
	}
	if len(way.Nodes) < 2 {
		return false
	}
	return cfg.IsValidHighway(getHighwayType(way.TagMap.Find("highway")))
}

// vertexTable maps selected OSM nodes to dense vertex identifiers. Identifiers are given in order of selection
type vertexTable struct {
	ids      map[osm.NodeID]VertexID
	vertices []Vertex
}

func newVertexTable() *vertexTable {
	return &vertexTable{
		ids:      make(map[osm.NodeID]VertexID),
		vertices: []Vertex{},
	}
}

// selectNode promotes node to vertex. Nodes without location are never selected
func (table *vertexTable) selectNode(node RawNode) {
	if !node.Valid {
		return
	}
	if _, ok := table.ids[node.ID]; ok {
		return
	}
	id := VertexID(len(table.vertices))
	table.ids[node.ID] = id
	table.vertices = append(table.vertices, Vertex{
		ID:        id,
		OSMNodeID: node.ID,
		Geom:      node.Point(),
	})
}

func (table *vertexTable) lookup(nodeID osm.NodeID) (VertexID, bool) {
	id, ok := table.ids[nodeID]
	return id, ok
}

func (table *vertexTable) size() int {
	return len(table.vertices)
}

// selectVertices scans valid ways and selects endpoints of every way plus interior nodes touched more than once.
// Touch counter is shared by all ways, so a node becomes a vertex as soon as a second touch happens
func selectVertices(src Source, cfg *NetworkConfiguration, logger *zap.Logger) (*vertexTable, error) {
	st := time.Now()
	table := newVertexTable()
	touches := make(map[osm.NodeID]uint32)
	validWays := 0
	err := src.ScanWays(func(way *RawWay) error {
		if !isValidWay(way, cfg) {
			return nil
		}
		validWays++
		first := way.Nodes[0]
		last := way.Nodes[len(way.Nodes)-1]
		table.selectNode(first)
		table.selectNode(last)
		touches[first.ID]++
		touches[last.ID]++
		for i := 1; i < len(way.Nodes)-1; i++ {
			node := way.Nodes[i]
			if touches[node.ID] > 0 {
				table.selectNode(node)
			}
			touches[node.ID]++
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan ways")
	}
	logger.Sugar().Infof("Valid ways: %d. Touched nodes: %d. Vertices: %d. Done in %v", validWays, len(touches), table.size(), time.Since(st))
	return table, nil
}
