package osmnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// RawNode is a reference to OSM node in a way, with its location when the node is present in the extract
type RawNode struct {
	ID    osm.NodeID
	Lon   float64
	Lat   float64
	Valid bool
}

// Point returns location of the node
func (node RawNode) Point() orb.Point {
	return orb.Point{node.Lon, node.Lat}
}

type VertexID int

// Vertex is a raw node promoted to a graph vertex
type Vertex struct {
	ID        VertexID
	OSMNodeID osm.NodeID
	Geom      orb.Point
}
