package osmnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// RawWay is OSM way with resolved locations of its nodes
type RawWay struct {
	ID     osm.WayID
	Nodes  []RawNode
	TagMap osm.Tags
}

// Area is a polygon (possibly with multiple outer rings) tagged with `landuse`
type Area struct {
	// E.g. 'way/42' or 'relation/7'
	ID     string
	TagMap osm.Tags
	// Number of outer rings
	Rings int
	Geom  orb.MultiPolygon
}
