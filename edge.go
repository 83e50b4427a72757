package osmnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

const (
	// speedUnresolved marks speed which has not been derived from tags and has to be imputed
	speedUnresolved = -1.0
	// capacityNone marks road class without capacity
	capacityNone = -1.0
)

type EdgeID int

// Edge is a directed road segment between two vertices
type Edge struct {
	Name         string
	Geom         orb.LineString
	LengthMeters float64
	// km/h
	Speed float64
	// PCE per hour per lane
	Capacity    float64
	Lanes       int
	ID          EdgeID
	Source      VertexID
	Target      VertexID
	SourceWayID osm.WayID
	HighwayType HighwayType
	MainGraph   bool
	AllowOD     bool
	Urban       bool
	// Speed was taken from urban / rural defaults
	SpeedImputed bool
}

// HasCapacity checks if edge's road class has capacity defined
func (edge *Edge) HasCapacity() bool {
	return edge.Capacity >= 0
}

// HasSpeed checks if speed has been resolved either from tags or by imputation
func (edge *Edge) HasSpeed() bool {
	return edge.Speed > 0
}

// FreeFlowTravelTime returns travel time (seconds) in absence of congestion
func (edge *Edge) FreeFlowTravelTime() float64 {
	return edge.LengthMeters / (edge.Speed / 3.6)
}
