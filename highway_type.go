package osmnet

import (
	"fmt"
)

// HighwayType is the road class of an edge. Its numeric value is the `road_type` code written to the output
type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_TRUNK
	HIGHWAY_PRIMARY
	HIGHWAY_SECONDARY
	HIGHWAY_TERTIARY
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_LIVING_STREET
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_RESIDENTIAL
	HIGHWAY_ROAD
	HIGHWAY_SERVICE
)

func (iotaIdx HighwayType) String() string {
	if iotaIdx < HIGHWAY_MOTORWAY || iotaIdx > HIGHWAY_SERVICE {
		return fmt.Sprintf("unknown(%d)", uint16(iotaIdx))
	}
	return [...]string{"motorway", "trunk", "primary", "secondary", "tertiary", "motorway_link", "trunk_link", "primary_link", "secondary_link", "tertiary_link", "living_street", "unclassified", "residential", "road", "service"}[iotaIdx-1]
}

// Code returns integer code of the road class
func (iotaIdx HighwayType) Code() int {
	return int(iotaIdx)
}

// getHighwayType returns road class for given `highway` tag value. Returns 0 for unknown values
func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return 0
}

// highwayTypeSet is a small membership set over road classes
type highwayTypeSet map[HighwayType]struct{}

func newHighwayTypeSet(types ...HighwayType) highwayTypeSet {
	set := make(highwayTypeSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func (set highwayTypeSet) has(t HighwayType) bool {
	_, ok := set[t]
	return ok
}

var (
	highwaysTypes = map[string]HighwayType{
		"motorway":       HIGHWAY_MOTORWAY,
		"trunk":          HIGHWAY_TRUNK,
		"primary":        HIGHWAY_PRIMARY,
		"secondary":      HIGHWAY_SECONDARY,
		"tertiary":       HIGHWAY_TERTIARY,
		"motorway_link":  HIGHWAY_MOTORWAY_LINK,
		"trunk_link":     HIGHWAY_TRUNK_LINK,
		"primary_link":   HIGHWAY_PRIMARY_LINK,
		"secondary_link": HIGHWAY_SECONDARY_LINK,
		"tertiary_link":  HIGHWAY_TERTIARY_LINK,
		"living_street":  HIGHWAY_LIVING_STREET,
		"unclassified":   HIGHWAY_UNCLASSIFIED,
		"residential":    HIGHWAY_RESIDENTIAL,
		"road":           HIGHWAY_ROAD,
		"service":        HIGHWAY_SERVICE,
	}
)
