package osmnet

import (
	"math"
	"strconv"
	"strings"
)

// wayAttributes are direction dependent attributes of a way, shared by every segment of it
type wayAttributes struct {
	name          string
	highwayType   HighwayType
	speedForward  float64
	speedBackward float64
	capacity      float64
	lanesForward  int
	lanesBackward int
	oneway        bool
}

// resolveWayAttributes flattens tags of the valid way. Malformed numeric values are treated as absent ones
func resolveWayAttributes(way *RawWay, cfg *NetworkConfiguration) wayAttributes {
	attrs := wayAttributes{
		highwayType:   getHighwayType(way.TagMap.Find("highway")),
		speedForward:  speedUnresolved,
		speedBackward: speedUnresolved,
		capacity:      capacityNone,
	}
	attrs.name = truncateName(way.TagMap.Find("ref"), cfg.NameMaxLength())
	attrs.oneway = way.TagMap.Find("oneway") == "yes" || way.TagMap.Find("junction") == "roundabout"

	// Country specific codes take precedence over numeric value
	speed := speedUnresolved
	maxSpeed := way.TagMap.Find("maxspeed")
	if codeSpeed, ok := cfg.SpeedCode(maxSpeed); ok {
		speed = codeSpeed
	} else if numericSpeed, ok := parseSpeed(maxSpeed); ok {
		speed = numericSpeed
	}
	attrs.speedForward = speed
	if !attrs.oneway {
		attrs.speedBackward = speed
		if forwardSpeed, ok := parseSpeed(way.TagMap.Find("maxspeed:forward")); ok {
			attrs.speedForward = forwardSpeed
		}
		if backwardSpeed, ok := parseSpeed(way.TagMap.Find("maxspeed:backward")); ok {
			attrs.speedBackward = backwardSpeed
		}
	}

	defaultLanes := cfg.DefaultLanes(attrs.highwayType)
	attrs.lanesForward = defaultLanes
	attrs.lanesBackward = defaultLanes
	if attrs.oneway {
		if lanes, ok := parseLanes(way.TagMap.Find("lanes")); ok {
			attrs.lanesForward = clampLanes(lanes)
		}
	} else {
		if lanes, ok := directedLanes(way, "lanes:forward"); ok {
			attrs.lanesForward = clampLanes(lanes)
		}
		if lanes, ok := directedLanes(way, "lanes:backward"); ok {
			attrs.lanesBackward = clampLanes(lanes)
		}
	}

	if capacity, ok := cfg.Capacity(attrs.highwayType); ok {
		attrs.capacity = capacity
	}
	return attrs
}

// directedLanes returns lanes for one direction of bidirectional way:
// non-zero direction specific tag, otherwise a half of total lanes
func directedLanes(way *RawWay, directionTag string) (int, bool) {
	if lanes, ok := parseLanes(way.TagMap.Find(directionTag)); ok && lanes != 0 {
		return lanes, true
	}
	if lanes, ok := parseLanes(way.TagMap.Find("lanes")); ok {
		return lanes / 2, true
	}
	return 0, false
}

func clampLanes(lanes int) int {
	if lanes < 1 {
		return 1
	}
	return lanes
}

// parseSpeed returns numeric `maxspeed` value. Zero, negative and non-finite values are rejected
func parseSpeed(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	speed, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	if speed <= 0 || math.IsInf(speed, 0) || math.IsNaN(speed) {
		return 0, false
	}
	return speed, true
}

func parseLanes(str string) (int, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	lanes, err := strconv.Atoi(str)
	if err != nil {
		return 0, false
	}
	return lanes, true
}

// truncateName cuts name to maxLength characters, the last three of them being "..."
func truncateName(name string, maxLength int) string {
	runes := []rune(name)
	if len(runes) <= maxLength {
		return name
	}
	return string(runes[:maxLength-3]) + "..."
}
