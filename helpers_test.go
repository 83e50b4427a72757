package osmnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

const (
	testLon  = 2.35
	testLat  = 48.85
	testStep = 0.001
)

func testNode(id int64, lon, lat float64) RawNode {
	return RawNode{ID: osm.NodeID(id), Lon: lon, Lat: lat, Valid: true}
}

// gridNode returns node laid on regular grid with step ~100 meters
func gridNode(id int64, col, row int) RawNode {
	return testNode(id, testLon+float64(col)*testStep, testLat+float64(row)*testStep)
}

func testWay(id int64, tags map[string]string, nodes ...RawNode) *RawWay {
	return &RawWay{
		ID:     osm.WayID(id),
		Nodes:  nodes,
		TagMap: tagsFromMap(tags),
	}
}

// testSquare returns closed ring with given lower left corner and side (degrees)
func testSquare(lon, lat, side float64) orb.Ring {
	return orb.Ring{
		{lon, lat},
		{lon + side, lat},
		{lon + side, lat + side},
		{lon, lat + side},
		{lon, lat},
	}
}

func testUrbanArea(landuse string, polygon orb.Polygon) *Area {
	return &Area{
		ID:     "way/1",
		TagMap: tagsFromMap(map[string]string{"landuse": landuse}),
		Rings:  1,
		Geom:   orb.MultiPolygon{polygon},
	}
}

// testGridSource is 3x3 grid of ~100 meters cells:
//
//	7 --- 8 --- 9
//	|           |
//	4     5     6
//	|     ^     |
//	1 --- 2 --- 3
//	 \ 10 /
//
// Row 0 and row 2 are residential, columns 0 and 2 are primary. Way 5 is oneway dead end 2 -> 5,
// way 6 (5 - 8) is not a road, way 7 is secondary 1 - 10 - 2 parallel to residential 1 - 2
func testGridSource() *MemorySource {
	return &MemorySource{
		Ways: []*RawWay{
			testWay(1, map[string]string{"highway": "residential"}, gridNode(1, 0, 0), gridNode(2, 1, 0), gridNode(3, 2, 0)),
			testWay(2, map[string]string{"highway": "residential"}, gridNode(7, 0, 2), gridNode(8, 1, 2), gridNode(9, 2, 2)),
			testWay(3, map[string]string{"highway": "primary", "maxspeed": "70"}, gridNode(1, 0, 0), gridNode(4, 0, 1), gridNode(7, 0, 2)),
			testWay(4, map[string]string{"highway": "primary"}, gridNode(3, 2, 0), gridNode(6, 2, 1), gridNode(9, 2, 2)),
			testWay(5, map[string]string{"highway": "tertiary", "oneway": "yes"}, gridNode(2, 1, 0), gridNode(5, 1, 1)),
			testWay(6, map[string]string{"highway": "footway"}, gridNode(5, 1, 1), gridNode(8, 1, 2)),
			testWay(7, map[string]string{"highway": "secondary"}, gridNode(1, 0, 0), testNode(10, testLon+0.5*testStep, testLat-0.5*testStep), gridNode(2, 1, 0)),
		},
	}
}
