package osmnet

import (
	"testing"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

func TestUrbanAreaEmpty(t *testing.T) {
	urban, err := BuildUrbanArea(&MemorySource{}, DefaultNetworkConfiguration(), zap.NewNop())
	if err != nil {
		t.Error(err)
		return
	}
	if !urban.IsEmpty() {
		t.Errorf("Urban area should be empty")
	}
	if urban.Contains(orb.Point{testLon, testLat}) {
		t.Errorf("Empty urban area should not contain any point")
	}
	var nilArea *UrbanArea
	if nilArea.ContainsLine(orb.LineString{{testLon, testLat}, {testLon + testStep, testLat}}) {
		t.Errorf("Nil urban area should not contain any line")
	}
}

func TestUrbanAreaContains(t *testing.T) {
	src := &MemorySource{
		Areas: []*Area{
			testUrbanArea("residential", orb.Polygon{testSquare(testLon, testLat, 10*testStep)}),
			testUrbanArea("forest", orb.Polygon{testSquare(testLon+0.1, testLat, 10*testStep)}),
		},
	}
	urban, err := BuildUrbanArea(src, DefaultNetworkConfiguration(), zap.NewNop())
	if err != nil {
		t.Error(err)
		return
	}
	if urban.IsEmpty() {
		t.Errorf("Urban area should not be empty")
		return
	}
	inside := orb.Point{testLon + 5*testStep, testLat + 5*testStep}
	if !urban.Contains(inside) {
		t.Errorf("Point %v should be inside urban area", inside)
	}
	// ~30 meters east of the polygon
	withinBuffer := orb.Point{testLon + 10*testStep + 0.0004, testLat + 5*testStep}
	if !urban.Contains(withinBuffer) {
		t.Errorf("Point %v should be within buffer of urban area", withinBuffer)
	}
	// ~100 meters east of the polygon
	outsideBuffer := orb.Point{testLon + 10*testStep + 0.00137, testLat + 5*testStep}
	if urban.Contains(outsideBuffer) {
		t.Errorf("Point %v should be outside of urban area", outsideBuffer)
	}
	forest := orb.Point{testLon + 0.1 + 5*testStep, testLat + 5*testStep}
	if urban.Contains(forest) {
		t.Errorf("Point %v lies in non-urban landuse and should be outside of urban area", forest)
	}

	line := orb.LineString{inside, withinBuffer}
	if !urban.ContainsLine(line) {
		t.Errorf("Line %v should be inside urban area", line)
	}
	line = orb.LineString{inside, outsideBuffer}
	if urban.ContainsLine(line) {
		t.Errorf("Line %v should not be inside urban area", line)
	}
}

func TestUrbanAreaHole(t *testing.T) {
	polygon := orb.Polygon{
		testSquare(testLon, testLat, 10*testStep),
		testSquare(testLon+2*testStep, testLat+2*testStep, 6*testStep),
	}
	src := &MemorySource{
		Areas: []*Area{testUrbanArea("industrial", polygon)},
	}
	urban, err := BuildUrbanArea(src, DefaultNetworkConfiguration(), zap.NewNop())
	if err != nil {
		t.Error(err)
		return
	}
	center := orb.Point{testLon + 5*testStep, testLat + 5*testStep}
	if urban.Contains(center) {
		t.Errorf("Point %v lies deep inside the hole and should be outside of urban area", center)
	}
	ring := orb.Point{testLon + testStep, testLat + 5*testStep}
	if !urban.Contains(ring) {
		t.Errorf("Point %v should be inside urban area", ring)
	}
}

func TestUrbanAreaZeroBuffer(t *testing.T) {
	cfg, err := ParseNetworkConfiguration([]byte("urban_buffer_meters: 0\n"))
	if err != nil {
		t.Error(err)
		return
	}
	src := &MemorySource{
		Areas: []*Area{testUrbanArea("retail", orb.Polygon{testSquare(testLon, testLat, 10*testStep)})},
	}
	urban, err := BuildUrbanArea(src, cfg, zap.NewNop())
	if err != nil {
		t.Error(err)
		return
	}
	withinBuffer := orb.Point{testLon + 10*testStep + 0.0004, testLat + 5*testStep}
	if urban.Contains(withinBuffer) {
		t.Errorf("Point %v should be outside of urban area without buffer", withinBuffer)
	}
}
