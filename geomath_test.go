package osmnet

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestGreatCircleDistance(t *testing.T) {
	p1 := orb.Point{37.6417350769043, 55.751849391735284}
	p2 := orb.Point{37.668514251708984, 55.73261980350401}
	res := 2716.94 // meters
	gcd := greatCircleDistance(p1, p2)
	if math.Abs(gcd-res) > 0.5 {
		t.Errorf("Great circle dist must be %f, but got %f", res, gcd)
	}
}

func TestGreatCircleDistanceSamePoint(t *testing.T) {
	p := orb.Point{2.3522, 48.8566}
	if d := greatCircleDistance(p, p); d != 0 {
		t.Errorf("Distance between same points must be 0, but got %f", d)
	}
}

func TestSphericalLength(t *testing.T) {
	// One degree of latitude along a meridian
	line := orb.LineString{{2.0, 48.0}, {2.0, 48.5}, {2.0, 49.0}}
	correctLength := earthRadius * math.Pi / 180.0
	length := getSphericalLength(line)
	if math.Abs(length-correctLength) > 1e-3 {
		t.Errorf("Length must be %f, but got %f", correctLength, length)
	}
	if l := getSphericalLength(orb.LineString{{2.0, 48.0}}); l != 0 {
		t.Errorf("Length of single point line must be 0, but got %f", l)
	}
}

func TestReverseLine(t *testing.T) {
	line := orb.LineString{{1, 1}, {2, 2}, {3, 3}}
	reversed := reverseLine(line)
	if !reversed.Equal(orb.LineString{{3, 3}, {2, 2}, {1, 1}}) {
		t.Errorf("Reversed line is wrong: %v", reversed)
	}
	if !line.Equal(orb.LineString{{1, 1}, {2, 2}, {3, 3}}) {
		t.Errorf("Source line must be untouched, but got %v", line)
	}
}

func TestMercatorScale(t *testing.T) {
	if s := mercatorScale(0); math.Abs(s-1.0) > 1e-12 {
		t.Errorf("Scale at equator must be 1, but got %f", s)
	}
	if s := mercatorScale(60); math.Abs(s-2.0) > 1e-9 {
		t.Errorf("Scale at 60 degrees must be 2, but got %f", s)
	}
}
