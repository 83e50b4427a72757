package osmnet

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/quadtree"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UrbanArea is the union of urban landuse polygons expanded by a fixed margin.
// Union is kept implicit: a point belongs to the area if it belongs to any buffered polygon.
// Polygons are stored in Web Mercator and the margin is scaled by latitude, so it stays metric
type UrbanArea struct {
	polygons      []*urbanPolygon
	index         *quadtree.Quadtree
	bufferMeters  float64
	maxHalfWidth  float64
	maxHalfHeight float64
}

type urbanPolygon struct {
	geom  orb.Polygon
	bound orb.Bound
}

// Point is needed to satisfy orb.Pointer interface
func (poly *urbanPolygon) Point() orb.Point {
	return poly.bound.Center()
}

// isUrbanArea checks if area should be treated as urban one
func isUrbanArea(area *Area, cfg *NetworkConfiguration) bool {
	return cfg.IsUrbanLanduse(area.TagMap.Find("landuse")) && area.Rings > 0
}

// BuildUrbanArea collects urban areas from the source. No urban areas is not an error: every query returns false then
func BuildUrbanArea(src Source, cfg *NetworkConfiguration, logger *zap.Logger) (*UrbanArea, error) {
	st := time.Now()
	polygons := []*urbanPolygon{}
	areasNum := 0
	err := src.ScanAreas(func(area *Area) error {
		if !isUrbanArea(area, cfg) {
			return nil
		}
		areasNum++
		for _, polygon := range area.Geom {
			if len(polygon) == 0 || len(polygon[0]) < 3 {
				continue
			}
			geom := project.Polygon(polygon.Clone(), project.WGS84.ToMercator)
			polygons = append(polygons, &urbanPolygon{
				geom:  geom,
				bound: geom.Bound(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan areas")
	}
	urban, err := newUrbanArea(polygons, cfg.UrbanBufferMeters())
	if err != nil {
		return nil, errors.Wrap(err, "Can't index urban areas")
	}
	logger.Sugar().Infof("Urban areas: %d (polygons: %d). Done in %v", areasNum, len(polygons), time.Since(st))
	return urban, nil
}

func newUrbanArea(polygons []*urbanPolygon, bufferMeters float64) (*UrbanArea, error) {
	urban := &UrbanArea{
		polygons:     polygons,
		bufferMeters: bufferMeters,
	}
	if len(polygons) == 0 {
		return urban, nil
	}
	bound := orb.Bound{Min: polygons[0].Point(), Max: polygons[0].Point()}
	for _, poly := range polygons {
		bound = bound.Extend(poly.Point())
		halfWidth := (poly.bound.Max[0] - poly.bound.Min[0]) / 2.0
		halfHeight := (poly.bound.Max[1] - poly.bound.Min[1]) / 2.0
		if halfWidth > urban.maxHalfWidth {
			urban.maxHalfWidth = halfWidth
		}
		if halfHeight > urban.maxHalfHeight {
			urban.maxHalfHeight = halfHeight
		}
	}
	urban.index = quadtree.New(bound)
	for _, poly := range polygons {
		err := urban.index.Add(poly)
		if err != nil {
			return nil, err
		}
	}
	return urban, nil
}

// IsEmpty checks if there are no urban polygons at all
func (urban *UrbanArea) IsEmpty() bool {
	return urban == nil || len(urban.polygons) == 0
}

// Contains checks if given point (WGS84) lies within buffered urban area
func (urban *UrbanArea) Contains(pt orb.Point) bool {
	if urban.IsEmpty() {
		return false
	}
	mercatorPt := project.Point(pt, project.WGS84.ToMercator)
	margin := urban.bufferMeters * mercatorScale(pt.Lat())
	query := orb.Bound{
		Min: orb.Point{mercatorPt[0] - urban.maxHalfWidth - margin, mercatorPt[1] - urban.maxHalfHeight - margin},
		Max: orb.Point{mercatorPt[0] + urban.maxHalfWidth + margin, mercatorPt[1] + urban.maxHalfHeight + margin},
	}
	candidates := urban.index.InBound(nil, query)
	for _, candidate := range candidates {
		poly := candidate.(*urbanPolygon)
		if !poly.bound.Pad(margin).Contains(mercatorPt) {
			continue
		}
		if planar.PolygonContains(poly.geom, mercatorPt) {
			return true
		}
		if margin > 0 && planar.DistanceFrom(poly.geom, mercatorPt) <= margin {
			return true
		}
	}
	return false
}

// ContainsLine checks if every point of given line (WGS84) lies within buffered urban area
func (urban *UrbanArea) ContainsLine(line orb.LineString) bool {
	if len(line) == 0 || urban.IsEmpty() {
		return false
	}
	for _, pt := range line {
		if !urban.Contains(pt) {
			return false
		}
	}
	return true
}
