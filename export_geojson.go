package osmnet

import (
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// ExportToGeoJSON writes edges as FeatureCollection of LineStrings
func (net *Network) ExportToGeoJSON(fname string) error {
	fc := geojson.NewFeatureCollection()
	for _, edge := range net.edges {
		feature := geojson.NewFeature(edge.Geom)
		feature.Properties["index"] = int(edge.ID)
		feature.Properties["source"] = int(edge.Source)
		feature.Properties["target"] = int(edge.Target)
		feature.Properties["length"] = edge.LengthMeters
		feature.Properties["speed"] = edge.Speed
		feature.Properties["lanes"] = edge.Lanes
		feature.Properties["main_graph"] = edge.MainGraph
		feature.Properties["allow_od"] = edge.AllowOD
		if edge.HasCapacity() {
			feature.Properties["capacity"] = edge.Capacity
		} else {
			feature.Properties["capacity"] = nil
		}
		feature.Properties["source_way_id"] = int64(edge.SourceWayID)
		feature.Properties["name"] = edge.Name
		feature.Properties["road_type"] = edge.HighwayType.Code()
		feature.Properties["urban"] = edge.Urban
		fc.Append(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal feature collection")
	}
	err = os.WriteFile(fname, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write file")
	}
	return nil
}
