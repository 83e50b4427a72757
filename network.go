package osmnet

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// GeomFormat is format of geometry column in CSV exports
type GeomFormat uint16

const (
	GEOM_WKT = GeomFormat(iota + 1)
	GEOM_GEOJSON
)

func (iotaIdx GeomFormat) String() string {
	return [...]string{"wkt", "geojson"}[iotaIdx-1]
}

// ParseGeomFormat returns geometry format by its name
func ParseGeomFormat(str string) (GeomFormat, error) {
	switch str {
	case "wkt":
		return GEOM_WKT, nil
	case "geojson":
		return GEOM_GEOJSON, nil
	default:
		return 0, fmt.Errorf("Unknown geometry format '%s'. Expected values: wkt / geojson", str)
	}
}

// Network is the canonical edge table: strongly connected, without parallel edges, with every speed resolved
type Network struct {
	vertices []Vertex
	edges    []*Edge
	Stats    NetworkStats
}

// newNetwork renumbers edges so identifiers form dense range in order of given slice
func newNetwork(vertices []Vertex, edges []*Edge) *Network {
	for i, edge := range edges {
		edge.ID = EdgeID(i)
	}
	return &Network{
		vertices: vertices,
		edges:    edges,
	}
}

// Edges returns edges ordered by identifier
func (net *Network) Edges() []*Edge {
	return net.edges
}

// Vertices returns every selected vertex, including ones discarded by connectivity filtering
func (net *Network) Vertices() []Vertex {
	return net.vertices
}

// Vertex returns vertex by its identifier
func (net *Network) Vertex(id VertexID) (Vertex, bool) {
	if id < 0 || int(id) >= len(net.vertices) {
		return Vertex{}, false
	}
	return net.vertices[id], true
}

// UsedVertices returns vertices referenced by at least one edge, ordered by identifier
func (net *Network) UsedVertices() []Vertex {
	used := make(map[VertexID]struct{})
	for _, edge := range net.edges {
		used[edge.Source] = struct{}{}
		used[edge.Target] = struct{}{}
	}
	ids := make([]VertexID, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]Vertex, 0, len(ids))
	for _, id := range ids {
		result = append(result, net.vertices[id])
	}
	return result
}

// ExportEdgesToCSV writes edge table to ';'-separated file
func (net *Network) ExportEdgesToCSV(fname string, geomFormat GeomFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	err = writer.Write([]string{"index", "source", "target", "length", "speed", "lanes", "main_graph", "allow_od", "capacity", "source_way_id", "name", "road_type", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edge := range net.edges {
		capacity := ""
		if edge.HasCapacity() {
			capacity = fmt.Sprintf("%f", edge.Capacity)
		}
		geomStr := ""
		switch geomFormat {
		case GEOM_GEOJSON:
			geomStr, err = PrepareGeoJSONLinestring(edge.Geom)
			if err != nil {
				return errors.Wrapf(err, "Can't prepare geometry for edge %d", edge.ID)
			}
		default:
			geomStr = PrepareWKTLinestring(edge.Geom)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.ID),
			fmt.Sprintf("%d", edge.Source),
			fmt.Sprintf("%d", edge.Target),
			fmt.Sprintf("%f", edge.LengthMeters),
			fmt.Sprintf("%f", edge.Speed),
			fmt.Sprintf("%d", edge.Lanes),
			fmt.Sprintf("%t", edge.MainGraph),
			fmt.Sprintf("%t", edge.AllowOD),
			capacity,
			fmt.Sprintf("%d", edge.SourceWayID),
			edge.Name,
			fmt.Sprintf("%d", edge.HighwayType.Code()),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush edges")
}

// ExportVerticesToCSV writes vertices used by edges to ';'-separated file
func (net *Network) ExportVerticesToCSV(fname string, geomFormat GeomFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	err = writer.Write([]string{"id", "osm_node_id", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, vertex := range net.UsedVertices() {
		geomStr := ""
		switch geomFormat {
		case GEOM_GEOJSON:
			geomStr, err = PrepareGeoJSONPoint(vertex.Geom)
			if err != nil {
				return errors.Wrapf(err, "Can't prepare geometry for vertex %d", vertex.ID)
			}
		default:
			geomStr = PrepareWKTPoint(vertex.Geom)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", vertex.ID),
			fmt.Sprintf("%d", vertex.OSMNodeID),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush vertices")
}
