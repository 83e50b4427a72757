package osmnet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmgeojson"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// OSMFileSource is Source over OSM file (PBF or XML). The file is decoded once, then records are replayed from memory
type OSMFileSource struct {
	ways  []*RawWay
	areas []*Area
}

// ScanAreas calls fn for every landuse area. Stops on first error
func (src *OSMFileSource) ScanAreas(fn func(area *Area) error) error {
	for _, area := range src.areas {
		if err := fn(area); err != nil {
			return err
		}
	}
	return nil
}

// ScanWays calls fn for every way with `highway` tag in order of the file. Stops on first error
func (src *OSMFileSource) ScanWays(fn func(way *RawWay) error) error {
	for _, way := range src.ways {
		if err := fn(way); err != nil {
			return err
		}
	}
	return nil
}

// newScanner guesses file extension and prepares correct scanner
func newScanner(file *os.File, filename string, poolSize int) (OSMScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), file), nil
	case ".pbf", ".osm.pbf":
		return osmpbf.New(context.Background(), file, poolSize), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// rewind seeks file to start and prepares new scanner
func rewind(file *os.File, filename string, poolSize int) (OSMScanner, error) {
	_, err := file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking")
	}
	return newScanner(file, filename, poolSize)
}

func skipNodes(scanner OSMScanner) {
	if pbfScanner, ok := scanner.(*osmpbf.Scanner); ok {
		pbfScanner.SkipNodes = true
	}
}

func isClosedWay(way *osm.Way) bool {
	return len(way.Nodes) >= 4 && way.Nodes[0].ID == way.Nodes[len(way.Nodes)-1].ID
}

func isValidLocation(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// NewOSMFileSource reads ways with `highway` tag, landuse areas and locations of their nodes
func NewOSMFileSource(filename string, poolSize int, logger *zap.Logger) (*OSMFileSource, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	defer file.Close()

	/* Process ways and relations */
	st := time.Now()
	ways := []*RawWay{}
	landuseWays := make(map[osm.WayID]*osm.Way)
	landuseRelations := []*osm.Relation{}
	memberWays := make(map[osm.WayID]struct{})
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scanner, err := newScanner(file, filename, poolSize)
		if err != nil {
			return nil, err
		}
		skipNodes(scanner)
		for scanner.Scan() {
			switch obj := scanner.Object().(type) {
			case *osm.Way:
				if obj.Tags.Find("highway") != "" {
					preparedWay := &RawWay{
						ID:     obj.ID,
						Nodes:  make([]RawNode, len(obj.Nodes)),
						TagMap: make(osm.Tags, len(obj.Tags)),
					}
					copy(preparedWay.TagMap, obj.Tags)
					for i, node := range obj.Nodes {
						preparedWay.Nodes[i].ID = node.ID
						nodesSeen[node.ID] = struct{}{}
					}
					ways = append(ways, preparedWay)
				}
				if obj.Tags.Find("landuse") != "" && isClosedWay(obj) {
					landuseWays[obj.ID] = obj
					for _, node := range obj.Nodes {
						nodesSeen[node.ID] = struct{}{}
					}
				}
			case *osm.Relation:
				if obj.Tags.Find("landuse") == "" || obj.Tags.Find("type") != "multipolygon" {
					continue
				}
				landuseRelations = append(landuseRelations, obj)
				for _, member := range obj.Members {
					if member.Type == osm.TypeWay {
						memberWays[osm.WayID(member.Ref)] = struct{}{}
					}
				}
			}
		}
		err = scanner.Err()
		scanner.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Scanner error on ways")
		}
	}
	logger.Sugar().Infof("Highway ways: %d. Landuse ways: %d. Landuse relations: %d. Done in %v", len(ways), len(landuseWays), len(landuseRelations), time.Since(st))

	/* Process members of landuse relations */
	st = time.Now()
	relationWays := make(map[osm.WayID]*osm.Way)
	for wayID := range memberWays {
		if way, ok := landuseWays[wayID]; ok {
			relationWays[wayID] = way
		}
	}
	if len(relationWays) < len(memberWays) {
		scanner, err := rewind(file, filename, poolSize)
		if err != nil {
			return nil, errors.Wrap(err, "Can't prepare scanner for relation members")
		}
		skipNodes(scanner)
		for scanner.Scan() {
			way, ok := scanner.Object().(*osm.Way)
			if !ok {
				continue
			}
			if _, ok := memberWays[way.ID]; !ok {
				continue
			}
			if _, ok := relationWays[way.ID]; ok {
				continue
			}
			relationWays[way.ID] = way
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
			}
		}
		err = scanner.Err()
		scanner.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Scanner error on relation members")
		}
		logger.Sugar().Infof("Members of landuse relations: %d. Done in %v", len(relationWays), time.Since(st))
	}

	/* Process nodes */
	st = time.Now()
	locations := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	{
		scanner, err := rewind(file, filename, poolSize)
		if err != nil {
			return nil, errors.Wrap(err, "Can't prepare scanner for nodes")
		}
		for scanner.Scan() {
			node, ok := scanner.Object().(*osm.Node)
			if !ok {
				continue
			}
			if _, ok := nodesSeen[node.ID]; !ok {
				continue
			}
			if !isValidLocation(node.Lon, node.Lat) {
				continue
			}
			locations[node.ID] = orb.Point{node.Lon, node.Lat}
		}
		err = scanner.Err()
		scanner.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Scanner error on nodes")
		}
	}
	missingNodes := len(nodesSeen) - len(locations)
	if missingNodes > 0 {
		logger.Sugar().Warnf("Nodes without valid location: %d", missingNodes)
	}
	logger.Sugar().Infof("Nodes: %d. Done in %v", len(locations), time.Since(st))

	for _, way := range ways {
		for i := range way.Nodes {
			if pt, ok := locations[way.Nodes[i].ID]; ok {
				way.Nodes[i].Lon = pt.Lon()
				way.Nodes[i].Lat = pt.Lat()
				way.Nodes[i].Valid = true
			}
		}
	}

	st = time.Now()
	areas, err := assembleAreas(landuseWays, relationWays, landuseRelations, locations)
	if err != nil {
		return nil, errors.Wrap(err, "Can't assemble landuse areas")
	}
	logger.Sugar().Infof("Landuse areas: %d. Done in %v", len(areas), time.Since(st))

	return &OSMFileSource{
		ways:  ways,
		areas: areas,
	}, nil
}

// assembleAreas turns closed landuse ways and landuse multipolygon relations into polygons
func assembleAreas(landuseWays, relationWays map[osm.WayID]*osm.Way, relations []*osm.Relation, locations map[osm.NodeID]orb.Point) ([]*Area, error) {
	data := &osm.OSM{}
	nodesAdded := make(map[osm.NodeID]struct{})
	addWay := func(way *osm.Way) {
		for i, node := range way.Nodes {
			pt, ok := locations[node.ID]
			if !ok {
				continue
			}
			way.Nodes[i].Lon = pt.Lon()
			way.Nodes[i].Lat = pt.Lat()
			if _, ok := nodesAdded[node.ID]; ok {
				continue
			}
			nodesAdded[node.ID] = struct{}{}
			data.Nodes = append(data.Nodes, &osm.Node{ID: node.ID, Lon: pt.Lon(), Lat: pt.Lat(), Visible: true})
		}
		data.Ways = append(data.Ways, way)
	}
	// Keep output deterministic
	wayIDs := make([]osm.WayID, 0, len(landuseWays)+len(relationWays))
	for wayID := range landuseWays {
		wayIDs = append(wayIDs, wayID)
	}
	for wayID := range relationWays {
		if _, ok := landuseWays[wayID]; !ok {
			wayIDs = append(wayIDs, wayID)
		}
	}
	sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })
	for _, wayID := range wayIDs {
		if way, ok := landuseWays[wayID]; ok {
			addWay(way)
			continue
		}
		addWay(relationWays[wayID])
	}
	data.Relations = append(data.Relations, relations...)

	fc, err := osmgeojson.Convert(data, osmgeojson.NoMeta(true), osmgeojson.NoRelationMembership(true))
	if err != nil {
		return nil, err
	}
	areas := make([]*Area, 0, len(fc.Features))
	for _, feature := range fc.Features {
		var geom orb.MultiPolygon
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			geom = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			geom = g
		default:
			continue
		}
		tags, _ := feature.Properties["tags"].(map[string]string)
		if tags["landuse"] == "" {
			continue
		}
		areas = append(areas, &Area{
			ID:     fmt.Sprintf("%v", feature.ID),
			TagMap: tagsFromMap(tags),
			Rings:  len(geom),
			Geom:   geom,
		})
	}
	return areas, nil
}

func tagsFromMap(tags map[string]string) osm.Tags {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	result := make(osm.Tags, 0, len(keys))
	for _, key := range keys {
		result = append(result, osm.Tag{Key: key, Value: tags[key]})
	}
	return result
}
