package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/roadnet/osmnet"
	"go.uber.org/zap"
)

var (
	osmFileName  = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm.pbf (or *.osm / *.xml) file")
	out          = flag.String("out", "my_graph.csv", "Filename of output edges. Extension defines format: '.csv' or '.geojson'. E.g.: if file name is 'map.csv' and -vertices is set then 'map_vertices.csv' is produced too")
	geomFormat   = flag.String("geomf", "wkt", "Format of output geometry in CSV files. Expected values: wkt / geojson")
	configFile   = flag.String("config", "", "Path to YAML file overriding default lookup tables (optional)")
	withVertices = flag.Bool("vertices", false, "Export vertices used by edges?")
	routingFile  = flag.String("routing", "", "Filename of JSON routing graph [source, target, travel_time_seconds] (optional)")
	mainOnly     = flag.Bool("main-only", false, "Keep main graph edges only in routing graph")
	penalty      = flag.Float64("penalty", osmnet.DEFAULT_NON_MAIN_PENALTY, "Seconds added to travel time of non-main edges in routing graph")
	contract     = flag.String("contract", "", "Prefix of contraction hierarchies files: '<prefix>_vertices.csv' and '<prefix>_shortcuts.csv' (optional)")
	verbose      = flag.Bool("verbose", false, "Verbose (development) logging")
	workers      = flag.Int("workers", 0, "Number of PBF decoding goroutines. Zero means GOMAXPROCS")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("Can't build network", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	format, err := osmnet.ParseGeomFormat(strings.ToLower(*geomFormat))
	if err != nil {
		return err
	}

	cfg := osmnet.DefaultNetworkConfiguration()
	if *configFile != "" {
		cfg, err = osmnet.LoadNetworkConfiguration(*configFile)
		if err != nil {
			return errors.Wrap(err, "Can't load configuration")
		}
	}

	parser := osmnet.NewParser(
		*osmFileName,
		osmnet.WithConfiguration(cfg),
		osmnet.WithLogger(logger),
		osmnet.WithPoolSize(*workers),
	)
	logger.Sugar().Info(parser.String())

	net, err := parser.CreateNetwork()
	if err != nil {
		return err
	}

	if strings.HasSuffix(strings.ToLower(*out), ".geojson") {
		err = net.ExportToGeoJSON(*out)
		if err != nil {
			return errors.Wrap(err, "Can't export edges")
		}
	} else {
		fnamePart := strings.Split(*out, ".csv") // to guarantee proper filename and its extension
		err = net.ExportEdgesToCSV(fnamePart[0]+".csv", format)
		if err != nil {
			return errors.Wrap(err, "Can't export edges")
		}
		if *withVertices {
			err = net.ExportVerticesToCSV(fnamePart[0]+"_vertices.csv", format)
			if err != nil {
				return errors.Wrap(err, "Can't export vertices")
			}
		}
	}

	if *routingFile != "" {
		err = net.ExportRoutingGraph(*routingFile, osmnet.RoutingGraphOptions{
			MainOnly:       *mainOnly,
			NonMainPenalty: *penalty,
		})
		if err != nil {
			return errors.Wrap(err, "Can't export routing graph")
		}
	}

	if *contract != "" {
		logger.Info("Starting contraction process")
		err = net.ExportContractionHierarchies(*contract)
		if err != nil {
			return errors.Wrap(err, "Can't export contraction hierarchies")
		}
	}
	return nil
}
