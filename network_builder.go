package osmnet

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BuildNetwork runs the whole pipeline over the source:
// urban area, vertex selection, edge segmentation, connectivity filtering, speed imputation, duplicates resolving
func BuildNetwork(src Source, cfg *NetworkConfiguration, logger *zap.Logger) (*Network, error) {
	if cfg == nil {
		cfg = DefaultNetworkConfiguration()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	st := time.Now()

	urban, err := BuildUrbanArea(src, cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build urban area")
	}

	vertices, err := selectVertices(src, cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't select vertices")
	}

	edges, err := buildEdges(src, vertices, cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build edges")
	}

	edges, verticesDropped := filterLargestComponent(edges, vertices.size(), logger)

	_, err = imputeSpeeds(edges, urban, cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't impute speeds")
	}

	edges, duplicatesRemoved := resolveDuplicates(edges, logger)

	if len(edges) == 0 {
		return nil, errors.New("Network is empty after filtering")
	}

	net := newNetwork(vertices.vertices, edges)
	net.Stats = collectStats(net.edges)
	net.Stats.DuplicatesRemoved = duplicatesRemoved
	net.Stats.VerticesDropped = verticesDropped

	logger.Sugar().Infof("Edges: %d. Main graph edges: %d. Duplicates removed: %d. Vertices dropped: %d. Done in %v",
		net.Stats.EdgesNum, net.Stats.MainEdgesNum, duplicatesRemoved, verticesDropped, time.Since(st))
	logger.Sugar().Info(net.Stats.String())
	return net, nil
}
