package osmnet

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// imputeSpeeds flags urban edges and fills unresolved speeds with urban or rural default of the road class.
// Returns number of imputed edges
func imputeSpeeds(edges []*Edge, urban *UrbanArea, cfg *NetworkConfiguration, logger *zap.Logger) (int, error) {
	st := time.Now()
	imputed := 0
	urbanEdges := 0
	for _, edge := range edges {
		edge.Urban = urban.ContainsLine(edge.Geom)
		if edge.Urban {
			urbanEdges++
		}
		if edge.HasSpeed() {
			continue
		}
		speed, ok := cfg.DefaultSpeed(edge.HighwayType, edge.Urban)
		if !ok {
			return imputed, fmt.Errorf("No default speed for '%s' (urban: %t). Edge ID: '%d'. Way ID: '%d'", edge.HighwayType, edge.Urban, edge.ID, edge.SourceWayID)
		}
		edge.Speed = speed
		edge.SpeedImputed = true
		imputed++
	}
	logger.Sugar().Infof("Urban edges: %d. Imputed speeds: %d. Done in %v", urbanEdges, imputed, time.Since(st))
	return imputed, nil
}
