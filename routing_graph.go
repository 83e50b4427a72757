package osmnet

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// DEFAULT_NON_MAIN_PENALTY is extra travel time (seconds) for edges outside of the main graph
const DEFAULT_NON_MAIN_PENALTY = 5.0

// RoutingGraphOptions controls which edges make it to the routing graph and how they are weighted
type RoutingGraphOptions struct {
	// Keep main graph edges only
	MainOnly bool
	// Seconds added to travel time of every non-main edge
	NonMainPenalty float64
}

// RoutingArc is (source, target, travel time in seconds)
type RoutingArc [3]float64

// RoutingArcs returns weighted arcs of the network ordered by edge identifier
func (net *Network) RoutingArcs(opts RoutingGraphOptions) []RoutingArc {
	arcs := make([]RoutingArc, 0, len(net.edges))
	for _, edge := range net.edges {
		if opts.MainOnly && !edge.MainGraph {
			continue
		}
		cost := edge.FreeFlowTravelTime()
		if !edge.MainGraph {
			cost += opts.NonMainPenalty
		}
		arcs = append(arcs, RoutingArc{float64(edge.Source), float64(edge.Target), cost})
	}
	return arcs
}

// ExportRoutingGraph writes JSON array of [source, target, travel_time_seconds]
func (net *Network) ExportRoutingGraph(fname string, opts RoutingGraphOptions) error {
	b, err := json.Marshal(net.RoutingArcs(opts))
	if err != nil {
		return errors.Wrap(err, "Can't marshal routing graph")
	}
	err = os.WriteFile(fname, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write file")
	}
	return nil
}

// ContractionHierarchies prepares contracted graph weighted by free-flow travel time
func (net *Network) ContractionHierarchies() (*ch.Graph, error) {
	graph := ch.Graph{}
	for _, edge := range net.edges {
		source := int64(edge.Source)
		target := int64(edge.Target)
		err := graph.CreateVertex(source)
		if err != nil {
			return nil, errors.Wrap(err, "Can't create source vertex")
		}
		err = graph.CreateVertex(target)
		if err != nil {
			return nil, errors.Wrap(err, "Can't create target vertex")
		}
		err = graph.AddEdge(source, target, edge.FreeFlowTravelTime())
		if err != nil {
			return nil, errors.Wrap(err, "Can't wrap source and target vertices as edge")
		}
	}
	graph.PrepareContractionHierarchies()
	return &graph, nil
}

// ExportContractionHierarchies writes 'prefix_vertices.csv' (vertex_id;order_pos;importance) and 'prefix_shortcuts.csv'
func (net *Network) ExportContractionHierarchies(prefix string) error {
	graph, err := net.ContractionHierarchies()
	if err != nil {
		return errors.Wrap(err, "Can't prepare contraction hierarchies")
	}

	file, err := os.Create(fmt.Sprintf("%s_vertices.csv", prefix))
	if err != nil {
		return errors.Wrap(err, "Can't create vertices file")
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	err = writer.Write([]string{"vertex_id", "order_pos", "importance"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i := range graph.Vertices {
		err = writer.Write([]string{
			fmt.Sprintf("%d", graph.Vertices[i].Label),
			fmt.Sprintf("%d", graph.Vertices[i].OrderPos()),
			fmt.Sprintf("%d", graph.Vertices[i].Importance()),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return errors.Wrap(err, "Can't flush vertices")
	}

	err = graph.ExportShortcutsToFile(fmt.Sprintf("%s_shortcuts.csv", prefix))
	if err != nil {
		return errors.Wrap(err, "Can't export shortcuts")
	}
	return nil
}
