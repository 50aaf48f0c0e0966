// Package routegraph builds per-aircraft adjacency graphs from leg records.
package routegraph

import (
	"fmt"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/snapshot"
	"github.com/Jettpacked/UPSVAC-FlightFinder/pkg/models"
)

// UnknownAircraftError reports an aircraft identifier that is absent from
// the snapshot's fleet and matches no leg at all.
type UnknownAircraftError struct {
	Aircraft string
}

func (e *UnknownAircraftError) Error() string {
	return fmt.Sprintf("unknown aircraft %q", e.Aircraft)
}

// Edge is one outbound connection in a built graph.
type Edge struct {
	To       string
	Distance float64
}

// Graph maps an airport code to its outbound edges, filtered for a single
// aircraft. Edge slices preserve the leg insertion order of the snapshot;
// the searches rely on that order to break ties deterministically.
type Graph struct {
	aircraft  string
	adjacency map[string][]Edge
	edgeCount int
}

// Build filters the snapshot's legs down to those the aircraft may fly and
// groups them by origin airport. Parallel legs stay distinct edges and
// self-loops are kept as data (the searches skip them).
//
// A fleet aircraft with no eligible legs yields an empty graph, not an
// error; an identifier absent from both the fleet and every leg's permitted
// set fails with UnknownAircraftError.
func Build(snap *snapshot.Snapshot, aircraftID string) (*Graph, error) {
	g := &Graph{
		aircraft:  aircraftID,
		adjacency: make(map[string][]Edge),
	}

	matched := false
	for _, leg := range snap.Legs() {
		if !permits(&leg, aircraftID) {
			continue
		}
		matched = true
		g.adjacency[leg.Origin] = append(g.adjacency[leg.Origin], Edge{
			To:       leg.Destination,
			Distance: leg.Distance,
		})
		g.edgeCount++
	}

	if !matched && !snap.HasAircraft(aircraftID) {
		return nil, &UnknownAircraftError{Aircraft: aircraftID}
	}
	return g, nil
}

// Aircraft returns the identifier the graph was filtered for.
func (g *Graph) Aircraft() string {
	return g.aircraft
}

// Edges returns the outbound edges from an airport, in builder order.
// Callers must treat the slice as read-only.
func (g *Graph) Edges(code string) []Edge {
	return g.adjacency[code]
}

// EdgeCount returns the total number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// permits reports whether the leg's permitted set covers the aircraft.
// A leg marked AllAircraft permits everything; an empty set permits nothing.
func permits(l *models.Leg, aircraftID string) bool {
	if l.AllAircraft {
		return true
	}
	for _, a := range l.Aircraft {
		if a == aircraftID {
			return true
		}
	}
	return false
}
