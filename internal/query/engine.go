// Package query orchestrates graph building and path searching for a
// single route request.
package query

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/routegraph"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/search"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/snapshot"
	"github.com/Jettpacked/UPSVAC-FlightFinder/pkg/models"
)

// ErrNoSnapshot is returned before the first data refresh has completed.
var ErrNoSnapshot = errors.New("no route data loaded yet")

// UnknownAirportError names the requested airport missing from the snapshot.
type UnknownAirportError struct {
	Airport string
	Role    string // "origin" or "destination"
}

func (e *UnknownAirportError) Error() string {
	return fmt.Sprintf("unknown %s airport %q", e.Role, e.Airport)
}

// Engine answers route queries against the currently published snapshot.
// Built graphs are cached per aircraft and discarded as soon as a new
// snapshot is published, so a query never mixes data from two refreshes.
type Engine struct {
	holder *snapshot.Holder

	mu        sync.Mutex
	cachedFor *snapshot.Snapshot
	graphs    map[string]*routegraph.Graph
}

// New creates an engine reading snapshots from holder.
func New(holder *snapshot.Holder) *Engine {
	return &Engine{holder: holder}
}

// FindRoutes computes the fewest-legs and least-distance routes between
// two airports for one aircraft. Both searches run over the same built
// graph; a result with Available=false means neither found a route, which
// is an expected outcome, not an error.
func (e *Engine) FindRoutes(aircraftID, originCode, destinationCode string) (models.RouteResult, error) {
	snap, ok := e.holder.Load()
	if !ok {
		return models.RouteResult{}, ErrNoSnapshot
	}

	if !snap.HasAirport(originCode) {
		return models.RouteResult{}, &UnknownAirportError{Airport: originCode, Role: "origin"}
	}
	if !snap.HasAirport(destinationCode) {
		return models.RouteResult{}, &UnknownAirportError{Airport: destinationCode, Role: "destination"}
	}

	g, err := e.graphFor(snap, aircraftID)
	if err != nil {
		return models.RouteResult{}, err
	}

	result := models.RouteResult{
		Aircraft:    aircraftID,
		Origin:      originCode,
		Destination: destinationCode,
	}
	if airports, ok := search.FewestLegs(g, originCode, destinationCode); ok {
		result.FewestLegs = &models.HopPath{Airports: airports, Hops: len(airports) - 1}
	}
	if airports, total, ok := search.LeastDistance(g, originCode, destinationCode); ok {
		result.LeastDistance = &models.DistancePath{Airports: airports, Distance: total}
	}
	result.Available = result.FewestLegs != nil || result.LeastDistance != nil
	return result, nil
}

// graphFor returns the cached graph for the aircraft, building it on first
// use. The cache is keyed to one snapshot by pointer identity.
func (e *Engine) graphFor(snap *snapshot.Snapshot, aircraftID string) (*routegraph.Graph, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cachedFor != snap {
		e.cachedFor = snap
		e.graphs = make(map[string]*routegraph.Graph)
	}
	if g, ok := e.graphs[aircraftID]; ok {
		return g, nil
	}

	g, err := routegraph.Build(snap, aircraftID)
	if err != nil {
		return nil, err
	}
	e.graphs[aircraftID] = g
	return g, nil
}
