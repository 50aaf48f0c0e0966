package routegraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/snapshot"
	"github.com/Jettpacked/UPSVAC-FlightFinder/pkg/models"
)

// newSnapshot assembles a snapshot whose airport set covers every leg
// endpoint, so tests only spell out the interesting parts.
func newSnapshot(t *testing.T, fleet []string, legs []models.Leg) *snapshot.Snapshot {
	t.Helper()

	seen := make(map[string]struct{})
	var airports []models.Airport
	for _, l := range legs {
		for _, code := range []string{l.Origin, l.Destination} {
			if _, ok := seen[code]; !ok {
				seen[code] = struct{}{}
				airports = append(airports, models.Airport{Code: code})
			}
		}
	}

	var aircraft []models.Aircraft
	for _, id := range fleet {
		aircraft = append(aircraft, models.Aircraft{ID: id})
	}

	snap, err := snapshot.New(airports, aircraft, legs)
	require.NoError(t, err)
	return snap
}

func TestBuildFiltersByAircraft(t *testing.T) {
	snap := newSnapshot(t, []string{"B763", "MD11"}, []models.Leg{
		{Origin: "KSDF", Destination: "KPHL", Distance: 521, Aircraft: []string{"B763"}},
		{Origin: "KSDF", Destination: "KBOS", Distance: 726, Aircraft: []string{"MD11"}},
		{Origin: "KPHL", Destination: "KBOS", Distance: 240, Aircraft: []string{"B763", "MD11"}},
	})

	g, err := Build(snap, "B763")
	require.NoError(t, err)

	assert.Equal(t, "B763", g.Aircraft())
	assert.Equal(t, 2, g.EdgeCount())
	require.Len(t, g.Edges("KSDF"), 1)
	assert.Equal(t, "KPHL", g.Edges("KSDF")[0].To)
	require.Len(t, g.Edges("KPHL"), 1)
	assert.Equal(t, "KBOS", g.Edges("KPHL")[0].To)
}

func TestBuildAllAircraftSentinel(t *testing.T) {
	snap := newSnapshot(t, []string{"B763"}, []models.Leg{
		{Origin: "KSDF", Destination: "KPHL", Distance: 521, AllAircraft: true},
	})

	g, err := Build(snap, "B763")
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuildEmptyPermittedSetExcludesLeg(t *testing.T) {
	snap := newSnapshot(t, []string{"B763"}, []models.Leg{
		{Origin: "KSDF", Destination: "KPHL", Distance: 521},
	})

	g, err := Build(snap, "B763")
	require.NoError(t, err)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuildUnknownAircraft(t *testing.T) {
	snap := newSnapshot(t, []string{"B763"}, []models.Leg{
		{Origin: "KSDF", Destination: "KPHL", Distance: 521, Aircraft: []string{"B763"}},
	})

	_, err := Build(snap, "A306")
	require.Error(t, err)

	var unknown *UnknownAircraftError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "A306", unknown.Aircraft)
}

func TestBuildFleetAircraftWithNoLegs(t *testing.T) {
	snap := newSnapshot(t, []string{"B763", "B744"}, []models.Leg{
		{Origin: "KSDF", Destination: "KPHL", Distance: 521, Aircraft: []string{"B763"}},
	})

	// Known aircraft, just no eligible legs: empty graph, not an error.
	g, err := Build(snap, "B744")
	require.NoError(t, err)
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.Edges("KSDF"))
}

func TestBuildPreservesParallelEdgesInOrder(t *testing.T) {
	snap := newSnapshot(t, []string{"B763"}, []models.Leg{
		{Origin: "KSDF", Destination: "KPHL", Distance: 521, Aircraft: []string{"B763"}},
		{Origin: "KSDF", Destination: "KPHL", Distance: 540, Aircraft: []string{"B763"}},
		{Origin: "KSDF", Destination: "KBOS", Distance: 726, Aircraft: []string{"B763"}},
	})

	g, err := Build(snap, "B763")
	require.NoError(t, err)

	edges := g.Edges("KSDF")
	require.Len(t, edges, 3)
	assert.Equal(t, Edge{To: "KPHL", Distance: 521}, edges[0])
	assert.Equal(t, Edge{To: "KPHL", Distance: 540}, edges[1])
	assert.Equal(t, Edge{To: "KBOS", Distance: 726}, edges[2])
}

func TestBuildKeepsSelfLoopsAsData(t *testing.T) {
	snap := newSnapshot(t, []string{"B763"}, []models.Leg{
		{Origin: "KSDF", Destination: "KSDF", Distance: 10, Aircraft: []string{"B763"}},
	})

	g, err := Build(snap, "B763")
	require.NoError(t, err)
	require.Len(t, g.Edges("KSDF"), 1)
	assert.Equal(t, "KSDF", g.Edges("KSDF")[0].To)
}

func TestBuildEveryEdgePermitted(t *testing.T) {
	legs := []models.Leg{
		{Origin: "A", Destination: "B", Distance: 1, Aircraft: []string{"X"}},
		{Origin: "B", Destination: "C", Distance: 1, Aircraft: []string{"Y"}},
		{Origin: "C", Destination: "A", Distance: 1, AllAircraft: true},
		{Origin: "A", Destination: "C", Distance: 1, Aircraft: []string{"X", "Y"}},
	}
	snap := newSnapshot(t, []string{"X", "Y"}, legs)

	g, err := Build(snap, "X")
	require.NoError(t, err)

	// Only the legs whose permitted set covers X survive.
	assert.Equal(t, 3, g.EdgeCount())
	for _, origin := range []string{"A", "B", "C"} {
		for _, e := range g.Edges(origin) {
			if origin == "B" {
				t.Fatalf("edge %s->%s not permitted for X", origin, e.To)
			}
		}
	}
}
