// Package metrics registers the route finder's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// IngestRequests counts fetches from the route data provider by result.
	IngestRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routefinder_ingest_requests_total",
			Help: "Number of route data fetches by result.",
		},
		[]string{"result"},
	)

	// IngestDuration tracks how long a full fetch-and-parse takes.
	IngestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "routefinder_ingest_duration_seconds",
			Help:    "Time taken to fetch and parse the route table.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SnapshotRefreshes counts successfully published snapshots.
	SnapshotRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "routefinder_snapshot_refreshes_total",
			Help: "Number of snapshots published since start.",
		},
	)

	// SnapshotAirports gauges the airport count of the current snapshot.
	SnapshotAirports = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routefinder_snapshot_airports",
			Help: "Airports in the current snapshot.",
		},
	)

	// SnapshotAircraft gauges the aircraft count of the current snapshot.
	SnapshotAircraft = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routefinder_snapshot_aircraft",
			Help: "Aircraft in the current snapshot.",
		},
	)

	// SnapshotLegs gauges the leg count of the current snapshot.
	SnapshotLegs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routefinder_snapshot_legs",
			Help: "Legs in the current snapshot.",
		},
	)

	// RouteQueries counts route queries by outcome.
	RouteQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routefinder_route_queries_total",
			Help: "Number of route queries by outcome.",
		},
		[]string{"outcome"},
	)

	// RouteQueryDuration tracks end-to-end query latency.
	RouteQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "routefinder_route_query_duration_seconds",
			Help:    "Time taken to build the graph and run both searches.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		IngestRequests,
		IngestDuration,
		SnapshotRefreshes,
		SnapshotAirports,
		SnapshotAircraft,
		SnapshotLegs,
		RouteQueries,
		RouteQueryDuration,
	)
}

// Handler exposes the default registry in Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
