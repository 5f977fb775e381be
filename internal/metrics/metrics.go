// Package metrics holds the Prometheus collectors shared across the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "structurecare"

var (
	CatalogFetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "fetch_attempts_total",
		Help:      "HTTP attempts made against the plant catalog source.",
	})

	CatalogLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "loads_total",
		Help:      "Catalog loads by outcome (ok, error, canceled).",
	}, []string{"outcome"})

	CatalogLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "load_duration_seconds",
		Help:      "Wall time of a catalog load including retries.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	CatalogPlants = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "plants",
		Help:      "Plant records in the current catalog snapshot.",
	})

	ProjectSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "projects",
		Name:      "saves_total",
		Help:      "Project save attempts by outcome.",
	}, []string{"outcome"})

	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "opened_total",
		Help:      "Editing sessions opened.",
	})

	GuidesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "guide",
		Name:      "rendered_total",
		Help:      "Client guides rendered, labelled by whether they were archived.",
	}, []string{"archived"})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
