package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog Prometheus metrics.
var (
	CatalogQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restodex",
			Name:      "catalog_queries_total",
			Help:      "Total number of catalog store queries",
		},
		[]string{"operation", "backend", "status"},
	)

	CatalogQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "restodex",
			Name:      "catalog_query_duration_seconds",
			Help:      "Catalog store query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "backend"},
	)

	NearbyCandidatesTruncatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "restodex",
			Name:      "nearby_candidates_truncated_total",
			Help:      "Proximity searches whose bounding-box candidates hit the scan cap",
		},
	)

	ImportRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restodex",
			Name:      "import_records_total",
			Help:      "Restaurant records processed by the importer",
		},
		[]string{"status"}, // "ok" / "skipped" / "error"
	)
)

var registerCatalog sync.Once

// RegisterCatalogMetrics registers catalog metrics on the default registry. Safe to call more than once.
func RegisterCatalogMetrics() {
	registerCatalog.Do(func() {
		prometheus.MustRegister(
			CatalogQueriesTotal,
			CatalogQueryDuration,
			NearbyCandidatesTruncatedTotal,
			ImportRecordsTotal,
		)
	})
}
