package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics exports food-search outcomes and external lookup latency.
//
//   - nutrition_catalog_search_total{result}: hit, miss or error per search
//   - nutrition_lookup_duration_seconds{outcome}: external lookup latency,
//     outcome ok or error
type CatalogMetrics struct {
	searches *prometheus.CounterVec
	lookups  *prometheus.HistogramVec
}

// NewCatalogMetrics creates the collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	m := &CatalogMetrics{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutrition_catalog_search_total",
				Help: "Food searches by cache outcome.",
			},
			[]string{"result"},
		),
		lookups: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nutrition_lookup_duration_seconds",
				Help:    "Latency of external nutrition lookups in seconds.",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.searches, m.lookups)
	}
	return m
}

// ObserveSearch counts one search with the given result label.
func (m *CatalogMetrics) ObserveSearch(result string) {
	m.searches.WithLabelValues(result).Inc()
}

// ObserveLookup records the duration of one external lookup.
func (m *CatalogMetrics) ObserveLookup(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.lookups.WithLabelValues(outcome).Observe(d.Seconds())
}
