package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used as the "operation" label.
const (
	OpScale    = "scale"
	OpExtract  = "extract"
	OpCentroid = "centroid"
	OpInspect  = "inspect"
)

// Metrics groups the toolkit collectors.
type Metrics struct {
	Operations      *prometheus.CounterVec
	Duration        *prometheus.HistogramVec
	PointsScaled    prometheus.Counter
	FacesFiltered   prometheus.Counter
	DegenerateFaces prometheus.Counter
	CacheRequests   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tinkit_operations_total",
				Help: "Total number of toolkit operations by result kind",
			},
			[]string{"operation", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tinkit_operation_duration_seconds",
				Help:    "Duration of toolkit operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		PointsScaled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tinkit_points_scaled_total",
			Help: "Total number of P elements rewritten by the scaler",
		}),
		FacesFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tinkit_faces_filtered_total",
			Help: "Total number of F elements dropped for not holding exactly three IDs",
		}),
		DegenerateFaces: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tinkit_degenerate_faces_total",
			Help: "Total number of zero-area faces seen by the centroid calculator",
		}),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tinkit_cache_requests_total",
				Help: "Centroid cache lookups by result",
			},
			[]string{"result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Operations, m.Duration, m.PointsScaled, m.FacesFiltered, m.DegenerateFaces, m.CacheRequests)
	}
	return m
}

// Observe records the outcome and duration of one operation.
// The result label is domain.Kind(err), computed by the caller.
func (m *Metrics) Observe(operation, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, result).Inc()
	m.Duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// AddPointsScaled increments the scaled points counter.
func (m *Metrics) AddPointsScaled(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.PointsScaled.Add(float64(n))
}

// AddFacesFiltered increments the filtered faces counter.
func (m *Metrics) AddFacesFiltered(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.FacesFiltered.Add(float64(n))
}

// AddDegenerateFaces increments the degenerate faces counter.
func (m *Metrics) AddDegenerateFaces(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DegenerateFaces.Add(float64(n))
}

// CacheHit records a cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues("hit").Inc()
}

// CacheMiss records a cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues("miss").Inc()
}

// CacheError records a failed cache lookup or store.
func (m *Metrics) CacheError() {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues("error").Inc()
}
