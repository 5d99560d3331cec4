package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	analysesTotal      *prometheus.CounterVec
	analysisDuration   prometheus.Histogram
	matchesPerAnalysis prometheus.Histogram
	validationFailures prometheus.Counter
	reportsStored      prometheus.Counter
	buyerPoolSize      prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealengine_analyses_total",
			Help: "Total number of completed property analyses",
		},
		[]string{"strategy", "grade"},
	)
	r.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dealengine_analysis_duration_seconds",
			Help:    "Property analysis duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.matchesPerAnalysis = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dealengine_matches_per_analysis",
			Help:    "Number of buyer matches produced per analysis",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)
	r.validationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dealengine_validation_failures_total",
			Help: "Total number of property inputs rejected by validation",
		},
	)
	r.reportsStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dealengine_reports_stored_total",
			Help: "Total number of analysis reports persisted",
		},
	)
	r.buyerPoolSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dealengine_buyer_pool_size",
			Help: "Number of buyers currently in the pool",
		},
	)

	reg.MustRegister(r.analysesTotal)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.matchesPerAnalysis)
	reg.MustRegister(r.validationFailures)
	reg.MustRegister(r.reportsStored)
	reg.MustRegister(r.buyerPoolSize)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// ObserveAnalysis records a completed analysis. It satisfies the engine's
// Observer interface.
func (r *Registry) ObserveAnalysis(recommended core.StrategyID, grade core.Grade, matches int, dur time.Duration) {
	r.analysesTotal.WithLabelValues(string(recommended), grade.String()).Inc()
	r.analysisDuration.Observe(dur.Seconds())
	r.matchesPerAnalysis.Observe(float64(matches))
}

// RecordValidationFailure records a rejected property input.
func (r *Registry) RecordValidationFailure() {
	r.validationFailures.Inc()
}

// RecordReportStored records a persisted report.
func (r *Registry) RecordReportStored() {
	r.reportsStored.Inc()
}

// SetBuyerPoolSize sets the buyer pool gauge.
func (r *Registry) SetBuyerPoolSize(size int) {
	r.buyerPoolSize.Set(float64(size))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
