package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects and exposes server metrics in Prometheus format.
// It tracks:
//   - Active requests (gauge)
//   - Total requests (counter)
//   - Moves streamed by /moves (counter)
//   - Duration of /moves streams (histogram)
type Metrics struct {
	handler http.Handler
}

// Prometheus metrics for server-level observability
var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hanoi_active_requests",
		Help: "Current number of active requests",
	})
	totalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hanoi_requests_total",
		Help: "Total number of requests received",
	})
	movesEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hanoi_moves_emitted_total",
		Help: "Total number of moves streamed to clients",
	})
	streamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hanoi_stream_duration_seconds",
		Help:    "Time spent streaming a move sequence",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		handler: promhttp.Handler(),
	}
}

// IncrementActiveRequests increments the active requests gauge
// and the total requests counter.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
	totalRequests.Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// ObserveStream records one finished or interrupted /moves stream.
func (m *Metrics) ObserveStream(moves uint64, duration time.Duration) {
	movesEmitted.Add(float64(moves))
	streamDuration.Observe(duration.Seconds())
}

// WritePrometheus writes metrics in Prometheus text format to the HTTP response.
//
// Parameters:
//   - w: The writer to output metrics to.
//   - r: The original HTTP request.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// handleMetrics is the HTTP handler for the /metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.metrics.WritePrometheus(w, r)
}

// metricsMiddleware tracks active requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}
