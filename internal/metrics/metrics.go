// Package metrics implements the prometheus collectors of a server instance
// and exposes them over HTTP.
//
// Every Recorder owns its registry so several servers can live in one
// process, and tests can inspect counters without global state.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricNamespace = "restlite"

// Request outcomes.
const (
	OutcomeOptions          = "options"
	OutcomeRoute            = "route"
	OutcomeGateway          = "gateway"
	OutcomeNotFound         = "not_found"
	OutcomeGuardDenied      = "guard_denied"
	OutcomePermissionDenied = "permission_denied"
	OutcomePanic            = "panic"
)

// Guard denial kinds.
const (
	DenialRedirect   = "redirect"
	DenialRenderFile = "render_file"
	DenialEnvelope   = "envelope"
	DenialMethod     = "method"
)

// Proxy results.
const (
	ProxyOK    = "ok"
	ProxyError = "error"
)

// default histogram buckets in seconds
var defaultBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// Recorder holds the collectors of one server.
type Recorder struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	guardDenials  *prometheus.CounterVec
	proxyRequests *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "requests_total",
				Help:      "Count of requests handled by the dispatcher by outcome and status code.",
			},
			[]string{"outcome", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent in the dispatcher per request, by outcome.",
				Buckets:   defaultBuckets,
			},
			[]string{"outcome"},
		),
		guardDenials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "guard_denials_total",
				Help:      "Count of requests rejected by a guard, by the kind of rejection.",
			},
			[]string{"kind"},
		),
		proxyRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "proxy_requests_total",
				Help:      "Count of relayed requests by result.",
			},
			[]string{"result"},
		),
	}

	r.registry.MustRegister(
		r.requests,
		r.duration,
		r.guardDenials,
		r.proxyRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// ObserveRequest records a finished request.
func (r *Recorder) ObserveRequest(outcome string, code int, elapsed time.Duration) {
	r.requests.WithLabelValues(outcome, strconv.Itoa(code)).Inc()
	r.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// GuardDenied records a guard rejection.
func (r *Recorder) GuardDenied(kind string) {
	r.guardDenials.WithLabelValues(kind).Inc()
}

// Proxied records the result of a relay.
func (r *Recorder) Proxied(result string) {
	r.proxyRequests.WithLabelValues(result).Inc()
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
