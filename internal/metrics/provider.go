package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "issuegrip"
	searchNamespace  = "search"
	httpNamespace    = "http"

	defaultPrometheusTimeoutSeconds = 60
)

// Outcome labels for search observations
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type Provider interface {
	ObserveSearchDuration(backend, outcome string, elapsed float64)
	IncreaseSearchResults(backend string, count int)
	IncreaseStaleResponses(backend string)

	ObserveHTTPRequestDuration(method, handler, statusCode string, elapsed float64)
	IncreaseCacheHits(method, handler string)
	IncreaseCacheMisses(method, handler string)
}

type PrometheusProvider struct {
	Registry *prometheus.Registry

	searchDuration *prometheus.HistogramVec
	searchResults  *prometheus.CounterVec
	staleResponses *prometheus.CounterVec

	httpRequests *prometheus.HistogramVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
}

func NewPrometheusProvider() *PrometheusProvider {
	provider := &PrometheusProvider{}
	provider.Registry = prometheus.NewRegistry()
	options := prometheus.ProcessCollectorOpts{
		Namespace: metricsNamespace,
	}
	provider.Registry.MustRegister(prometheus.NewProcessCollector(options))
	provider.Registry.MustRegister(prometheus.NewGoCollector())

	provider.searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: searchNamespace,
			Name:      "duration_seconds",
			Help:      "Duration of completed issue searches.",
		},
		[]string{"backend", "outcome"},
	)
	provider.Registry.MustRegister(provider.searchDuration)

	provider.searchResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchNamespace,
			Name:      "results_total",
			Help:      "Number of issues returned by searches.",
		},
		[]string{"backend"},
	)
	provider.Registry.MustRegister(provider.searchResults)

	provider.staleResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchNamespace,
			Name:      "stale_responses_total",
			Help:      "Number of search responses discarded because a newer request was issued.",
		},
		[]string{"backend"},
	)
	provider.Registry.MustRegister(provider.staleResponses)

	provider.httpRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: httpNamespace,
			Name:      "requests",
			Help:      "Duration of the performed issue API http requests.",
		},
		[]string{"method", "handler", "status_code"},
	)
	provider.Registry.MustRegister(provider.httpRequests)

	provider.cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: httpNamespace,
			Name:      "cache_hits",
			Help:      "Number of cache hits for requested method and handler.",
		},
		[]string{"method", "handler"},
	)
	provider.Registry.MustRegister(provider.cacheHits)

	provider.cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: httpNamespace,
			Name:      "cache_miss",
			Help:      "Number of cache misses for requested method and handler.",
		},
		[]string{"method", "handler"},
	)
	provider.Registry.MustRegister(provider.cacheMisses)

	return provider
}

func (p *PrometheusProvider) ObserveSearchDuration(backend, outcome string, elapsed float64) {
	p.searchDuration.With(prometheus.Labels{"backend": backend, "outcome": outcome}).Observe(elapsed)
}

func (p *PrometheusProvider) IncreaseSearchResults(backend string, count int) {
	p.searchResults.WithLabelValues(backend).Add(float64(count))
}

func (p *PrometheusProvider) IncreaseStaleResponses(backend string) {
	p.staleResponses.WithLabelValues(backend).Add(1)
}

func (p *PrometheusProvider) ObserveHTTPRequestDuration(method, handler, statusCode string, elapsed float64) {
	p.httpRequests.With(
		prometheus.Labels{"method": method, "handler": handler, "status_code": statusCode},
	).Observe(elapsed)
}

func (p *PrometheusProvider) IncreaseCacheHits(method, handler string) {
	p.cacheHits.WithLabelValues(method, handler).Add(1)
}

func (p *PrometheusProvider) IncreaseCacheMisses(method, handler string) {
	p.cacheMisses.WithLabelValues(method, handler).Add(1)
}

func (p *PrometheusProvider) Handler() Handler {
	handler := promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{
		Timeout:           time.Duration(defaultPrometheusTimeoutSeconds) * time.Second,
		EnableOpenMetrics: true,
	})
	return Handler{
		Path:        "/metrics",
		Description: "Prometheus Metrics",
		Handler:     handler,
	}
}

// NoopProvider drops every observation. Used when metrics are disabled.
type NoopProvider struct{}

func (NoopProvider) ObserveSearchDuration(string, string, float64)              {}
func (NoopProvider) IncreaseSearchResults(string, int)                          {}
func (NoopProvider) IncreaseStaleResponses(string)                              {}
func (NoopProvider) ObserveHTTPRequestDuration(string, string, string, float64) {}
func (NoopProvider) IncreaseCacheHits(string, string)                           {}
func (NoopProvider) IncreaseCacheMisses(string, string)                         {}
