// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the City Insight API.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "cityinsights"
	namespace   = "cityinsights"
)

// Metrics holds all service Prometheus metrics.
type Metrics struct {
	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Chat
	ChatReplies *prometheus.CounterVec

	// Oracle
	OracleCalls   *prometheus.CounterVec
	OracleLatency *prometheus.HistogramVec
	BreakerState  *prometheus.GaugeVec
}

// Provider wraps the tracer and metrics.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	gatherer prometheus.Gatherer
}

// NewProvider registers metrics with reg. A nil reg uses a fresh registry.
func NewProvider(reg *prometheus.Registry) *Provider {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  initMetrics(factory),
		gatherer: reg,
	}
}

// Handler serves the registry for /metrics.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

func initMetrics(factory promauto.Factory) *Metrics {
	m := &Metrics{}

	m.HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	m.HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	m.ChatReplies = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_replies_total",
		Help:      "Chat replies by matched intent",
	}, []string{"intent"})

	m.OracleCalls = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oracle_calls_total",
		Help:      "Oracle calls by provider and outcome",
	}, []string{"provider", "outcome"})

	m.OracleLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "oracle_latency_seconds",
		Help:      "Oracle call latency",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 12, 20},
	}, []string{"provider"})

	m.BreakerState = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "oracle_breaker_state",
		Help:      "Oracle circuit breaker state (0 closed, 1 open, 2 half-open)",
	}, []string{"provider"})

	return m
}

// RecordChatReply counts one chat reply.
func (p *Provider) RecordChatReply(intent string) {
	p.Metrics.ChatReplies.WithLabelValues(intent).Inc()
}

// RecordOracleCall records the outcome and latency of one oracle call.
func (p *Provider) RecordOracleCall(provider, outcome string, d time.Duration) {
	p.Metrics.OracleCalls.WithLabelValues(provider, outcome).Inc()
	p.Metrics.OracleLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// SetBreakerState publishes the numeric breaker state.
func (p *Provider) SetBreakerState(provider string, state int) {
	p.Metrics.BreakerState.WithLabelValues(provider).Set(float64(state))
}

// GinMiddleware counts requests by matched route template.
func (p *Provider) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		p.Metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		p.Metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
