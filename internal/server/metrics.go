package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cascadevis/cascade/pkg/observability"
)

// metricsHooks implements the observability hook interfaces on top of a
// Prometheus registry. The server registers it at startup; the rendering
// library stays free of Prometheus imports.
type metricsHooks struct {
	parses         prometheus.Counter
	parseDuration  prometheus.Histogram
	layoutDuration prometheus.Histogram
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	renderErrors   prometheus.Counter

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheWrites *prometheus.CounterVec
}

var (
	_ observability.PipelineHooks = (*metricsHooks)(nil)
	_ observability.CacheHooks    = (*metricsHooks)(nil)
)

// newMetricsRegistry builds the registry with process/go collectors and the
// pipeline metrics, and returns the hooks to register with observability.
func newMetricsRegistry() (*prometheus.Registry, *metricsHooks) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &metricsHooks{
		parses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cascade_parse_total",
			Help: "Number of table parse operations.",
		}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cascade_parse_duration_seconds",
			Help:    "Duration of table parsing.",
			Buckets: prometheus.DefBuckets,
		}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cascade_layout_duration_seconds",
			Help:    "Duration of chart layout.",
			Buckets: prometheus.DefBuckets,
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_render_total",
			Help: "Number of rendered artifacts by format.",
		}, []string{"format"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cascade_render_duration_seconds",
			Help:    "Duration of artifact rendering.",
			Buckets: prometheus.DefBuckets,
		}),
		renderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cascade_render_errors_total",
			Help: "Number of failed render operations.",
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_cache_hits_total",
			Help: "Cache hits by key type.",
		}, []string{"type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_cache_misses_total",
			Help: "Cache misses by key type.",
		}, []string{"type"}),
		cacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_cache_writes_total",
			Help: "Cache writes by key type.",
		}, []string{"type"}),
	}

	reg.MustRegister(
		m.parses, m.parseDuration, m.layoutDuration,
		m.renders, m.renderDuration, m.renderErrors,
		m.cacheHits, m.cacheMisses, m.cacheWrites,
	)
	return reg, m
}

func (m *metricsHooks) OnParseStart(context.Context, int) {
	m.parses.Inc()
}

func (m *metricsHooks) OnParseComplete(_ context.Context, _ int, d time.Duration) {
	m.parseDuration.Observe(d.Seconds())
}

func (m *metricsHooks) OnLayoutStart(context.Context, int) {}

func (m *metricsHooks) OnLayoutComplete(_ context.Context, d time.Duration) {
	m.layoutDuration.Observe(d.Seconds())
}

func (m *metricsHooks) OnRenderStart(context.Context, []string) {}

func (m *metricsHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	m.renderDuration.Observe(d.Seconds())
	if err != nil {
		m.renderErrors.Inc()
		return
	}
	for _, f := range formats {
		m.renders.WithLabelValues(f).Inc()
	}
}

func (m *metricsHooks) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *metricsHooks) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *metricsHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheWrites.WithLabelValues(keyType).Inc()
}
