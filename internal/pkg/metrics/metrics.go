// Package metrics - Prometheus метрики сервиса.
// Все методы допускают nil получатель, чтобы метрики можно было не подключать в тестах.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "indicator_dashboard"

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	SeriesGenerated *prometheus.CounterVec
	NarrativeCalls  *prometheus.HistogramVec
	JobsProcessed   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"method", "route"},
		),

		SeriesGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_generated_total",
				Help:      "Generated indicator series by kind",
			},
			[]string{"kind"},
		),

		NarrativeCalls: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "narrative_call_duration_seconds",
				Help:      "Narrative interpretation latency by outcome (ok, cached, error)",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),

		JobsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "narrative_jobs_processed_total",
				Help:      "Processed narrative jobs by final status",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.SeriesGenerated,
		m.NarrativeCalls,
		m.JobsProcessed,
	)

	return m
}

// Registry возвращает реестр для тестов и кастомных экспортеров
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler - HTTP обработчик /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

func (m *Metrics) ObserveSeries(kind string) {
	if m == nil {
		return
	}
	m.SeriesGenerated.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveNarrative(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.NarrativeCalls.WithLabelValues(outcome).Observe(took.Seconds())
}

func (m *Metrics) ObserveJob(status string) {
	if m == nil {
		return
	}
	m.JobsProcessed.WithLabelValues(status).Inc()
}
