// Package metrics expõe as métricas Prometheus da API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sales_quest"

// Resultados possíveis de um upload
const (
	UploadSuccess   = "success"
	UploadMalformed = "malformed"
	UploadFailed    = "failed"
)

type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	uploads           *prometheus.CounterVec
	lastUploadRecords prometheus.Gauge
	snapshotsPurged   prometheus.Counter
}

var defaultManager = NewManager(prometheus.NewRegistry())

// NewManager registra todas as métricas no registry informado
func NewManager(registry *prometheus.Registry) *Manager {
	auto := promauto.With(registry)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		registry: registry,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP por rota, método e status",
		}, []string{"route", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		uploads: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Total de uploads de dados de vendas por resultado",
		}, []string{"result"}),
		lastUploadRecords: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_upload_records",
			Help:      "Quantidade de registros do último upload aceito",
		}),
		snapshotsPurged: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_purged_total",
			Help:      "Total de snapshots removidos pela rotina de retenção",
		}),
	}
}

func Default() *Manager {
	return defaultManager
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) RecordHTTPRequest(route, method string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *Manager) RecordUpload(result string, records int) {
	m.uploads.WithLabelValues(result).Inc()
	if result == UploadSuccess {
		m.lastUploadRecords.Set(float64(records))
	}
}

func (m *Manager) RecordSnapshotsPurged(count int64) {
	if count > 0 {
		m.snapshotsPurged.Add(float64(count))
	}
}

// Handler serve o endpoint /metrics
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(route, method string, statusCode int, duration time.Duration) {
	defaultManager.RecordHTTPRequest(route, method, statusCode, duration)
}

func RecordUpload(result string, records int) {
	defaultManager.RecordUpload(result, records)
}

func RecordSnapshotsPurged(count int64) {
	defaultManager.RecordSnapshotsPurged(count)
}

func Handler() http.Handler {
	return defaultManager.Handler()
}
