package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the store.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeWrites     *prometheus.CounterVec
	txTotal         *prometheus.CounterVec
	idAllocated     *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_writes_total",
		Help: "Total number of entity store writes",
	}, []string{"collection"})

	txTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_transactions_total",
		Help: "Total number of multi-collection transactions",
	}, []string{"outcome"})

	idAllocated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "identifiers_allocated_total",
		Help: "Total number of identifiers issued per kind",
	}, []string{"kind"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeWrites, txTotal, idAllocated, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeWrites:     storeWrites,
		txTotal:         txTotal,
		idAllocated:     idAllocated,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStoreWrite counts a persisted write against its collection.
func (m *MetricsService) ObserveStoreWrite(collection string) {
	if m == nil {
		return
	}
	m.storeWrites.WithLabelValues(collection).Inc()
}

// ObserveTransaction counts a multi-collection transaction outcome
// ("committed" or "rolled_back").
func (m *MetricsService) ObserveTransaction(outcome string) {
	if m == nil {
		return
	}
	m.txTotal.WithLabelValues(outcome).Inc()
}

// ObserveAllocation counts an issued identifier against its kind.
func (m *MetricsService) ObserveAllocation(kind string) {
	if m == nil {
		return
	}
	m.idAllocated.WithLabelValues(kind).Inc()
}
