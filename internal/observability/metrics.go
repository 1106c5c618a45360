package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BufferMetrics is the prometheus implementation of the activity buffer's
// Metrics interface.
type BufferMetrics struct {
	queueDepth    prometheus.Gauge
	flushedRows   prometheus.Counter
	flushes       prometheus.Counter
	failedRows    prometheus.Counter
	failedFlushes prometheus.Counter
}

// NewBufferMetrics registers the buffer metric set on the given registerer.
func NewBufferMetrics(reg prometheus.Registerer) *BufferMetrics {
	factory := promauto.With(reg)
	return &BufferMetrics{
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "action_buffer_queue_depth",
			Help: "Number of actions currently waiting in the write-behind buffer.",
		}),
		flushedRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "action_buffer_flushed_rows_total",
			Help: "Total action rows persisted by buffer flushes.",
		}),
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "action_buffer_flushes_total",
			Help: "Total successful buffer flushes.",
		}),
		failedRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "action_buffer_dropped_rows_total",
			Help: "Total action rows dropped by failed buffer flushes.",
		}),
		failedFlushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "action_buffer_flush_failures_total",
			Help: "Total failed buffer flushes.",
		}),
	}
}

func (m *BufferMetrics) QueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

func (m *BufferMetrics) FlushSucceeded(batchSize int) {
	m.flushes.Inc()
	m.flushedRows.Add(float64(batchSize))
}

func (m *BufferMetrics) FlushFailed(batchSize int) {
	m.failedFlushes.Inc()
	m.failedRows.Add(float64(batchSize))
}

// MetricsServer serves the prometheus scrape endpoint.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer builds the /metrics HTTP server for the given registry.
func NewMetricsServer(addr string, registry *prometheus.Registry, logger *slog.Logger) *MetricsServer {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Shutdown is called.
func (s *MetricsServer) Start() {
	s.logger.Info("metrics server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("metrics server failed", "error", err)
	}
}

// Shutdown stops the server gracefully.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
