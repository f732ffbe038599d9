package affinity

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/affinity/internal/metrics"
)

// NewPrometheusMetrics creates a MetricsCollector backed by Prometheus.
//
// Collectors are registered with reg on first use.
//
// Parameters:
//   - reg: Registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace ("affinity" if empty)
//
// Returns:
//   - MetricsCollector: Prometheus collector
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewNopMetrics creates a MetricsCollector that discards everything.
func NewNopMetrics() MetricsCollector {
	return metrics.NewNop()
}
