package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/affinity/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing a
// PrometheusCollector never panics on duplicate registration until it records.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	clusteringDuration prometheus.Histogram
	clusteringRuns     *prometheus.CounterVec
	domainTerms        prometheus.Gauge
	partitions         prometheus.Gauge
	splits             prometheus.Gauge
	routes             *prometheus.CounterVec
	assignments        prometheus.Counter
	assignedNodes      prometheus.Gauge
	bindings           *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "affinity" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "affinity"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.clusteringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "duration_seconds",
			Help:      "Duration of clustering runs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		})
		p.clusteringRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "runs_total",
			Help:      "Clustering runs by result (success, or the failure reason).",
		}, []string{"result"})
		p.domainTerms = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "domain_terms",
			Help:      "Number of terms in the clustered active domain.",
		})
		p.partitions = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "partitions",
			Help:      "Number of clusters (partitions) produced by the last run.",
		})
		p.splits = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "clustering",
			Name:      "splits",
			Help:      "Number of head splits performed by the last run.",
		})

		p.routes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "router",
			Name:      "routes_total",
			Help:      "Routing decisions by key kind and success.",
		}, []string{"kind", "success"})

		p.assignments = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "computed_total",
			Help:      "Partition tables computed.",
		})
		p.assignedNodes = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "nodes",
			Help:      "Nodes in the topology snapshot of the last assignment.",
		})

		p.bindings = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "collocation",
			Name:      "bindings_total",
			Help:      "Entity binding attempts by outcome (new, existing, pinned).",
		}, []string{"outcome"})

		p.reg.MustRegister(
			p.clusteringDuration,
			p.clusteringRuns,
			p.domainTerms,
			p.partitions,
			p.splits,
			p.routes,
			p.assignments,
			p.assignedNodes,
			p.bindings,
		)
	})
}

// RecordClustering records a completed clustering run.
func (p *PrometheusCollector) RecordClustering(duration float64, terms, clusters, splits int) {
	p.ensureRegistered()
	p.clusteringDuration.Observe(duration)
	p.clusteringRuns.WithLabelValues("success").Inc()
	p.domainTerms.Set(float64(terms))
	p.partitions.Set(float64(clusters))
	p.splits.Set(float64(splits))
}

// RecordClusteringFailure records a failed clustering run.
func (p *PrometheusCollector) RecordClusteringFailure(reason string) {
	p.ensureRegistered()
	p.clusteringRuns.WithLabelValues(reason).Inc()
}

// RecordRoute records one routing decision.
func (p *PrometheusCollector) RecordRoute(kind string, success bool) {
	p.ensureRegistered()
	p.routes.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
}

// RecordAssignment records a computed partition table.
func (p *PrometheusCollector) RecordAssignment(_ /* partitions */, nodes int) {
	p.ensureRegistered()
	p.assignments.Inc()
	p.assignedNodes.Set(float64(nodes))
}

// RecordBinding records an entity binding attempt.
func (p *PrometheusCollector) RecordBinding(outcome string) {
	p.ensureRegistered()
	p.bindings.WithLabelValues(outcome).Inc()
}
