// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/arloliu/affinity/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the default collector of every component.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordClustering discards the clustering run metric.
func (n *NopMetrics) RecordClustering(_ /* duration */ float64, _ /* terms */, _ /* clusters */, _ /* splits */ int) {
}

// RecordClusteringFailure discards the clustering failure metric.
func (n *NopMetrics) RecordClusteringFailure(_ /* reason */ string) {}

// RecordRoute discards the routing metric.
func (n *NopMetrics) RecordRoute(_ /* kind */ string, _ /* success */ bool) {}

// RecordAssignment discards the assignment metric.
func (n *NopMetrics) RecordAssignment(_ /* partitions */, _ /* nodes */ int) {}

// RecordBinding discards the collocation binding metric.
func (n *NopMetrics) RecordBinding(_ /* outcome */ string) {}
