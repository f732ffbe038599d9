package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Routing methods are called on the caller's hot path from many goroutines
// and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	ClusteringMetrics
	RoutingMetrics
	AssignmentMetrics
	CollocationMetrics
}

// ClusteringMetrics defines metrics for the one-shot clustering computation.
type ClusteringMetrics interface {
	// RecordClustering records a completed clustering run.
	//
	// Parameters:
	//   - duration: Time taken in seconds
	//   - terms: Size of the active domain
	//   - clusters: Number of clusters produced (= partition count)
	//   - splits: Number of head-splitting iterations performed
	RecordClustering(duration float64, terms, clusters, splits int)

	// RecordClusteringFailure records a failed clustering run.
	//
	// Parameters:
	//   - reason: Failure reason ("empty_domain", "missing_similarity", ...)
	RecordClusteringFailure(reason string)
}

// RoutingMetrics defines metrics for key routing.
type RoutingMetrics interface {
	// RecordRoute records one routing decision.
	//
	// Parameters:
	//   - kind: Key kind ("primary", "derived", "unknown")
	//   - success: true if a partition was returned
	RecordRoute(kind string, success bool)
}

// AssignmentMetrics defines metrics for partition-to-node assignment.
type AssignmentMetrics interface {
	// RecordAssignment records a computed partition table.
	//
	// Parameters:
	//   - partitions: Number of partitions assigned
	//   - nodes: Number of nodes in the topology snapshot
	RecordAssignment(partitions, nodes int)
}

// CollocationMetrics defines metrics for derived-key collocation.
type CollocationMetrics interface {
	// RecordBinding records an entity binding attempt.
	//
	// Parameters:
	//   - outcome: "new", "existing" or "pinned" (bound to a different partition)
	RecordBinding(outcome string)
}
