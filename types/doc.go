// Package types provides core type definitions and interfaces for the affinity library.
//
// This package contains shared types that are used across multiple packages in the
// affinity library. By keeping these types in a separate package, we avoid import cycles
// between the main affinity package and its internal implementations.
//
// Key types:
//   - Cluster / Clustering: Result of clustering the active domain (index = partition id)
//   - Key: Tagged routing key (primary or derived)
//   - Dataset / SimilarityEntry: Raw output of a similarity source
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
