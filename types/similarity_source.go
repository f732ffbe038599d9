package types

import "context"

// SimilaritySource loads the active domain and its similarity data.
//
// Implementations can query various backends:
//   - Static: fixed in-memory dataset
//   - File: terms and similarity files on disk
//   - NATS KV: dataset published to a JetStream key-value bucket
//   - SQL: any database/sql backend
//
// The placement calls Load exactly once during construction.
type SimilaritySource[T Term] interface {
	// Load returns the active domain and pairwise similarities.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - Dataset[T]: Loaded dataset
	//   - error: Load error (nil on success)
	Load(ctx context.Context) (Dataset[T], error)
}
