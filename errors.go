package affinity

import "github.com/arloliu/affinity/types"

// Re-export sentinel errors from the types package.
//
// Check them with errors.Is: returned errors wrap these with context.
var (
	// Clustering
	ErrEmptyDomain   = types.ErrEmptyDomain
	ErrInvalidAlpha  = types.ErrInvalidAlpha
	ErrDuplicateTerm = types.ErrDuplicateTerm

	// Similarity table
	ErrMissingSimilarity     = types.ErrMissingSimilarity
	ErrInvalidSimilarity     = types.ErrInvalidSimilarity
	ErrConflictingSimilarity = types.ErrConflictingSimilarity

	// Routing
	ErrUnknownTermSimilarity = types.ErrUnknownTermSimilarity
	ErrUnsupportedKeyKind    = types.ErrUnsupportedKeyKind
	ErrNullKey               = types.ErrNullKey
	ErrPartitionOutOfRange   = types.ErrPartitionOutOfRange
	ErrEmptyClustering       = types.ErrEmptyClustering

	// Assignment
	ErrNoNodesAvailable      = types.ErrNoNodesAvailable
	ErrInvalidPartitionCount = types.ErrInvalidPartitionCount

	// Placement
	ErrInvalidConfig  = types.ErrInvalidConfig
	ErrSourceRequired = types.ErrSourceRequired
	ErrMalformedFeed  = types.ErrMalformedFeed
	ErrUnboundEntity  = types.ErrUnboundEntity
)
