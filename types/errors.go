package types

import "errors"

// Sentinel errors for the affinity library.
//
// These errors provide type-safe error checking using errors.Is().
// Components wrap them with context using fmt.Errorf("%w: ...", ErrX, ...).
// None of them are retried internally.

// Clustering errors - returned while building the clustering at startup.
var (
	// ErrEmptyDomain is returned when the active domain has no terms.
	ErrEmptyDomain = errors.New("active domain is empty")

	// ErrInvalidAlpha is returned when the similarity threshold is outside (0, 1].
	ErrInvalidAlpha = errors.New("similarity threshold must be in (0, 1]")

	// ErrDuplicateTerm is returned when the active domain contains a term twice.
	ErrDuplicateTerm = errors.New("duplicate term in active domain")
)

// Similarity table errors.
var (
	// ErrMissingSimilarity is returned when no score is defined for a pair of terms.
	ErrMissingSimilarity = errors.New("missing similarity")

	// ErrInvalidSimilarity is returned when a score is outside [0, 1] or NaN.
	ErrInvalidSimilarity = errors.New("similarity score must be in [0, 1]")

	// ErrConflictingSimilarity is returned when a pair is defined twice with different scores.
	ErrConflictingSimilarity = errors.New("conflicting similarity scores")
)

// Routing errors - returned to the caller for a single key operation.
var (
	// ErrUnknownTermSimilarity is returned when a term cannot be compared with a cluster head.
	ErrUnknownTermSimilarity = errors.New("unknown term similarity")

	// ErrUnsupportedKeyKind is returned when a key has neither primary nor derived kind.
	ErrUnsupportedKeyKind = errors.New("unsupported key kind")

	// ErrNullKey is returned when routing is asked for an absent key.
	ErrNullKey = errors.New("key is nil")

	// ErrPartitionOutOfRange is returned when a derived key stores an invalid partition id.
	ErrPartitionOutOfRange = errors.New("partition out of range")

	// ErrEmptyClustering is returned when a router is built without clusters.
	ErrEmptyClustering = errors.New("clustering is empty")
)

// Assignment errors.
var (
	// ErrNoNodesAvailable is returned when the topology snapshot has no nodes.
	ErrNoNodesAvailable = errors.New("no nodes available")

	// ErrInvalidPartitionCount is returned for a negative partition count.
	ErrInvalidPartitionCount = errors.New("partition count must not be negative")
)

// Placement errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceRequired is returned when the similarity source is nil.
	ErrSourceRequired = errors.New("similarity source is required")

	// ErrMalformedFeed is returned when a similarity feed cannot be parsed.
	ErrMalformedFeed = errors.New("malformed similarity feed")

	// ErrUnboundEntity is returned when no partition was recorded for an entity.
	ErrUnboundEntity = errors.New("entity has no bound partition")
)
