package affinity

import (
	"github.com/arloliu/affinity/collocation"
	"github.com/arloliu/affinity/types"
)

// Re-export types from the types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which lets internal packages depend on `types` without depending
// on the root `affinity` package.
type (
	Term                    = types.Term
	KeyKind                 = types.KeyKind
	Key[T Term]             = types.Key[T]
	Cluster[T Term]         = types.Cluster[T]
	Clustering[T Term]      = types.Clustering[T]
	SimilarityEntry[T Term] = types.SimilarityEntry[T]
	Dataset[T Term]         = types.Dataset[T]
	Binding                 = collocation.Binding
)

// Re-export interfaces from the types package for convenience.
type (
	SimilaritySource[T Term] = types.SimilaritySource[T]
	Similarity[T Term]       = types.Similarity[T]
	NodeAssigner             = types.NodeAssigner
	MetricsCollector         = types.MetricsCollector
	Logger                   = types.Logger
	Hooks                    = types.Hooks
)

// Re-export KeyKind constants from the types package.
const (
	KeyKindUnknown = types.KeyKindUnknown
	KeyKindPrimary = types.KeyKindPrimary
	KeyKindDerived = types.KeyKindDerived
)

// PrimaryKey creates a key routed by the cluster of term.
func PrimaryKey[T Term](entity string, term T) Key[T] {
	return types.PrimaryKey(entity, term)
}

// DerivedKey creates a key collocated with an already chosen partition.
func DerivedKey[T Term](entity string, partition int) Key[T] {
	return types.DerivedKey[T](entity, partition)
}
