package types

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Term is the constraint satisfied by relaxation attribute values.
//
// Terms must be comparable and ordered: ordering is what makes clustering and
// routing tie-breaks reproducible.
type Term interface {
	cmp.Ordered
}

// Cluster is a group of similar terms anchored by a head term.
//
// Members never contain the head. A Cluster is immutable once it is part of a
// Clustering; accessors return copies.
type Cluster[T Term] struct {
	head    T
	members []T
}

// NewCluster creates a cluster with the given head and members.
//
// Members are copied and sorted ascending; the head is dropped from members if present.
//
// Parameters:
//   - head: Representative term of the cluster
//   - members: Remaining terms of the cluster
//
// Returns:
//   - Cluster[T]: Immutable cluster value
func NewCluster[T Term](head T, members []T) Cluster[T] {
	ms := make([]T, 0, len(members))
	for _, m := range members {
		if m != head {
			ms = append(ms, m)
		}
	}
	slices.Sort(ms)

	return Cluster[T]{head: head, members: ms}
}

// Head returns the head term of the cluster.
func (c Cluster[T]) Head() T {
	return c.head
}

// Members returns the non-head terms of the cluster in ascending order.
func (c Cluster[T]) Members() []T {
	return slices.Clone(c.members)
}

// Size returns the number of terms in the cluster, head included.
func (c Cluster[T]) Size() int {
	return len(c.members) + 1
}

// Contains reports whether term is the head or a member of the cluster.
func (c Cluster[T]) Contains(term T) bool {
	if term == c.head {
		return true
	}
	_, found := slices.BinarySearch(c.members, term)

	return found
}

// Terms returns the head followed by the members.
func (c Cluster[T]) Terms() []T {
	out := make([]T, 0, len(c.members)+1)
	out = append(out, c.head)

	return append(out, c.members...)
}

// String returns a human-readable representation of the cluster.
func (c Cluster[T]) String() string {
	parts := make([]string, len(c.members))
	for i, m := range c.members {
		parts[i] = fmt.Sprint(m)
	}

	return fmt.Sprintf("%v{%s}", c.head, strings.Join(parts, ", "))
}

// Clustering is an ordered sequence of clusters. The index of a cluster is its partition id.
type Clustering[T Term] []Cluster[T]

// Heads returns the head term of every cluster, indexed by partition id.
func (cl Clustering[T]) Heads() []T {
	heads := make([]T, len(cl))
	for i, c := range cl {
		heads[i] = c.head
	}

	return heads
}

// TermCount returns the total number of terms across all clusters.
func (cl Clustering[T]) TermCount() int {
	n := 0
	for _, c := range cl {
		n += c.Size()
	}

	return n
}

// PartitionOf returns the partition id of the cluster containing term, or -1.
//
// Unlike routing, this only finds terms that were part of the clustered domain.
func (cl Clustering[T]) PartitionOf(term T) int {
	for i, c := range cl {
		if c.Contains(term) {
			return i
		}
	}

	return -1
}
