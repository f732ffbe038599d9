package testutil

import (
	"slices"
	"testing"

	"github.com/arloliu/affinity/types"
)

// AssertClusteringPartitions verifies that every domain term appears exactly once
// across the clustering, as a head or as a member, and that no foreign term appears.
//
// Parameters:
//   - t: testing handle
//   - clustering: clustering under test
//   - domain: active domain that was clustered
func AssertClusteringPartitions[T types.Term](t testing.TB, clustering types.Clustering[T], domain []T) {
	t.Helper()

	want := make(map[T]struct{}, len(domain))
	for _, term := range domain {
		want[term] = struct{}{}
	}

	seen := make(map[T]int, len(domain))
	for i, cl := range clustering {
		for _, term := range cl.Terms() {
			if prev, dup := seen[term]; dup {
				t.Fatalf("term %v appears in partitions %d and %d", term, prev, i)
			}
			if _, ok := want[term]; !ok {
				t.Fatalf("partition %d holds term %v outside the domain", i, term)
			}
			seen[term] = i
		}
	}

	if len(seen) != len(want) {
		t.Fatalf("clustering covers %d terms, domain has %d", len(seen), len(want))
	}
}

// AssertMembersMeetAlpha verifies that every member is at least alpha similar to its head.
func AssertMembersMeetAlpha[T types.Term](t testing.TB, clustering types.Clustering[T], sim types.Similarity[T], alpha float64) {
	t.Helper()

	for i, cl := range clustering {
		for _, m := range cl.Members() {
			s, err := sim.Lookup(m, cl.Head())
			if err != nil {
				t.Fatalf("partition %d: lookup %v/%v: %v", i, m, cl.Head(), err)
			}
			if s < alpha {
				t.Fatalf("partition %d: member %v has similarity %v to head %v, below alpha %v", i, m, s, cl.Head(), alpha)
			}
		}
	}
}

// AssertPartitionTable verifies that a partition table maps every partition id in
// [0, partitionCount) to exactly one node from nodes, and nothing else.
//
// Parameters:
//   - t: testing handle
//   - table: partition id -> hosting nodes
//   - partitionCount: expected number of partitions
//   - nodes: topology snapshot passed to the assigner
func AssertPartitionTable(t testing.TB, table map[int][]string, partitionCount int, nodes []string) {
	t.Helper()

	if len(table) != partitionCount {
		t.Fatalf("table has %d partitions, expected %d", len(table), partitionCount)
	}

	for p := range partitionCount {
		owners, ok := table[p]
		if !ok {
			t.Fatalf("partition %d is not assigned", p)
		}
		if len(owners) != 1 {
			t.Fatalf("partition %d has %d owners, expected 1", p, len(owners))
		}
		if !slices.Contains(nodes, owners[0]) {
			t.Fatalf("partition %d assigned to unknown node %s", p, owners[0])
		}
	}
}

// Moved counts the partitions whose owner differs between two tables.
func Moved(before, after map[int][]string) int {
	moved := 0
	for p, owners := range after {
		if !slices.Equal(before[p], owners) {
			moved++
		}
	}

	return moved
}
