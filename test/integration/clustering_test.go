package integration_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/affinity"
	"github.com/arloliu/affinity/similarity"
	"github.com/arloliu/affinity/source"
	"github.com/arloliu/affinity/strategy"
	"github.com/arloliu/affinity/test/testutil"
)

// TestClustering_Invariants checks the clustering and routing invariants over
// generated datasets and a range of thresholds.
func TestClustering_Invariants(t *testing.T) {
	ctx := context.Background()

	for _, seed := range []uint64{1, 2, 3} {
		ds := testutil.RandomDataset(seed, 40, 4)
		table, err := similarity.NewTable(ds.Similarities)
		require.NoError(t, err)

		for _, alpha := range []float64{0.05, 0.3, 0.6, 0.9, 1} {
			t.Run(fmt.Sprintf("seed %d alpha %.2f", seed, alpha), func(t *testing.T) {
				cfg := affinity.DefaultConfig()
				cfg.Alpha = alpha

				p, err := affinity.New(ctx, &cfg, source.NewStatic(ds))
				require.NoError(t, err)

				clustering := p.Clustering()
				testutil.AssertClusteringPartitions(t, clustering, ds.Terms)
				testutil.AssertMembersMeetAlpha(t, clustering, table, alpha)
				require.Equal(t, ds.Terms[0], clustering[0].Head())

				for i, head := range clustering.Heads() {
					part, err := p.RouteByTerm(head)
					require.NoError(t, err)
					require.Equal(t, i, part)
				}
				for _, term := range ds.Terms {
					part, err := p.RouteByTerm(term)
					require.NoError(t, err)
					require.GreaterOrEqual(t, part, 0)
					require.Less(t, part, p.PartitionCount())
				}

				assigned, err := p.Assign(ctx, []string{"N0", "N1", "N2"})
				require.NoError(t, err)
				testutil.AssertPartitionTable(t, assigned, p.PartitionCount(), []string{"N0", "N1", "N2"})
			})
		}
	}
}

// TestClustering_FamiliesStayTogether verifies that well separated families of
// similar terms end up in one partition each.
func TestClustering_FamiliesStayTogether(t *testing.T) {
	ds := testutil.RandomDataset(11, 24, 6)

	cfg := affinity.DefaultConfig()
	cfg.Alpha = 0.4

	p, err := affinity.New(context.Background(), &cfg, source.NewStatic(ds))
	require.NoError(t, err)
	require.Equal(t, 4, p.PartitionCount())

	for _, cl := range p.Clustering() {
		family := -1
		for _, term := range cl.Terms() {
			var idx int
			_, err := fmt.Sscanf(term, "term-%d", &idx)
			require.NoError(t, err)

			if family == -1 {
				family = idx / 6
			}
			require.Equal(t, family, idx/6, "cluster %s mixes families", cl)
		}
	}
}

// TestAssignment_TopologyChange compares partition movement of the assigners
// when a node joins.
func TestAssignment_TopologyChange(t *testing.T) {
	const partitions = 64
	before := []string{"N0", "N1", "N2", "N3"}
	after := append([]string{"N4"}, before...)

	moved := make(map[string]int)
	for name, assigner := range map[string]affinity.NodeAssigner{
		"modulo":         strategy.NewModulo(),
		"consistentHash": strategy.NewConsistentHash(),
		"rendezvous":     strategy.NewRendezvous(),
	} {
		t1, err := assigner.Assign(partitions, before)
		require.NoError(t, err)
		testutil.AssertPartitionTable(t, t1, partitions, before)

		t2, err := assigner.Assign(partitions, after)
		require.NoError(t, err)
		testutil.AssertPartitionTable(t, t2, partitions, after)

		moved[name] = testutil.Moved(t1, t2)
	}

	t.Logf("partitions moved on join: %v", moved)
	require.Less(t, moved["consistentHash"], moved["modulo"])
	require.Less(t, moved["rendezvous"], moved["modulo"])

	// Hash based assigners only move partitions onto the new node.
	for _, name := range []string{"consistentHash", "rendezvous"} {
		require.LessOrEqual(t, moved[name], partitions/2, name)
	}
}
