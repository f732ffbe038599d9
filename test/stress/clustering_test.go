package stress_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/affinity"
	"github.com/arloliu/affinity/cluster"
	"github.com/arloliu/affinity/similarity"
	"github.com/arloliu/affinity/source"
	"github.com/arloliu/affinity/test/testutil"
)

// TestClustering_LargeDomain clusters domains of increasing size and reports the run time.
func TestClustering_LargeDomain(t *testing.T) {
	requireStressEnabled(t)

	for _, n := range []int{100, 250, 500} {
		t.Run(fmt.Sprintf("%d terms", n), func(t *testing.T) {
			ds := testutil.RandomDataset(uint64(n), n, 10)
			cfg := affinity.DefaultConfig()
			cfg.Alpha = 0.4

			start := time.Now()
			p, err := affinity.New(context.Background(), &cfg, source.NewStatic(ds))
			require.NoError(t, err)

			testutil.AssertClusteringPartitions(t, p.Clustering(), ds.Terms)
			t.Logf("%d terms -> %d partitions in %v", n, p.PartitionCount(), time.Since(start))
		})
	}
}

// TestCollocation_ConcurrentBinding binds many entities from many goroutines
// and verifies every derived key lands on its entity's first partition.
func TestCollocation_ConcurrentBinding(t *testing.T) {
	requireStressEnabled(t)

	ctx := context.Background()
	ds := testutil.RandomDataset(3, 60, 6)
	cfg := affinity.DefaultConfig()
	cfg.Alpha = 0.4

	p, err := affinity.New(ctx, &cfg, source.NewStatic(ds))
	require.NoError(t, err)

	const (
		goroutines = 32
		entities   = 1000
	)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range entities {
				key := affinity.PrimaryKey(fmt.Sprintf("person-%d", i), ds.Terms[(g+i)%len(ds.Terms)])
				if _, err := p.BindPrimary(ctx, &key); err != nil {
					t.Errorf("bind %s: %v", key, err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	for i := range entities {
		derived, err := p.DerivedKey(fmt.Sprintf("person-%d", i))
		require.NoError(t, err)

		part, err := p.Route(&derived)
		require.NoError(t, err)
		require.Equal(t, derived.Partition, part)
	}
}

func BenchmarkCluster(b *testing.B) {
	for _, n := range []int{50, 200} {
		ds := testutil.RandomDataset(uint64(n), n, 10)
		table, err := similarity.NewTable(ds.Similarities)
		require.NoError(b, err)
		c := cluster.New[string](table)

		b.Run(fmt.Sprintf("%d terms", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Cluster(ds.Terms, 0.4); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRoute(b *testing.B) {
	ds := testutil.RandomDataset(5, 200, 10)
	cfg := affinity.DefaultConfig()
	cfg.Alpha = 0.4

	p, err := affinity.New(context.Background(), &cfg, source.NewStatic(ds))
	require.NoError(b, err)

	keys := make([]affinity.Key[string], len(ds.Terms))
	for i, term := range ds.Terms {
		keys[i] = affinity.PrimaryKey("person", term)
	}

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		if _, err := p.Route(&keys[i%len(keys)]); err != nil {
			b.Fatal(err)
		}
		i++
	}
}
