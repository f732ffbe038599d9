package router

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/affinity/cluster"
	"github.com/arloliu/affinity/similarity"
	"github.com/arloliu/affinity/source"
	"github.com/arloliu/affinity/types"
)

func meshRouter(t *testing.T, alpha float64, opts ...Option) (*Router[string], types.Clustering[string]) {
	t.Helper()

	ds := source.MeSHSample()
	table, err := similarity.NewTable(ds.Similarities)
	require.NoError(t, err)

	clustering, err := cluster.New[string](table).Cluster(ds.Terms, alpha)
	require.NoError(t, err)

	r, err := New(clustering, table, opts...)
	require.NoError(t, err)

	return r, clustering
}

func TestNew_EmptyClustering(t *testing.T) {
	table := similarity.MustTable[string](nil)

	_, err := New(types.Clustering[string]{}, table)
	require.ErrorIs(t, err, types.ErrEmptyClustering)

	_, err = New[string](nil, table)
	require.ErrorIs(t, err, types.ErrEmptyClustering)
}

func TestRouter_RouteByTerm(t *testing.T) {
	t.Run("single cluster routes everything to zero", func(t *testing.T) {
		r, _ := meshRouter(t, 0.10)
		require.Equal(t, 1, r.PartitionCount())

		for _, term := range source.MeSHSample().Terms {
			p, err := r.RouteByTerm(term)
			require.NoError(t, err)
			require.Zero(t, p)
		}
	})

	t.Run("members follow their closest head", func(t *testing.T) {
		r, _ := meshRouter(t, 0.2)
		require.Equal(t, 2, r.PartitionCount())

		tests := map[string]int{
			"Asthma":          0,
			"Cough":           0,
			"Influenza":       0,
			"Tibial-Fracture": 1,
			"Ulna-Fracture":   1,
		}
		for term, want := range tests {
			got, err := r.RouteByTerm(term)
			require.NoError(t, err)
			require.Equal(t, want, got, term)
		}
	})

	t.Run("heads route to their own partition", func(t *testing.T) {
		for _, alpha := range []float64{0.1, 0.2, 0.25, 0.4} {
			r, clustering := meshRouter(t, alpha)

			for i, h := range clustering.Heads() {
				p, err := r.RouteByTerm(h)
				require.NoError(t, err)
				require.Equal(t, i, p)
			}
		}
	})

	t.Run("routing agrees with cluster membership", func(t *testing.T) {
		r, clustering := meshRouter(t, 0.2)

		for _, term := range source.MeSHSample().Terms {
			p, err := r.RouteByTerm(term)
			require.NoError(t, err)
			require.Equal(t, clustering.PartitionOf(term), p)
		}
	})

	t.Run("unknown term wraps missing similarity", func(t *testing.T) {
		r, _ := meshRouter(t, 0.2)

		_, err := r.RouteByTerm("Pneumonia")

		require.ErrorIs(t, err, types.ErrUnknownTermSimilarity)
		require.ErrorIs(t, err, types.ErrMissingSimilarity)
		require.Contains(t, err.Error(), "Pneumonia")
	})

	t.Run("ties pick lowest partition", func(t *testing.T) {
		table := similarity.MustTable([]types.SimilarityEntry[int]{
			{A: 1, B: 2, Score: 0.1},
			{A: 1, B: 9, Score: 0.5},
			{A: 2, B: 9, Score: 0.5},
		})
		clustering := types.Clustering[int]{
			types.NewCluster(1, nil),
			types.NewCluster(2, nil),
		}
		r, err := New(clustering, table)
		require.NoError(t, err)

		p, err := r.RouteByTerm(9)
		require.NoError(t, err)
		require.Zero(t, p)
	})
}

func TestRouter_RouteByExplicitPartition(t *testing.T) {
	r, _ := meshRouter(t, 0.25)
	require.Equal(t, 4, r.PartitionCount())

	for p := range r.PartitionCount() {
		got, err := r.RouteByExplicitPartition(p)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}

	for _, p := range []int{-1, 4, 100} {
		_, err := r.RouteByExplicitPartition(p)
		require.ErrorIs(t, err, types.ErrPartitionOutOfRange, "partition=%d", p)
	}
}

func TestRouter_Route(t *testing.T) {
	r, _ := meshRouter(t, 0.2)

	t.Run("primary key", func(t *testing.T) {
		key := types.PrimaryKey("person-1", "Ulna-Fracture")

		p, err := r.Route(&key)

		require.NoError(t, err)
		require.Equal(t, 1, p)
	})

	t.Run("derived key", func(t *testing.T) {
		key := types.DerivedKey[string]("person-1", 1)

		p, err := r.Route(&key)

		require.NoError(t, err)
		require.Equal(t, 1, p)
	})

	t.Run("derived key out of range", func(t *testing.T) {
		key := types.DerivedKey[string]("person-1", 2)

		_, err := r.Route(&key)

		require.ErrorIs(t, err, types.ErrPartitionOutOfRange)
	})

	t.Run("nil key", func(t *testing.T) {
		_, err := r.Route(nil)

		require.ErrorIs(t, err, types.ErrNullKey)
	})

	t.Run("zero key has unsupported kind", func(t *testing.T) {
		_, err := r.Route(&types.Key[string]{Entity: "person-1"})

		require.ErrorIs(t, err, types.ErrUnsupportedKeyKind)
	})
}

type spyMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (s *spyMetrics) RecordRoute(kind string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !success {
		kind += "/failed"
	}
	s.counts[kind]++
}

func TestRouter_Metrics(t *testing.T) {
	spy := &spyMetrics{counts: map[string]int{}}
	r, _ := meshRouter(t, 0.2, WithMetrics(spy))

	primary := types.PrimaryKey("p", "Cough")
	derived := types.DerivedKey[string]("p", 7)
	_, _ = r.Route(&primary)
	_, _ = r.Route(&derived)
	_, _ = r.Route(nil)
	_, _ = r.RouteByTerm("Asthma")

	require.Equal(t, map[string]int{
		"primary":        2,
		"derived/failed": 1,
		"unknown/failed": 1,
	}, spy.counts)
}

func TestRouter_ConcurrentRoutes(t *testing.T) {
	r, _ := meshRouter(t, 0.2)
	terms := source.MeSHSample().Terms

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 64 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := types.PrimaryKey("person", terms[i%len(terms)])
			p, err := r.Route(&key)
			if err != nil {
				errs <- err
				return
			}
			if p < 0 || p >= r.PartitionCount() {
				errs <- types.ErrPartitionOutOfRange
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
