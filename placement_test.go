package affinity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/affinity/source"
	"github.com/arloliu/affinity/strategy"
	affinitytest "github.com/arloliu/affinity/testing"
)

type failingSource struct{ err error }

func (s *failingSource) Load(_ /* ctx */ context.Context) (Dataset[string], error) {
	return Dataset[string]{}, s.err
}

func newMeSHPlacement(t *testing.T, alpha float64, opts ...Option) *Placement[string] {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Alpha = alpha

	p, err := New(context.Background(), &cfg, source.NewMeSH(), opts...)
	require.NoError(t, err)

	return p
}

func TestNew_RequiredParameters(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	t.Run("nil config", func(t *testing.T) {
		p, err := New[string](ctx, nil, source.NewMeSH())
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, p)
	})

	t.Run("nil source", func(t *testing.T) {
		p, err := New[string](ctx, &cfg, nil)
		require.ErrorIs(t, err, ErrSourceRequired)
		require.Nil(t, p)
	})

	t.Run("invalid alpha", func(t *testing.T) {
		bad := DefaultConfig()
		bad.Alpha = 1.5

		_, err := New(ctx, &bad, source.NewMeSH())
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("source error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")

		_, err := New[string](ctx, &cfg, &failingSource{err: boom})
		require.ErrorIs(t, err, boom)
	})

	t.Run("empty domain", func(t *testing.T) {
		_, err := New(ctx, &cfg, source.NewStatic(Dataset[string]{}))
		require.ErrorIs(t, err, ErrEmptyDomain)
	})

	t.Run("does not modify caller config", func(t *testing.T) {
		partial := Config{Alpha: 0.25}

		p, err := New(ctx, &partial, source.NewMeSH())
		require.NoError(t, err)
		require.Empty(t, partial.FragmentPrefix)
		require.Equal(t, "ill", p.Config().FragmentPrefix)
	})
}

func TestNew_StrictCoverage(t *testing.T) {
	ctx := context.Background()
	ds := Dataset[string]{
		Terms: []string{"a", "b", "c"},
		Similarities: []SimilarityEntry[string]{
			{A: "a", B: "b", Score: 0.9},
			{A: "a", B: "c", Score: 0.1},
		},
	}

	t.Run("strict rejects incomplete table", func(t *testing.T) {
		cfg := DefaultConfig()

		_, err := New(ctx, &cfg, source.NewStatic(ds))
		require.ErrorIs(t, err, ErrMissingSimilarity)
	})

	t.Run("lenient fails only when the pair is looked up", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StrictCoverage = false
		cfg.Alpha = 0.1

		// No split happens, so (b, c) is never compared.
		p, err := New(ctx, &cfg, source.NewStatic(ds))
		require.NoError(t, err)
		require.Equal(t, 1, p.PartitionCount())

		part, err := p.RouteByTerm("b")
		require.NoError(t, err)
		require.Equal(t, 0, part)
	})
}

func TestPlacement_MeSHScenario(t *testing.T) {
	t.Run("low alpha yields one partition", func(t *testing.T) {
		p := newMeSHPlacement(t, 0.10)
		require.Equal(t, 1, p.PartitionCount())

		part, err := p.RouteByTerm("Cough")
		require.NoError(t, err)
		require.Zero(t, part)
	})

	t.Run("default alpha separates respiratory terms from fractures", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)
		require.Equal(t, 2, p.PartitionCount())

		clustering := p.Clustering()
		require.Equal(t, "Asthma", clustering[0].Head())
		require.Equal(t, []string{"Cough", "Influenza"}, clustering[0].Members())
		require.Equal(t, "Tibial-Fracture", clustering[1].Head())
		require.Equal(t, []string{"Ulna-Fracture"}, clustering[1].Members())

		key := PrimaryKey("person-1", "Ulna-Fracture")
		part, err := p.Route(&key)
		require.NoError(t, err)
		require.Equal(t, 1, part)
	})

	t.Run("clustering is a copy", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)

		clustering := p.Clustering()
		clustering[0] = clustering[1]

		require.Equal(t, "Asthma", p.Clustering()[0].Head())
	})

	t.Run("similarity lookups use the loaded table", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)

		s, err := p.Similarity("Ulna-Fracture", "Tibial-Fracture")
		require.NoError(t, err)
		require.InDelta(t, 0.3333, s, 1e-9)

		_, err = p.Similarity("Asthma", "Gout")
		require.ErrorIs(t, err, ErrMissingSimilarity)
	})
}

func TestPlacement_Route(t *testing.T) {
	p := newMeSHPlacement(t, DefaultAlpha)

	t.Run("nil key", func(t *testing.T) {
		_, err := p.Route(nil)
		require.ErrorIs(t, err, ErrNullKey)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := p.Route(&Key[string]{Entity: "person-1"})
		require.ErrorIs(t, err, ErrUnsupportedKeyKind)
	})

	t.Run("derived key is echoed", func(t *testing.T) {
		key := DerivedKey[string]("person-1", 1)

		part, err := p.Route(&key)
		require.NoError(t, err)
		require.Equal(t, 1, part)
	})

	t.Run("derived key out of range", func(t *testing.T) {
		key := DerivedKey[string]("person-1", 2)

		_, err := p.Route(&key)
		require.ErrorIs(t, err, ErrPartitionOutOfRange)

		_, err = p.RouteByExplicitPartition(-1)
		require.ErrorIs(t, err, ErrPartitionOutOfRange)
	})

	t.Run("unknown term", func(t *testing.T) {
		key := PrimaryKey("person-1", "Gout")

		_, err := p.Route(&key)
		require.ErrorIs(t, err, ErrUnknownTermSimilarity)
		require.ErrorIs(t, err, ErrMissingSimilarity)
	})
}

func TestPlacement_Fragments(t *testing.T) {
	p := newMeSHPlacement(t, DefaultAlpha)

	require.Equal(t, []string{"ill_0", "ill_1"}, p.Fragments())

	name, err := p.FragmentName(1)
	require.NoError(t, err)
	require.Equal(t, "ill_1", name)

	_, err = p.FragmentName(2)
	require.ErrorIs(t, err, ErrPartitionOutOfRange)

	t.Run("custom prefix", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.FragmentPrefix = "diagnosis"

		custom, err := New(context.Background(), &cfg, source.NewMeSH())
		require.NoError(t, err)
		require.Equal(t, []string{"diagnosis_0", "diagnosis_1"}, custom.Fragments())
	})
}

func TestPlacement_Collocation(t *testing.T) {
	ctx := context.Background()

	t.Run("derived key follows the first primary record", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)

		first := PrimaryKey("person-1", "Tibial-Fracture")
		b, err := p.BindPrimary(ctx, &first)
		require.NoError(t, err)
		require.True(t, b.Fresh)
		require.Equal(t, 1, b.Partition)

		derived, err := p.DerivedKey("person-1")
		require.NoError(t, err)
		require.Equal(t, KeyKindDerived, derived.Kind)

		part, err := p.Route(&derived)
		require.NoError(t, err)
		require.Equal(t, 1, part)
	})

	t.Run("later primary record in another cluster is pinned", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)

		first := PrimaryKey("person-1", "Cough")
		_, err := p.BindPrimary(ctx, &first)
		require.NoError(t, err)

		second := PrimaryKey("person-1", "Ulna-Fracture")
		b, err := p.BindPrimary(ctx, &second)
		require.NoError(t, err)
		require.True(t, b.Pinned)
		require.False(t, b.Fresh)
		require.Equal(t, 0, b.Partition)
		require.Equal(t, 1, b.Requested)
	})

	t.Run("unbound entity", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)

		_, err := p.DerivedKey("nobody")
		require.ErrorIs(t, err, ErrUnboundEntity)
	})

	t.Run("forget releases the binding", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)

		key := PrimaryKey("person-1", "Cough")
		_, err := p.BindPrimary(ctx, &key)
		require.NoError(t, err)

		require.True(t, p.Forget("person-1"))
		require.False(t, p.Forget("person-1"))

		_, err = p.DerivedKey("person-1")
		require.ErrorIs(t, err, ErrUnboundEntity)
	})

	t.Run("rejects non-primary keys", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)

		_, err := p.BindPrimary(ctx, nil)
		require.ErrorIs(t, err, ErrNullKey)

		derived := DerivedKey[string]("person-1", 0)
		_, err = p.BindPrimary(ctx, &derived)
		require.ErrorIs(t, err, ErrUnsupportedKeyKind)
	})

	t.Run("routing errors reach OnError", func(t *testing.T) {
		var got error
		hooks := &Hooks{
			OnError: func(_ context.Context, err error) error {
				got = err
				return nil
			},
		}
		p := newMeSHPlacement(t, DefaultAlpha, WithHooks(hooks))

		key := PrimaryKey("person-1", "Gout")
		_, err := p.BindPrimary(ctx, &key)
		require.ErrorIs(t, err, ErrUnknownTermSimilarity)
		require.ErrorIs(t, got, ErrUnknownTermSimilarity)
	})

	t.Run("concurrent binds agree on one partition", func(t *testing.T) {
		p := newMeSHPlacement(t, DefaultAlpha)
		terms := source.MeSHSample().Terms

		var wg sync.WaitGroup
		partitions := make([]int, 50)
		for i := range partitions {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := PrimaryKey("person-1", terms[i%len(terms)])
				b, err := p.BindPrimary(ctx, &key)
				if err == nil {
					partitions[i] = b.Partition
				}
			}(i)
		}
		wg.Wait()

		for _, part := range partitions {
			require.Equal(t, partitions[0], part)
		}
	})
}

func TestPlacement_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("modulo assigns round the node list", func(t *testing.T) {
		p := newMeSHPlacement(t, 0.25)
		require.Equal(t, 4, p.PartitionCount())

		table, err := p.Assign(ctx, []string{"N0", "N1"})
		require.NoError(t, err)
		require.Equal(t, map[int][]string{
			0: {"N0"},
			1: {"N1"},
			2: {"N0"},
			3: {"N1"},
		}, table)
	})

	t.Run("no nodes", func(t *testing.T) {
		var hookErr error
		hooks := &Hooks{
			OnError: func(_ context.Context, err error) error {
				hookErr = err
				return nil
			},
		}
		p := newMeSHPlacement(t, DefaultAlpha, WithHooks(hooks))

		_, err := p.Assign(ctx, nil)
		require.ErrorIs(t, err, ErrNoNodesAvailable)
		require.ErrorIs(t, hookErr, ErrNoNodesAvailable)
	})

	t.Run("OnAssignmentChanged fires on topology changes only", func(t *testing.T) {
		calls := 0
		hooks := &Hooks{
			OnAssignmentChanged: func(_ context.Context, table map[int][]string) error {
				calls++
				require.Len(t, table, 2)

				return errors.New("hook errors are logged, not returned")
			},
		}
		p := newMeSHPlacement(t, DefaultAlpha, WithHooks(hooks))

		_, err := p.Assign(ctx, []string{"N0", "N1"})
		require.NoError(t, err)
		_, err = p.Assign(ctx, []string{"N0", "N1"})
		require.NoError(t, err)
		require.Equal(t, 1, calls)

		_, err = p.Assign(ctx, []string{"N0"})
		require.NoError(t, err)
		require.Equal(t, 2, calls)
	})

	t.Run("custom assigner", func(t *testing.T) {
		p := newMeSHPlacement(t, 0.4, WithAssigner(strategy.NewRendezvous()))
		nodes := []string{"N0", "N1", "N2"}

		table, err := p.Assign(ctx, nodes)
		require.NoError(t, err)
		require.Len(t, table, p.PartitionCount())
		for part, owners := range table {
			require.Len(t, owners, 1, "partition %d", part)
			require.Contains(t, nodes, owners[0])
		}
	})

	t.Run("strategy from config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Strategy = StrategyConsistentHash
		cfg.VirtualNodes = 16

		p, err := New(ctx, &cfg, source.NewMeSH())
		require.NoError(t, err)

		first, err := p.Assign(ctx, []string{"N0", "N1"})
		require.NoError(t, err)
		second, err := p.Assign(ctx, []string{"N1", "N0"})
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestPlacement_HooksAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(reg, "test")

	clustered := -1
	hooks := &Hooks{
		OnClustered: func(_ context.Context, partitions int) error {
			clustered = partitions
			return nil
		},
	}

	p := newMeSHPlacement(t, DefaultAlpha,
		WithHooks(hooks),
		WithMetrics(metrics),
		WithLogger(affinitytest.NewTestLogger(t)),
	)
	require.Equal(t, 2, clustered)

	key := PrimaryKey("person-1", "Cough")
	_, err := p.BindPrimary(context.Background(), &key)
	require.NoError(t, err)
	_, err = p.Assign(context.Background(), []string{"N0"})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg,
		"test_clustering_runs_total",
		"test_router_routes_total",
		"test_collocation_bindings_total",
		"test_assignment_computed_total",
	)
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestPlacement_FileSourceFromConfig(t *testing.T) {
	dir := t.TempDir()
	termsPath := filepath.Join(dir, "terms.txt")
	simsPath := filepath.Join(dir, "similarities.txt")

	require.NoError(t, os.WriteFile(termsPath, []byte("Asthma\nCough\nTibial-Fracture\n"), 0o600))
	require.NoError(t, os.WriteFile(simsPath, []byte(
		"0.2<>Asthma(C0004096)<>Cough(C0010200)\n"+
			"0.1429<>Asthma(C0004096)<>Tibial-Fracture(C0040185)\n"+
			"0.1429<>Cough(C0010200)<>Tibial-Fracture(C0040185)\n"), 0o600))

	cfg, err := ParseConfig([]byte(
		"alpha: 0.2\n" +
			"source:\n" +
			"  termsFile: " + termsPath + "\n" +
			"  similaritiesFile: " + simsPath + "\n"))
	require.NoError(t, err)

	p, err := New(context.Background(), &cfg, NewSourceFromConfig(&cfg, nil))
	require.NoError(t, err)
	require.Equal(t, 2, p.PartitionCount())

	part, err := p.RouteByTerm("Cough")
	require.NoError(t, err)
	require.Equal(t, 0, part)
}

func TestPlacement_NATSKVSource(t *testing.T) {
	_, nc := affinitytest.StartEmbeddedNATS(t)
	kv := affinitytest.CreateJetStreamKV(t, nc, "placement-feed")
	ctx := context.Background()

	require.NoError(t, source.PublishDataset(ctx, kv, source.MeSHSample()))

	cfg := DefaultConfig()
	p, err := New(ctx, &cfg, source.NewNATSKV(kv))
	require.NoError(t, err)
	require.Equal(t, []string{"ill_0", "ill_1"}, p.Fragments())
}

func TestIsPlacementError(t *testing.T) {
	require.True(t, IsPlacementError(ErrNullKey))
	require.True(t, IsPlacementError(errors.Join(errors.New("context"), ErrNoNodesAvailable)))
	require.False(t, IsPlacementError(errors.New("other")))
	require.False(t, IsPlacementError(nil))
}
