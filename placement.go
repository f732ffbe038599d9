package affinity

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/arloliu/affinity/cluster"
	"github.com/arloliu/affinity/collocation"
	"github.com/arloliu/affinity/internal/hooks"
	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/internal/metrics"
	"github.com/arloliu/affinity/router"
	"github.com/arloliu/affinity/similarity"
)

// Placement decides where the records of a partitioned store live.
//
// Placement is the main entry point of the affinity library. It bundles:
//   - The similarity table loaded from a SimilaritySource
//   - The clustering of the active domain (one partition per cluster)
//   - The router mapping keys to partitions
//   - The node assigner mapping partitions to storage nodes
//   - The collocation registry steering derived records to their entity's partition
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - The clustering, table and router are immutable after New
//   - The collocation registry is a concurrent map
//
// Lifecycle:
//   - Create with New(); the clustering is computed before New returns
//   - Use PartitionCount, Route and Assign as the store's placement hooks
//   - Nothing runs in the background, so there is nothing to stop
type Placement[T Term] struct {
	cfg Config

	// Optional dependencies
	assigner NodeAssigner
	hooks    *Hooks
	metrics  MetricsCollector
	logger   Logger

	// Immutable after New
	table      *similarity.Table[T]
	clustering Clustering[T]
	router     *router.Router[T]

	registry *collocation.Registry

	// Last topology passed to Assign, for OnAssignmentChanged
	mu        sync.Mutex
	lastNodes []string
}

// New loads the similarity data, clusters the active domain and returns a ready Placement.
//
// Parameters:
//   - ctx: Context for loading the source
//   - cfg: Configuration (defaults are applied to a copy)
//   - src: Similarity source (e.g., source.NewMeSH(), source.NewFile(...))
//   - opts: Optional configuration (WithAssigner, WithHooks, WithMetrics, WithLogger)
//
// Returns:
//   - *Placement[T]: Initialized placement
//   - error: ErrInvalidConfig, ErrSourceRequired, a source error, or a table,
//     coverage or clustering error
//
// Example:
//
//	cfg := affinity.DefaultConfig()
//	placement, err := affinity.New(ctx, &cfg, source.NewMeSH())
//	if err != nil {
//	    return err
//	}
//	key := affinity.PrimaryKey("person-1", "Cough")
//	partition, err := placement.Route(&key)
func New[T Term](ctx context.Context, cfg *Config, src SimilaritySource[T], opts ...Option) (*Placement[T], error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}
	if src == nil {
		return nil, ErrSourceRequired
	}

	c := *cfg
	SetDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	o := placementOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	c.ValidateWithWarnings(logger)

	collector := o.metrics
	if collector == nil {
		collector = metrics.NewNop()
	}

	assigner := o.assigner
	if assigner == nil {
		var err error
		if assigner, err = NewAssigner(&c); err != nil {
			return nil, err
		}
	}

	p := &Placement[T]{
		cfg:      c,
		assigner: assigner,
		hooks:    hooks.WithDefaults(o.hooks),
		metrics:  collector,
		logger:   logger,
		registry: collocation.NewRegistry(
			collocation.WithLogger(logging.Named(logger, "collocation")),
			collocation.WithMetrics(collector),
		),
	}

	if err := p.build(ctx, src); err != nil {
		return nil, err
	}

	if err := p.hooks.OnClustered(ctx, p.PartitionCount()); err != nil {
		p.logger.Error("OnClustered hook failed", "error", err)
	}

	return p, nil
}

func (p *Placement[T]) build(ctx context.Context, src SimilaritySource[T]) error {
	start := time.Now()

	ds, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load similarity source: %w", err)
	}

	table, err := similarity.NewTable(ds.Similarities)
	if err != nil {
		return err
	}
	if p.cfg.StrictCoverage {
		if err := table.Covers(ds.Terms); err != nil {
			return err
		}
	}

	clustering, err := cluster.New[T](table,
		cluster.WithLogger(logging.Named(p.logger, "cluster")),
		cluster.WithMetrics(p.metrics),
	).Cluster(ds.Terms, p.cfg.Alpha)
	if err != nil {
		return err
	}

	r, err := router.New(clustering, table,
		router.WithLogger(logging.Named(p.logger, "router")),
		router.WithMetrics(p.metrics),
	)
	if err != nil {
		return err
	}

	p.table = table
	p.clustering = clustering
	p.router = r

	p.logger.Info("placement ready",
		"terms", len(ds.Terms),
		"similarities", table.Len(),
		"partitions", len(clustering),
		"alpha", p.cfg.Alpha,
		"duration", time.Since(start),
	)
	for i, cl := range clustering {
		p.logger.Debug("partition", "partition", i, "fragment", p.fragmentName(i), "cluster", cl.String())
	}

	return nil
}

// Config returns the effective configuration (defaults applied).
func (p *Placement[T]) Config() Config {
	return p.cfg
}

// PartitionCount returns the number of partitions, one per cluster.
func (p *Placement[T]) PartitionCount() int {
	return p.router.PartitionCount()
}

// Clustering returns the clusters indexed by partition id.
func (p *Placement[T]) Clustering() Clustering[T] {
	return slices.Clone(p.clustering)
}

// Similarity returns the similarity of two terms from the loaded table.
func (p *Placement[T]) Similarity(a, b T) (float64, error) {
	return p.table.Lookup(a, b)
}

// Route returns the partition of key.
//
// Returns:
//   - int: Partition id in [0, PartitionCount())
//   - error: ErrNullKey, ErrUnsupportedKeyKind, ErrUnknownTermSimilarity or ErrPartitionOutOfRange
func (p *Placement[T]) Route(key *Key[T]) (int, error) {
	return p.router.Route(key)
}

// RouteByTerm returns the partition of the cluster term belongs to.
func (p *Placement[T]) RouteByTerm(term T) (int, error) {
	return p.router.RouteByTerm(term)
}

// RouteByExplicitPartition validates a stored partition id and returns it unchanged.
func (p *Placement[T]) RouteByExplicitPartition(partition int) (int, error) {
	return p.router.RouteByExplicitPartition(partition)
}

// Assign computes the hosting node of every partition for a topology snapshot.
//
// OnAssignmentChanged is called when the snapshot differs from the previous call.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - nodes: Snapshot of live node ids
//
// Returns:
//   - map[int][]string: Partition id → hosting node ids
//   - error: ErrNoNodesAvailable or an assigner error
func (p *Placement[T]) Assign(ctx context.Context, nodes []string) (map[int][]string, error) {
	table, err := p.assigner.Assign(p.PartitionCount(), nodes)
	if err != nil {
		p.logger.Warn("node assignment failed", "nodes", len(nodes), "error", err)
		if hookErr := p.hooks.OnError(ctx, err); hookErr != nil {
			p.logger.Error("OnError hook failed", "error", hookErr)
		}

		return nil, err
	}
	p.metrics.RecordAssignment(len(table), len(nodes))

	p.mu.Lock()
	changed := !slices.Equal(p.lastNodes, nodes)
	if changed {
		p.lastNodes = slices.Clone(nodes)
	}
	p.mu.Unlock()

	if changed {
		p.logger.Info("partition table changed", "partitions", len(table), "nodes", len(nodes))
		if err := p.hooks.OnAssignmentChanged(ctx, table); err != nil {
			p.logger.Error("OnAssignmentChanged hook failed", "error", err)
		}
	}

	return table, nil
}

// FragmentName returns the store fragment holding partition.
//
// Returns:
//   - string: "<FragmentPrefix>_<partition>"
//   - error: ErrPartitionOutOfRange
func (p *Placement[T]) FragmentName(partition int) (string, error) {
	if partition < 0 || partition >= p.PartitionCount() {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrPartitionOutOfRange, partition, p.PartitionCount())
	}

	return p.fragmentName(partition), nil
}

// Fragments returns the fragment names of all partitions, indexed by partition id.
func (p *Placement[T]) Fragments() []string {
	names := make([]string, p.PartitionCount())
	for i := range names {
		names[i] = p.fragmentName(i)
	}

	return names
}

func (p *Placement[T]) fragmentName(partition int) string {
	return fmt.Sprintf("%s_%d", p.cfg.FragmentPrefix, partition)
}

// BindPrimary routes a primary key and binds its entity to the resulting partition.
//
// The first primary record of an entity decides the partition of the entity's
// derived record. Later primary records routed elsewhere do not move it; the
// returned binding is then Pinned and Partition differs from the route.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - key: Primary key being written
//
// Returns:
//   - Binding: Partition for the entity's derived record
//   - error: ErrNullKey, ErrUnsupportedKeyKind or a routing error
func (p *Placement[T]) BindPrimary(ctx context.Context, key *Key[T]) (Binding, error) {
	if key == nil {
		return Binding{}, ErrNullKey
	}
	if key.Kind != KeyKindPrimary {
		return Binding{}, fmt.Errorf("%w: binding needs a primary key, got %s", ErrUnsupportedKeyKind, key.Kind)
	}

	partition, err := p.router.Route(key)
	if err != nil {
		if hookErr := p.hooks.OnError(ctx, err); hookErr != nil {
			p.logger.Error("OnError hook failed", "error", hookErr)
		}

		return Binding{}, err
	}

	return p.registry.Bind(key.Entity, partition), nil
}

// DerivedKey returns the derived key of entity, carrying its bound partition.
//
// Returns:
//   - Key[T]: Derived key
//   - error: ErrUnboundEntity if no primary record of entity was bound
func (p *Placement[T]) DerivedKey(entity string) (Key[T], error) {
	partition, err := p.registry.Lookup(entity)
	if err != nil {
		return Key[T]{}, err
	}

	return DerivedKey[T](entity, partition), nil
}

// Forget drops the binding of entity. It reports whether one existed.
func (p *Placement[T]) Forget(entity string) bool {
	return p.registry.Forget(entity)
}

// IsPlacementError reports whether err is one of the sentinel errors of this package.
func IsPlacementError(err error) bool {
	for _, target := range []error{
		ErrEmptyDomain, ErrInvalidAlpha, ErrDuplicateTerm,
		ErrMissingSimilarity, ErrInvalidSimilarity, ErrConflictingSimilarity,
		ErrUnknownTermSimilarity, ErrUnsupportedKeyKind, ErrNullKey, ErrPartitionOutOfRange, ErrEmptyClustering,
		ErrNoNodesAvailable, ErrInvalidPartitionCount,
		ErrInvalidConfig, ErrSourceRequired, ErrMalformedFeed, ErrUnboundEntity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
