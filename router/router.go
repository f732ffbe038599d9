package router

import (
	"fmt"

	"github.com/arloliu/affinity/types"
)

// Router routes keys to partitions of one clustering.
type Router[T types.Term] struct {
	heads   []T
	byHead  map[T]int
	sim     types.Similarity[T]
	logger  types.Logger
	metrics types.RoutingMetrics
}

// New creates a router over a clustering.
//
// Parameters:
//   - clustering: Clusters indexed by partition id (must not be empty)
//   - sim: Similarity lookup used for terms that are not cluster heads
//   - opts: Optional configuration (WithLogger, WithMetrics)
//
// Returns:
//   - *Router[T]: Immutable router
//   - error: ErrEmptyClustering if clustering has no clusters
//
// Example:
//
//	r, err := router.New(clustering, table)
//	if err != nil {
//	    return err
//	}
//	p, err := r.Route(&key)
func New[T types.Term](clustering types.Clustering[T], sim types.Similarity[T], opts ...Option) (*Router[T], error) {
	if len(clustering) == 0 {
		return nil, types.ErrEmptyClustering
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	heads := clustering.Heads()
	byHead := make(map[T]int, len(heads))
	for i, h := range heads {
		byHead[h] = i
	}

	return &Router[T]{
		heads:   heads,
		byHead:  byHead,
		sim:     sim,
		logger:  o.logger,
		metrics: o.metrics,
	}, nil
}

// PartitionCount returns the number of partitions, one per cluster.
func (r *Router[T]) PartitionCount() int {
	return len(r.heads)
}

// Route returns the partition of key.
//
// Parameters:
//   - key: Primary or derived key
//
// Returns:
//   - int: Partition id in [0, PartitionCount())
//   - error: ErrNullKey, ErrUnsupportedKeyKind, ErrUnknownTermSimilarity or ErrPartitionOutOfRange
func (r *Router[T]) Route(key *types.Key[T]) (int, error) {
	if key == nil {
		r.metrics.RecordRoute(types.KeyKindUnknown.String(), false)
		return 0, types.ErrNullKey
	}

	var (
		p   int
		err error
	)
	switch key.Kind {
	case types.KeyKindPrimary:
		p, err = r.routeByTerm(key.Term)
	case types.KeyKindDerived:
		p, err = r.routeByPartition(key.Partition)
	default:
		err = fmt.Errorf("%w: %d", types.ErrUnsupportedKeyKind, key.Kind)
	}

	r.metrics.RecordRoute(key.Kind.String(), err == nil)
	if err != nil {
		r.logger.Debug("route failed", "key", key.String(), "error", err)
		return 0, err
	}

	return p, nil
}

// RouteByTerm returns the partition of the cluster term belongs to.
//
// A cluster head routes to its own partition. Any other term routes to the
// cluster whose head is most similar to it; the lowest partition wins ties.
//
// Returns:
//   - int: Partition id in [0, PartitionCount())
//   - error: Wraps both ErrUnknownTermSimilarity and ErrMissingSimilarity when
//     term cannot be compared with a head
func (r *Router[T]) RouteByTerm(term T) (int, error) {
	p, err := r.routeByTerm(term)
	r.metrics.RecordRoute(types.KeyKindPrimary.String(), err == nil)

	return p, err
}

// RouteByExplicitPartition validates a stored partition id and returns it unchanged.
//
// Returns:
//   - int: partition
//   - error: ErrPartitionOutOfRange if partition is outside [0, PartitionCount())
func (r *Router[T]) RouteByExplicitPartition(partition int) (int, error) {
	p, err := r.routeByPartition(partition)
	r.metrics.RecordRoute(types.KeyKindDerived.String(), err == nil)

	return p, err
}

func (r *Router[T]) routeByTerm(term T) (int, error) {
	if p, ok := r.byHead[term]; ok {
		return p, nil
	}

	best, bestScore := -1, 0.0
	for i, h := range r.heads {
		s, err := r.sim.Lookup(term, h)
		if err != nil {
			return 0, fmt.Errorf("%w: %v: %w", types.ErrUnknownTermSimilarity, term, err)
		}
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}

	return best, nil
}

func (r *Router[T]) routeByPartition(partition int) (int, error) {
	if partition < 0 || partition >= len(r.heads) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", types.ErrPartitionOutOfRange, partition, len(r.heads))
	}

	return partition, nil
}
