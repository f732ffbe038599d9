package cluster

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/arloliu/affinity/types"
)

// Clusterer partitions an active domain into clusters of similar terms.
//
// A Clusterer holds no per-run state; one instance can run any number of
// clusterings, sequentially or concurrently, over the same similarity data.
type Clusterer[T types.Term] struct {
	sim     types.Similarity[T]
	logger  types.Logger
	metrics types.ClusteringMetrics
}

// cell is the mutable cluster used while the clustering is being built.
// members stays sorted ascending for the whole run.
type cell[T types.Term] struct {
	head    T
	members []T
}

// New creates a clusterer over the given similarity data.
//
// Parameters:
//   - sim: Similarity lookup (typically *similarity.Table[T])
//   - opts: Optional configuration (WithLogger, WithMetrics)
//
// Returns:
//   - *Clusterer[T]: Ready-to-use clusterer
//
// Example:
//
//	table, _ := similarity.NewTable(dataset.Similarities)
//	clustering, err := cluster.New(table).Cluster(dataset.Terms, 0.2)
func New[T types.Term](sim types.Similarity[T], opts ...Option) *Clusterer[T] {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Clusterer[T]{
		sim:     sim,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Cluster computes the clustering of domain for threshold alpha.
//
// Parameters:
//   - domain: Ordered, duplicate-free active domain; the first term heads cluster 0
//   - alpha: Similarity threshold in (0, 1]
//
// Returns:
//   - types.Clustering[T]: Clusters indexed by partition id
//   - error: ErrEmptyDomain, ErrInvalidAlpha, ErrDuplicateTerm or ErrMissingSimilarity
func (c *Clusterer[T]) Cluster(domain []T, alpha float64) (types.Clustering[T], error) {
	start := time.Now()

	cells, splits, err := c.run(domain, alpha)
	if err != nil {
		c.metrics.RecordClusteringFailure(failureReason(err))
		return nil, err
	}

	result := make(types.Clustering[T], len(cells))
	for i, cl := range cells {
		result[i] = types.NewCluster(cl.head, cl.members)
	}

	c.metrics.RecordClustering(time.Since(start).Seconds(), len(domain), len(result), splits)
	c.logger.Info("clustering complete",
		"terms", len(domain),
		"clusters", len(result),
		"splits", splits,
		"alpha", alpha,
	)

	return result, nil
}

func (c *Clusterer[T]) run(domain []T, alpha float64) ([]*cell[T], int, error) {
	if len(domain) == 0 {
		return nil, 0, types.ErrEmptyDomain
	}
	if math.IsNaN(alpha) || alpha <= 0 || alpha > 1 {
		return nil, 0, fmt.Errorf("%w: got %v", types.ErrInvalidAlpha, alpha)
	}
	if err := checkDistinct(domain); err != nil {
		return nil, 0, err
	}

	members := slices.Clone(domain[1:])
	slices.Sort(members)
	cells := []*cell[T]{{head: domain[0], members: members}}

	simMin, ok, err := c.minSimilarity(cells)
	if err != nil {
		return nil, 0, err
	}

	splits := 0
	for ok && simMin < alpha {
		j, idx, err := c.splitCandidate(cells, simMin)
		if err != nil {
			return nil, 0, err
		}

		newHead := cells[j].members[idx]
		cells[j].members = slices.Delete(cells[j].members, idx, idx+1)

		moved, err := c.migrate(cells, newHead)
		if err != nil {
			return nil, 0, err
		}
		slices.Sort(moved)
		cells = append(cells, &cell[T]{head: newHead, members: moved})
		splits++

		c.logger.Debug("cluster split",
			"partition", len(cells)-1,
			"head", newHead,
			"from", j,
			"members", len(moved),
			"sim_min", simMin,
		)

		simMin, ok, err = c.minSimilarity(cells)
		if err != nil {
			return nil, 0, err
		}
	}

	return cells, splits, nil
}

// minSimilarity returns the smallest head-member similarity over all clusters.
// ok is false when no cluster has members.
func (c *Clusterer[T]) minSimilarity(cells []*cell[T]) (simMin float64, ok bool, err error) {
	for _, cl := range cells {
		for _, m := range cl.members {
			s, err := c.sim.Lookup(m, cl.head)
			if err != nil {
				return 0, false, err
			}
			if !ok || s < simMin {
				simMin = s
				ok = true
			}
		}
	}

	return simMin, ok, nil
}

// splitCandidate finds the first member, in cluster order then term order,
// whose similarity to its head equals simMin.
func (c *Clusterer[T]) splitCandidate(cells []*cell[T], simMin float64) (int, int, error) {
	for j, cl := range cells {
		for idx, m := range cl.members {
			s, err := c.sim.Lookup(m, cl.head)
			if err != nil {
				return 0, 0, err
			}
			if s == simMin {
				return j, idx, nil
			}
		}
	}

	return 0, 0, fmt.Errorf("no member at minimum similarity %v", simMin)
}

// migrate moves every member that is at least as similar to newHead as to its
// own head out of its cluster and returns the moved terms.
func (c *Clusterer[T]) migrate(cells []*cell[T], newHead T) ([]T, error) {
	var moved []T
	for _, cl := range cells {
		kept := cl.members[:0]
		for _, m := range cl.members {
			toHead, err := c.sim.Lookup(m, cl.head)
			if err != nil {
				return nil, err
			}
			toNew, err := c.sim.Lookup(m, newHead)
			if err != nil {
				return nil, err
			}

			if toHead <= toNew {
				moved = append(moved, m)
			} else {
				kept = append(kept, m)
			}
		}
		cl.members = kept
	}

	return moved, nil
}

func checkDistinct[T types.Term](domain []T) error {
	seen := make(map[T]struct{}, len(domain))
	for _, t := range domain {
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: %v", types.ErrDuplicateTerm, t)
		}
		seen[t] = struct{}{}
	}

	return nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, types.ErrEmptyDomain):
		return "empty_domain"
	case errors.Is(err, types.ErrInvalidAlpha):
		return "invalid_alpha"
	case errors.Is(err, types.ErrDuplicateTerm):
		return "duplicate_term"
	case errors.Is(err, types.ErrMissingSimilarity):
		return "missing_similarity"
	default:
		return "unknown"
	}
}
