package source

import (
	"context"
	"slices"
	"sync"

	"github.com/arloliu/affinity/types"
)

// Static implements a similarity source with a fixed dataset.
type Static[T types.Term] struct {
	mu      sync.RWMutex
	dataset types.Dataset[T]
}

var _ types.SimilaritySource[string] = (*Static[string])(nil)

// NewStatic creates a new static similarity source.
//
// Useful for testing and for small domains known at startup.
//
// Parameters:
//   - dataset: Active domain and similarities
//
// Returns:
//   - *Static[T]: Initialized static source
//
// Example:
//
//	src := source.NewStatic(types.Dataset[string]{
//	    Terms: []string{"Asthma", "Cough"},
//	    Similarities: []types.SimilarityEntry[string]{
//	        {A: "Asthma", B: "Cough", Score: 0.2},
//	    },
//	})
//	placement, err := affinity.New(ctx, &cfg, src)
func NewStatic[T types.Term](dataset types.Dataset[T]) *Static[T] {
	return &Static[T]{dataset: cloneDataset(dataset)}
}

// Load returns a copy of the dataset.
//
// Returns:
//   - types.Dataset[T]: The fixed dataset
//   - error: Always nil unless ctx is already done
func (s *Static[T]) Load(ctx context.Context) (types.Dataset[T], error) {
	if err := ctx.Err(); err != nil {
		return types.Dataset[T]{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneDataset(s.dataset), nil
}

// Update replaces the dataset returned by later Load calls.
//
// A placement loads its source once, so Update only affects placements built afterwards.
func (s *Static[T]) Update(dataset types.Dataset[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = cloneDataset(dataset)
}

func cloneDataset[T types.Term](ds types.Dataset[T]) types.Dataset[T] {
	return types.Dataset[T]{
		Terms:        slices.Clone(ds.Terms),
		Similarities: slices.Clone(ds.Similarities),
	}
}
