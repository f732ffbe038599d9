package similarity

import (
	"cmp"
	"fmt"
	"math"

	"github.com/arloliu/affinity/types"
)

// pair is the canonical key of an unordered term pair: lo <= hi.
type pair[T types.Term] struct {
	lo, hi T
}

func makePair[T types.Term](a, b T) pair[T] {
	if cmp.Less(b, a) {
		return pair[T]{lo: b, hi: a}
	}

	return pair[T]{lo: a, hi: b}
}

// Table is an immutable, symmetric similarity table.
type Table[T types.Term] struct {
	scores map[pair[T]]float64
}

// NewTable builds a table from pairwise entries.
//
// Entries are symmetric: (a, b) and (b, a) denote the same pair. Repeating a
// pair with the same score is accepted; repeating it with a different score is
// rejected, so every pair has at most one defined score.
//
// Parameters:
//   - entries: Pairwise similarity scores in [0, 1]
//
// Returns:
//   - *Table[T]: Immutable table
//   - error: ErrInvalidSimilarity or ErrConflictingSimilarity
func NewTable[T types.Term](entries []types.SimilarityEntry[T]) (*Table[T], error) {
	scores := make(map[pair[T]]float64, len(entries))
	for _, e := range entries {
		if math.IsNaN(e.Score) || e.Score < 0 || e.Score > 1 {
			return nil, fmt.Errorf("%w: (%v, %v) = %v", types.ErrInvalidSimilarity, e.A, e.B, e.Score)
		}

		key := makePair(e.A, e.B)
		if prev, ok := scores[key]; ok && prev != e.Score {
			return nil, fmt.Errorf("%w: (%v, %v) = %v and %v", types.ErrConflictingSimilarity, e.A, e.B, prev, e.Score)
		}
		scores[key] = e.Score
	}

	return &Table[T]{scores: scores}, nil
}

// MustTable is like NewTable but panics on error. Intended for static tables.
func MustTable[T types.Term](entries []types.SimilarityEntry[T]) *Table[T] {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}

	return t
}

// Lookup returns the similarity of a and b.
//
// Parameters:
//   - a, b: Terms to compare (order does not matter)
//
// Returns:
//   - float64: Score in [0, 1]
//   - error: ErrMissingSimilarity if the pair is not defined
func (t *Table[T]) Lookup(a, b T) (float64, error) {
	s, ok := t.scores[makePair(a, b)]
	if !ok {
		return 0, fmt.Errorf("%w: (%v, %v)", types.ErrMissingSimilarity, a, b)
	}

	return s, nil
}

// Len returns the number of defined pairs.
func (t *Table[T]) Len() int {
	return len(t.scores)
}

// Covers verifies that every pair of distinct terms in domain has a defined score.
//
// Parameters:
//   - domain: Active domain to check
//
// Returns:
//   - error: ErrMissingSimilarity naming the first undefined pair, nil if covered
func (t *Table[T]) Covers(domain []T) error {
	for i := range domain {
		for j := i + 1; j < len(domain); j++ {
			if domain[i] == domain[j] {
				continue
			}
			if _, err := t.Lookup(domain[i], domain[j]); err != nil {
				return err
			}
		}
	}

	return nil
}
