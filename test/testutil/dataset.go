package testutil

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/arloliu/affinity/types"
)

// RandomDataset generates a complete similarity dataset over n terms.
//
// Terms are named "term-000", "term-001", ... and grouped into families of
// familySize consecutive terms. Pairs within a family score in [0.5, 1), pairs
// across families in [0, 0.3). Scores are rounded to four decimals.
//
// Parameters:
//   - seed: PRNG seed, same seed same dataset
//   - n: number of terms
//   - familySize: terms per family (1 if <= 0)
//
// Returns:
//   - types.Dataset[string]: dataset with n*(n-1)/2 entries
func RandomDataset(seed uint64, n, familySize int) types.Dataset[string] {
	if familySize <= 0 {
		familySize = 1
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	terms := make([]string, n)
	for i := range terms {
		terms[i] = fmt.Sprintf("term-%03d", i)
	}
	// Clustering order should not follow the family layout.
	rng.Shuffle(len(terms), func(i, j int) { terms[i], terms[j] = terms[j], terms[i] })

	family := func(term string) int {
		var idx int
		_, _ = fmt.Sscanf(term, "term-%d", &idx)

		return idx / familySize
	}

	entries := make([]types.SimilarityEntry[string], 0, n*(n-1)/2)
	for i := range terms {
		for j := i + 1; j < len(terms); j++ {
			score := rng.Float64() * 0.3
			if family(terms[i]) == family(terms[j]) {
				score = 0.5 + rng.Float64()*0.5
			}
			entries = append(entries, types.SimilarityEntry[string]{
				A:     terms[i],
				B:     terms[j],
				Score: math.Round(score*1e4) / 1e4,
			})
		}
	}

	return types.Dataset[string]{Terms: terms, Similarities: entries}
}
