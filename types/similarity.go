package types

// Similarity answers pairwise similarity queries between terms.
//
// Lookup must be symmetric and must fail with ErrMissingSimilarity rather than
// returning a default score. The similarity.Table type is the standard implementation.
type Similarity[T Term] interface {
	// Lookup returns the similarity score of a and b in [0, 1].
	Lookup(a, b T) (float64, error)
}
