package types

// SimilarityEntry is one pairwise similarity score between two terms.
type SimilarityEntry[T Term] struct {
	A     T       `json:"a" yaml:"a"`
	B     T       `json:"b" yaml:"b"`
	Score float64 `json:"score" yaml:"score"`
}

// Dataset is the raw input of a placement: the active domain and its pairwise similarities.
type Dataset[T Term] struct {
	// Terms is the ordered, duplicate-free active domain. The first term heads cluster 0.
	Terms []T `json:"terms" yaml:"terms"`

	// Similarities holds the pairwise scores; each unordered pair appears at most once.
	Similarities []SimilarityEntry[T] `json:"similarities" yaml:"similarities"`
}
