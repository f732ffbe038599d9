package source

import "github.com/arloliu/affinity/types"

// MeSHSample returns a five-term sample of MeSH disease descriptors.
//
// The respiratory terms are mutually similar (0.2), the two fractures are
// similar to each other (0.3333) and every cross pair scores 0.1429. With a
// threshold of 0.2 it yields two clusters: Asthma{Cough, Influenza} and
// Tibial-Fracture{Ulna-Fracture}.
func MeSHSample() types.Dataset[string] {
	return types.Dataset[string]{
		Terms: []string{"Asthma", "Cough", "Influenza", "Tibial-Fracture", "Ulna-Fracture"},
		Similarities: []types.SimilarityEntry[string]{
			{A: "Asthma", B: "Cough", Score: 0.2},
			{A: "Asthma", B: "Influenza", Score: 0.2},
			{A: "Asthma", B: "Tibial-Fracture", Score: 0.1429},
			{A: "Asthma", B: "Ulna-Fracture", Score: 0.1429},
			{A: "Cough", B: "Influenza", Score: 0.2},
			{A: "Cough", B: "Tibial-Fracture", Score: 0.1429},
			{A: "Cough", B: "Ulna-Fracture", Score: 0.1429},
			{A: "Influenza", B: "Tibial-Fracture", Score: 0.1429},
			{A: "Influenza", B: "Ulna-Fracture", Score: 0.1429},
			{A: "Tibial-Fracture", B: "Ulna-Fracture", Score: 0.3333},
		},
	}
}

// NewMeSH creates a static source serving MeSHSample.
func NewMeSH() *Static[string] {
	return NewStatic(MeSHSample())
}
