// Package source provides built-in similarity source implementations.
//
// A similarity source supplies the active domain (in clustering order) and the
// pairwise similarity scores of its terms. The package includes:
//
//   - Static: Fixed in-memory dataset (MeSHSample provides the sample one)
//   - File: Terms and similarity feed files, optionally gzip or zstd compressed
//   - NATSKV: Feed published to a NATS JetStream key-value bucket
//   - SQL: Feed stored in two tables of any database/sql database
//
// # Feed format
//
// The terms feed lists one term per line. The similarity feed lists one pair
// per line as score<>term1<>term2, where each term may carry a parenthesised
// concept identifier that is ignored:
//
//	0.2<>Asthma(C0004096)<>Cough(C0010200)
//
// Blank lines are ignored in both feeds.
//
// Custom sources can be implemented by satisfying the types.SimilaritySource interface.
package source
