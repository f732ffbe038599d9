// Package similarity provides the immutable pairwise similarity table used for
// clustering and routing.
//
// A Table is built once from the entries loaded by a similarity source and is
// read-only afterwards, so it can be shared by any number of goroutines and
// clusterer runs without synchronization.
package similarity
