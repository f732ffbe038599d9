// Package router maps routing keys to partition ids of a computed clustering.
//
// A primary key is routed by the cluster of its term: a cluster head routes to
// its own partition, any other term routes to the cluster whose head it is most
// similar to (the first such cluster on ties). A derived key already carries
// its partition id, which the router only validates.
//
// A Router is immutable after New and safe for concurrent use without locking.
package router
