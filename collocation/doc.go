// Package collocation records, per entity, the partition its derived record lives on.
//
// When the first primary record of an entity is written, its partition is bound
// to the entity and the entity's derived record is written with that partition.
// The binding is never changed afterwards: a later primary record routed to a
// different partition leaves the derived record where it is, and the conflict
// is reported to the caller as a pinned binding.
package collocation
