// Package cluster implements the greedy head-splitting clustering of an active domain.
//
// The first term of the domain heads the initial cluster, which holds every other
// term. While some member is less similar to its head than the threshold alpha,
// the least similar member is split off as the head of a new cluster and every
// member that is at least as similar to the new head as to its current head
// migrates to the new cluster.
//
// Ties are broken deterministically: members are kept in ascending term order,
// so the split candidate is the first member (lowest cluster index, then
// smallest term) whose similarity equals the current minimum.
//
// The index of a cluster in the result is its partition id. Since every
// iteration turns one member into a head, the procedure stops after at most
// len(domain)-1 splits.
package cluster
