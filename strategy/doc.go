// Package strategy provides built-in node assignment implementations.
//
// A node assigner decides which storage node hosts each partition, given the
// partition count of the clustering and a snapshot of live node ids. The
// package includes three built-in assigners:
//
//   - Modulo: partition p is hosted by nodes[p mod len(nodes)] (default)
//   - ConsistentHash: consistent hashing with virtual nodes
//   - Rendezvous: highest random weight hashing
//
// # Assigner Selection Guide
//
// Modulo:
//   - Predictable, perfectly even placement
//   - Node order matters: callers must pass the snapshot in a stable order
//   - Most partitions move when a node joins or leaves
//
// ConsistentHash:
//   - Independent of node order
//   - Moves roughly 1/N of the partitions on topology change
//   - Configuration: virtual nodes, hash seed
//
// Rendezvous:
//   - Independent of node order, no ring to tune
//   - Moves only the partitions of the departed (or to the joined) node
//   - O(partitions × nodes) per assignment
//
// Every assigner returns exactly one node per partition id in [0, partitionCount).
// Custom assigners can be implemented by satisfying the types.NodeAssigner interface.
package strategy
