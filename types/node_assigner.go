package types

// NodeAssigner maps partitions to the nodes hosting them.
//
// Strategies implement different placement policies:
//   - Modulo: partition p is hosted by nodes[p mod len(nodes)]
//   - ConsistentHash: hash ring with virtual nodes (minimal movement on topology change)
//   - Rendezvous: highest random weight hashing
//
// Implementations should:
//   - Be deterministic (same input → same output)
//   - Return exactly the partition ids in [0, partitionCount)
//   - Be stateless and safe for concurrent use
type NodeAssigner interface {
	// Assign calculates the hosting nodes of every partition.
	//
	// Parameters:
	//   - partitionCount: Total number of partitions
	//   - nodes: Snapshot of live node ids
	//
	// Returns:
	//   - map[int][]string: Partition id → hosting node ids (primary first)
	//   - error: Assignment error (e.g., ErrNoNodesAvailable)
	Assign(partitionCount int, nodes []string) (map[int][]string, error)
}
