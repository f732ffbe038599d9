package strategy

import "github.com/arloliu/affinity/types"

// Modulo implements the modulo node assignment policy.
type Modulo struct{}

var _ types.NodeAssigner = (*Modulo)(nil)

// NewModulo creates a new modulo assigner.
//
// Partition p is hosted by nodes[p mod len(nodes)]. Placement depends on the
// order of the node snapshot, so callers should pass nodes in a stable order.
//
// Returns:
//   - *Modulo: Initialized modulo assigner
//
// Example:
//
//	assigner := strategy.NewModulo()
//	table, err := assigner.Assign(3, []string{"N0", "N1"})
//	// table = {0: [N0], 1: [N1], 2: [N0]}
func NewModulo() *Modulo {
	return &Modulo{}
}

// Assign calculates the hosting node of every partition.
//
// Parameters:
//   - partitionCount: Total number of partitions
//   - nodes: Snapshot of live node ids
//
// Returns:
//   - map[int][]string: Partition id → [node id]
//   - error: ErrNoNodesAvailable or ErrInvalidPartitionCount
func (m *Modulo) Assign(partitionCount int, nodes []string) (map[int][]string, error) {
	if err := validate(partitionCount, nodes); err != nil {
		return nil, err
	}

	table := make(map[int][]string, partitionCount)
	for p := range partitionCount {
		table[p] = []string{nodes[p%len(nodes)]}
	}

	return table, nil
}
