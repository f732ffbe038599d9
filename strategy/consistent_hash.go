package strategy

import (
	"errors"

	"github.com/arloliu/affinity/internal/hash"
	"github.com/arloliu/affinity/types"
)

const defaultVirtualNodes = 150

// ConsistentHash implements consistent hashing with virtual nodes.
type ConsistentHash struct {
	virtualNodes int
	hashSeed     uint64
}

var _ types.NodeAssigner = (*ConsistentHash)(nil)

// ConsistentHashOption configures a ConsistentHash assigner.
type ConsistentHashOption func(*ConsistentHash)

// NewConsistentHash creates a new consistent hash assigner.
//
// The assigner places every node on a hash ring with virtual nodes and hosts
// each partition on the first virtual node clockwise of the partition id hash.
// Only about 1/N of the partitions move when a node joins or leaves.
//
// Parameters:
//   - opts: Optional configuration (WithVirtualNodes, WithHashSeed)
//
// Returns:
//   - *ConsistentHash: Initialized consistent hash assigner
//
// Example:
//
//	assigner := strategy.NewConsistentHash(
//	    strategy.WithVirtualNodes(300),
//	)
//	placement, err := affinity.New(ctx, &cfg, src, affinity.WithAssigner(assigner))
func NewConsistentHash(opts ...ConsistentHashOption) *ConsistentHash {
	ch := &ConsistentHash{
		virtualNodes: defaultVirtualNodes,
		hashSeed:     0,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ch)
		}
	}

	if ch.virtualNodes < 1 {
		ch.virtualNodes = 1
	}

	return ch
}

// WithVirtualNodes sets the number of virtual nodes per node.
//
// Higher values provide better distribution but increase ring size.
// Recommended range: 100-300 (default: 150). Values below 1 are clamped to 1.
//
// Parameters:
//   - n: Number of virtual nodes per node
//
// Returns:
//   - ConsistentHashOption: Configuration option
func WithVirtualNodes(n int) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.virtualNodes = n
	}
}

// WithHashSeed sets a custom hash seed for the ring.
//
// Parameters:
//   - seed: Hash seed value
//
// Returns:
//   - ConsistentHashOption: Configuration option
func WithHashSeed(seed uint64) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.hashSeed = seed
	}
}

// Assign calculates the hosting node of every partition using consistent hashing.
//
// Parameters:
//   - partitionCount: Total number of partitions
//   - nodes: Snapshot of live node ids (order does not matter)
//
// Returns:
//   - map[int][]string: Partition id → [node id]
//   - error: ErrNoNodesAvailable or ErrInvalidPartitionCount
func (ch *ConsistentHash) Assign(partitionCount int, nodes []string) (map[int][]string, error) {
	if err := validate(partitionCount, nodes); err != nil {
		return nil, err
	}

	ring := hash.NewRing(nodes, ch.virtualNodes, ch.hashSeed)
	ringNodes := ring.Nodes()

	table := make(map[int][]string, partitionCount)
	for p := range partitionCount {
		idx := ring.GetNodeIndexForPartition(p)
		if idx < 0 {
			// This shouldn't happen once nodes were added to the ring
			return nil, errors.New("consistent hash returned no node")
		}
		table[p] = []string{ringNodes[idx]}
	}

	return table, nil
}
