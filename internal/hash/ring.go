// Package hash provides the consistent hash ring used by the ConsistentHash node assigner.
package hash

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"
)

// Ring implements a consistent hash ring with virtual nodes.
//
// The ring maps partition ids to nodes using consistent hashing, which keeps
// most partitions on the same node when nodes join or leave.
type Ring struct {
	// vnodes contains all virtual nodes on the ring, sorted by hash
	vnodes []virtualNode

	// nodes holds the unique list of nodes present on the ring
	nodes []string

	// seed for hash function (0 means unseeded)
	seed uint64
}

// virtualNode represents a virtual node on the hash ring.
type virtualNode struct {
	hash    uint64 // Position on the ring
	nodeIdx int    // Index of the owning node in nodes
}

// NewRing creates a new consistent hash ring.
//
// Parameters:
//   - nodes: Node ids to place on the ring (duplicates are ignored)
//   - virtualNodesPerNode: Number of virtual nodes per node (higher = better distribution)
//   - seed: Seed for the hash function (0 for unseeded)
//
// Returns:
//   - *Ring: Initialized hash ring
//
// Example:
//
//	ring := hash.NewRing([]string{"node-0", "node-1"}, 150, 0)
//	node := ring.GetNodeForPartition(3)
func NewRing(nodes []string, virtualNodesPerNode int, seed uint64) *Ring {
	ring := &Ring{seed: seed}

	seen := make(map[string]struct{}, len(nodes))
	ring.nodes = make([]string, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		ring.nodes = append(ring.nodes, n)
	}

	ring.vnodes = make([]virtualNode, 0, len(ring.nodes)*max(virtualNodesPerNode, 0))
	for i, n := range ring.nodes {
		ring.addNode(n, i, virtualNodesPerNode)
	}

	slices.SortFunc(ring.vnodes, func(a, b virtualNode) int {
		return cmp.Compare(a.hash, b.hash)
	})

	return ring
}

// GetNodeForPartition finds the node responsible for a partition id.
//
// Returns:
//   - string: Node id, or "" if the ring is empty
func (r *Ring) GetNodeForPartition(partition int) string {
	idx := r.GetNodeIndexForPartition(partition)
	if idx < 0 {
		return ""
	}

	return r.nodes[idx]
}

// GetNodeIndexForPartition returns the index (in Nodes()) of the node
// responsible for a partition id, or -1 if the ring is empty.
func (r *Ring) GetNodeIndexForPartition(partition int) int {
	if len(r.vnodes) == 0 {
		return -1
	}

	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(partition)) //nolint:gosec

	return r.nodeIndexByHash(r.hash(b[:]))
}

// Nodes returns the unique nodes on the ring in insertion order.
func (r *Ring) Nodes() []string {
	return slices.Clone(r.nodes)
}

// Size returns the total number of virtual nodes on the ring.
func (r *Ring) Size() int {
	return len(r.vnodes)
}

// addNode adds the virtual nodes of one node to the ring.
func (r *Ring) addNode(nodeID string, nodeIdx int, virtualNodes int) {
	for i := range virtualNodes {
		// Fold the node id, then the vnode index using the previous hash as seed.
		var h uint64
		if r.seed != 0 {
			h = xxh3.HashStringSeed(nodeID, r.seed)
		} else {
			h = xxh3.HashString(nodeID)
		}

		var ib [8]byte
		binary.LittleEndian.PutUint64(ib[:], uint64(i)) //nolint:gosec
		h = xxh3.HashSeed(ib[:], h)

		r.vnodes = append(r.vnodes, virtualNode{hash: h, nodeIdx: nodeIdx})
	}
}

func (r *Ring) hash(b []byte) uint64 {
	if r.seed != 0 {
		return xxh3.HashSeed(b, r.seed)
	}

	return xxh3.Hash(b)
}

// nodeIndexByHash returns the owner of the first virtual node at or after target,
// wrapping around to the first virtual node.
func (r *Ring) nodeIndexByHash(target uint64) int {
	idx, _ := slices.BinarySearchFunc(r.vnodes, target, func(v virtualNode, t uint64) int {
		return cmp.Compare(v.hash, t)
	})
	if idx >= len(r.vnodes) {
		idx = 0
	}

	return r.vnodes[idx].nodeIdx
}
