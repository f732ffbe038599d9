package strategy

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/arloliu/affinity/types"
)

// Rendezvous implements highest random weight (HRW) node assignment.
type Rendezvous struct {
	seed string
}

var _ types.NodeAssigner = (*Rendezvous)(nil)

// RendezvousOption configures a Rendezvous assigner.
type RendezvousOption func(*Rendezvous)

// NewRendezvous creates a new rendezvous hashing assigner.
//
// Every (partition, node) pair gets a pseudo-random score; a partition is
// hosted by the node with the highest score. When a node leaves, only its own
// partitions move.
//
// Parameters:
//   - opts: Optional configuration (WithRendezvousSeed)
//
// Returns:
//   - *Rendezvous: Initialized rendezvous assigner
func NewRendezvous(opts ...RendezvousOption) *Rendezvous {
	r := &Rendezvous{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// WithRendezvousSeed sets a seed mixed into every score, so two stores sharing
// node ids place partitions independently.
func WithRendezvousSeed(seed string) RendezvousOption {
	return func(r *Rendezvous) {
		r.seed = seed
	}
}

// Assign calculates the hosting node of every partition using rendezvous hashing.
//
// Parameters:
//   - partitionCount: Total number of partitions
//   - nodes: Snapshot of live node ids (order does not matter)
//
// Returns:
//   - map[int][]string: Partition id → [node id]
//   - error: ErrNoNodesAvailable or ErrInvalidPartitionCount
func (r *Rendezvous) Assign(partitionCount int, nodes []string) (map[int][]string, error) {
	if err := validate(partitionCount, nodes); err != nil {
		return nil, err
	}

	table := make(map[int][]string, partitionCount)
	for p := range partitionCount {
		table[p] = []string{r.best(p, nodes)}
	}

	return table, nil
}

// best returns the highest scoring node; the smaller node id wins ties.
func (r *Rendezvous) best(partition int, nodes []string) string {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(partition)) //nolint:gosec

	best, bestScore := "", uint64(0)
	for i, n := range nodes {
		s := r.score(key[:], n)
		if i == 0 || s > bestScore || (s == bestScore && n < best) {
			best, bestScore = n, s
		}
	}

	return best
}

func (r *Rendezvous) score(key []byte, nodeID string) uint64 {
	// 8-byte digest => uint64 score
	h, _ := blake2b.New(8, nil)

	if r.seed != "" {
		h.Write([]byte(r.seed))
		h.Write([]byte{0})
	}
	h.Write(key)
	h.Write([]byte{0})
	h.Write([]byte(nodeID))

	return binary.BigEndian.Uint64(h.Sum(nil))
}
