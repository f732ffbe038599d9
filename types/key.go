package types

import "fmt"

// KeyKind identifies how a Key is routed.
type KeyKind uint8

const (
	// KeyKindUnknown is the zero kind; routing rejects it.
	KeyKindUnknown KeyKind = iota

	// KeyKindPrimary keys are routed by the cluster of their relaxation attribute value.
	KeyKindPrimary

	// KeyKindDerived keys carry the partition chosen when the related primary record was written.
	KeyKindDerived
)

// String returns the string representation of the kind.
func (k KeyKind) String() string {
	switch k {
	case KeyKindPrimary:
		return "primary"
	case KeyKindDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// Key is a routing key. Exactly the fields required by its Kind are meaningful:
//   - Primary: Entity and Term
//   - Derived: Entity and Partition
//
// Build keys with PrimaryKey or DerivedKey.
type Key[T Term] struct {
	// Kind selects the routing rule.
	Kind KeyKind `json:"kind"`

	// Entity identifies the record owner (e.g. a person id).
	Entity string `json:"entity"`

	// Term is the relaxation attribute value of a primary key.
	Term T `json:"term,omitempty"`

	// Partition is the stored partition id of a derived key.
	Partition int `json:"partition,omitempty"`
}

// PrimaryKey creates a key routed by the cluster of term.
func PrimaryKey[T Term](entity string, term T) Key[T] {
	return Key[T]{Kind: KeyKindPrimary, Entity: entity, Term: term}
}

// DerivedKey creates a key collocated with an already chosen partition.
func DerivedKey[T Term](entity string, partition int) Key[T] {
	return Key[T]{Kind: KeyKindDerived, Entity: entity, Partition: partition}
}

// String returns a human-readable representation of the key.
func (k Key[T]) String() string {
	switch k.Kind {
	case KeyKindPrimary:
		return fmt.Sprintf("primary(%s, %v)", k.Entity, k.Term)
	case KeyKindDerived:
		return fmt.Sprintf("derived(%s, %d)", k.Entity, k.Partition)
	default:
		return fmt.Sprintf("unknown(%s)", k.Entity)
	}
}
