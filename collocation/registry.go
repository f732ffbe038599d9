package collocation

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/internal/metrics"
	"github.com/arloliu/affinity/types"
)

// Binding outcomes reported to metrics.
const (
	OutcomeNew      = "new"
	OutcomeExisting = "existing"
	OutcomePinned   = "pinned"
)

// Binding is the result of binding an entity to a partition.
type Binding struct {
	// Entity is the bound entity.
	Entity string

	// Partition is the partition of the entity's derived record.
	Partition int

	// Requested is the partition the caller asked to bind.
	Requested int

	// Fresh is true if this call created the binding.
	Fresh bool

	// Pinned is true if the entity was already bound to a different partition.
	Pinned bool
}

// Outcome returns the metrics outcome label of the binding.
func (b Binding) Outcome() string {
	switch {
	case b.Fresh:
		return OutcomeNew
	case b.Pinned:
		return OutcomePinned
	default:
		return OutcomeExisting
	}
}

// Registry is a concurrent entity → partition map with first-write-wins semantics.
type Registry struct {
	bindings *xsync.Map[string, int]
	logger   types.Logger
	metrics  types.CollocationMetrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report pinned bindings.
func WithLogger(logger types.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the collector receiving binding outcomes.
func WithMetrics(m types.CollocationMetrics) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		bindings: xsync.NewMap[string, int](),
		logger:   logging.NewNop(),
		metrics:  metrics.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Bind binds entity to partition unless it is already bound.
//
// Parameters:
//   - entity: Entity id (e.g. person id)
//   - partition: Partition of the primary record being written
//
// Returns:
//   - Binding: The partition the derived record must use, and how it was obtained
//
// Example:
//
//	p, _ := router.Route(&primaryKey)
//	b := registry.Bind(primaryKey.Entity, p)
//	derived := types.DerivedKey[string](primaryKey.Entity, b.Partition)
func (r *Registry) Bind(entity string, partition int) Binding {
	actual, loaded := r.bindings.LoadOrStore(entity, partition)

	b := Binding{
		Entity:    entity,
		Partition: actual,
		Requested: partition,
		Fresh:     !loaded,
		Pinned:    loaded && actual != partition,
	}

	r.metrics.RecordBinding(b.Outcome())
	if b.Pinned {
		r.logger.Warn("entity pinned to earlier partition",
			"entity", entity,
			"partition", actual,
			"requested", partition,
		)
	}

	return b
}

// Lookup returns the partition bound to entity.
//
// Returns:
//   - int: Bound partition
//   - error: ErrUnboundEntity if the entity was never bound
func (r *Registry) Lookup(entity string) (int, error) {
	p, ok := r.bindings.Load(entity)
	if !ok {
		return 0, fmt.Errorf("%w: %s", types.ErrUnboundEntity, entity)
	}

	return p, nil
}

// Forget removes the binding of entity, e.g. after its records were deleted.
// It reports whether a binding existed.
func (r *Registry) Forget(entity string) bool {
	_, existed := r.bindings.LoadAndDelete(entity)

	return existed
}

// Len returns the number of bound entities.
func (r *Registry) Len() int {
	return r.bindings.Size()
}

// Range calls f for every binding until f returns false.
func (r *Registry) Range(f func(entity string, partition int) bool) {
	r.bindings.Range(f)
}
