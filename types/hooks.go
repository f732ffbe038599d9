package types

import "context"

// Hooks defines callbacks for placement lifecycle events.
//
// All hooks are optional and called synchronously: the placement performs no
// background work. Hook errors are logged but don't fail placement operations.
//
// Example:
//
//	hooks := &affinity.Hooks{
//	    OnClustered: func(ctx context.Context, partitions int) error {
//	        return store.ResizePartitionTable(ctx, partitions)
//	    },
//	}
type Hooks struct {
	// OnClustered is called once after the clustering is computed.
	OnClustered func(ctx context.Context, partitions int) error

	// OnAssignmentChanged is called whenever a partition table is computed for a new topology.
	OnAssignmentChanged func(ctx context.Context, table map[int][]string) error

	// OnError is called when a binding or assignment error is returned to a caller.
	OnError func(ctx context.Context, err error) error
}
