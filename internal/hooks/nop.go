// Package hooks provides default lifecycle hook implementations.
package hooks

import (
	"context"

	"github.com/arloliu/affinity/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// It fills in callbacks the caller did not provide, eliminating the need for
// nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, int) error              = (*NopHooks)(nil).OnClustered
	_ func(context.Context, map[int][]string) error = (*NopHooks)(nil).OnAssignmentChanged
	_ func(context.Context, error) error            = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - *types.Hooks: Hooks with no-op implementations
func NewNop() *types.Hooks {
	return WithDefaults(nil)
}

// WithDefaults returns a copy of h in which every nil callback is a no-op.
//
// Parameters:
//   - h: Caller hooks (may be nil)
//
// Returns:
//   - *types.Hooks: Hooks safe to call without nil checks
func WithDefaults(h *types.Hooks) *types.Hooks {
	nop := &NopHooks{}
	out := types.Hooks{}
	if h != nil {
		out = *h
	}

	if out.OnClustered == nil {
		out.OnClustered = nop.OnClustered
	}
	if out.OnAssignmentChanged == nil {
		out.OnAssignmentChanged = nop.OnAssignmentChanged
	}
	if out.OnError == nil {
		out.OnError = nop.OnError
	}

	return &out
}

// OnClustered is a no-op implementation.
func (h *NopHooks) OnClustered(_ context.Context, _ int) error {
	return nil
}

// OnAssignmentChanged is a no-op implementation.
func (h *NopHooks) OnAssignmentChanged(_ context.Context, _ map[int][]string) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
