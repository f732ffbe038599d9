package testing

import (
	"testing"

	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/types"
)

// NewTestLogger creates a logger that writes to the test log.
//
// Messages appear next to the test that produced them, so placement
// diagnostics (splits, pinned bindings, feed loads) show up in failing tests.
// Fatal fails the test instead of exiting.
//
// Example:
//
//	placement, err := affinity.New(ctx, &cfg, src,
//	    affinity.WithLogger(affinitytest.NewTestLogger(t)),
//	)
func NewTestLogger(t testing.TB) types.Logger {
	return logging.NewTest(t)
}
