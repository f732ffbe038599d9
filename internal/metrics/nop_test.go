package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	m := NewNop()

	require.NotNil(t, m)
	require.NotPanics(t, func() {
		m.RecordClustering(0.01, 5, 2, 1)
		m.RecordClustering(-1, 0, 0, 0)
		m.RecordClusteringFailure("empty_domain")
		m.RecordRoute("primary", true)
		m.RecordRoute("unknown", false)
		m.RecordAssignment(3, 2)
		m.RecordBinding("pinned")
	})
}
