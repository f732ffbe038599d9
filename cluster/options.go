package cluster

import (
	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/internal/metrics"
	"github.com/arloliu/affinity/types"
)

// Option configures a Clusterer.
type Option func(*options)

type options struct {
	logger  types.Logger
	metrics types.ClusteringMetrics
}

func defaultOptions() options {
	return options{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
}

// WithLogger sets the logger used for split diagnostics.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the collector receiving clustering metrics.
func WithMetrics(m types.ClusteringMetrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
