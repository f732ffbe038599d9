package router

import (
	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/internal/metrics"
	"github.com/arloliu/affinity/types"
)

// Option configures a Router.
type Option func(*options)

type options struct {
	logger  types.Logger
	metrics types.RoutingMetrics
}

func defaultOptions() options {
	return options{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
}

// WithLogger sets the logger used for routing failures.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the collector receiving routing metrics.
func WithMetrics(m types.RoutingMetrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
