package affinity

// Option configures a Placement with optional dependencies.
type Option func(*placementOptions)

// placementOptions holds optional Placement configuration.
type placementOptions struct {
	assigner NodeAssigner
	hooks    *Hooks
	metrics  MetricsCollector
	logger   Logger
}

// WithAssigner sets a custom node assigner, overriding Config.Strategy.
//
// Parameters:
//   - assigner: NodeAssigner implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	assigner := strategy.NewConsistentHash(strategy.WithVirtualNodes(300))
//	placement, err := affinity.New(ctx, &cfg, src, affinity.WithAssigner(assigner))
func WithAssigner(assigner NodeAssigner) Option {
	return func(o *placementOptions) {
		o.assigner = assigner
	}
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions (nil callbacks are skipped)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	hooks := &affinity.Hooks{
//	    OnAssignmentChanged: func(ctx context.Context, table map[int][]string) error {
//	        return store.ApplyPartitionTable(ctx, table)
//	    },
//	}
//	placement, err := affinity.New(ctx, &cfg, src, affinity.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *placementOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	metrics := affinity.NewPrometheusMetrics(prometheus.DefaultRegisterer, cfg.MetricsNamespace)
//	placement, err := affinity.New(ctx, &cfg, src, affinity.WithMetrics(metrics))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *placementOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := affinity.NewSlogLogger(slog.Default())
//	placement, err := affinity.New(ctx, &cfg, src, affinity.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *placementOptions) {
		o.logger = logger
	}
}
