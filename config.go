package affinity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/affinity/strategy"
)

// Node assignment strategies selectable in Config.Strategy.
const (
	StrategyModulo         = "modulo"
	StrategyConsistentHash = "consistentHash"
	StrategyRendezvous     = "rendezvous"
)

// DefaultAlpha is the default similarity threshold.
const DefaultAlpha = 0.2

// SourceConfig selects the feed files of the file similarity source.
type SourceConfig struct {
	// TermsFile lists the active domain, one term per line, in clustering order.
	TermsFile string `yaml:"termsFile"`

	// SimilaritiesFile lists score<>term1<>term2 lines. A .gz or .zst suffix
	// selects transparent decompression.
	SimilaritiesFile string `yaml:"similaritiesFile"`
}

// Config is the configuration for a Placement.
type Config struct {
	// Alpha is the similarity threshold in (0, 1]. Clusters are split until every
	// member is at least Alpha similar to its head, so a higher Alpha yields more
	// and tighter partitions.
	Alpha float64 `yaml:"alpha"`

	// StrictCoverage requires a similarity score for every pair of domain terms
	// before clustering. Without it, a missing pair only fails when it is looked up.
	StrictCoverage bool `yaml:"strictCoverage"`

	// FragmentPrefix names store fragments: partition p is stored in "<prefix>_<p>".
	FragmentPrefix string `yaml:"fragmentPrefix"`

	// Strategy selects the node assigner: "modulo", "consistentHash" or "rendezvous".
	Strategy string `yaml:"strategy"`

	// VirtualNodes is the number of ring positions per node (consistentHash only).
	VirtualNodes int `yaml:"virtualNodes"`

	// HashSeed seeds the consistentHash and rendezvous assigners (0 = unseeded).
	HashSeed uint64 `yaml:"hashSeed"`

	// MetricsNamespace is the Prometheus namespace used by NewPrometheusMetrics callers.
	MetricsNamespace string `yaml:"metricsNamespace"`

	// Source configures the file similarity source. When both files are empty the
	// built-in MeSH sample is used.
	Source SourceConfig `yaml:"source"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Alpha:            DefaultAlpha,
		StrictCoverage:   true,
		FragmentPrefix:   "ill",
		Strategy:         StrategyModulo,
		VirtualNodes:     150,
		HashSeed:         0,
		MetricsNamespace: "affinity",
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// StrictCoverage is left untouched since false is a valid choice.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Alpha == 0 {
		cfg.Alpha = defaults.Alpha
	}
	if cfg.FragmentPrefix == "" {
		cfg.FragmentPrefix = defaults.FragmentPrefix
	}
	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.VirtualNodes == 0 {
		cfg.VirtualNodes = defaults.VirtualNodes
	}
	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = defaults.MetricsNamespace
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - 0 < Alpha <= 1
//   - Strategy is one of the known strategies
//   - VirtualNodes >= 1
//   - Source files are set together or not at all
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if !(cfg.Alpha > 0 && cfg.Alpha <= 1) {
		return fmt.Errorf("%w: alpha (%v) must be in (0, 1]", ErrInvalidConfig, cfg.Alpha)
	}

	switch cfg.Strategy {
	case StrategyModulo, StrategyConsistentHash, StrategyRendezvous:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, cfg.Strategy)
	}

	if cfg.VirtualNodes < 1 {
		return fmt.Errorf("%w: virtualNodes must be >= 1, got %d", ErrInvalidConfig, cfg.VirtualNodes)
	}

	if (cfg.Source.TermsFile == "") != (cfg.Source.SimilaritiesFile == "") {
		return fmt.Errorf("%w: source.termsFile and source.similaritiesFile must be set together", ErrInvalidConfig)
	}

	return nil
}

// ValidateWithWarnings logs warnings for valid but non-recommended values.
//
// This is called after Validate() in New() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Alpha >= 0.9 {
		logger.Warn(
			"alpha is very high, most terms will get a partition of their own",
			"alpha", cfg.Alpha,
			"default", DefaultAlpha,
		)
	}

	if !cfg.StrictCoverage {
		logger.Warn("strict coverage disabled, missing similarities surface as routing errors")
	}

	if cfg.Strategy == StrategyModulo && cfg.HashSeed != 0 {
		logger.Warn("hashSeed has no effect on the modulo strategy", "hashSeed", cfg.HashSeed)
	}
}

// ParseConfig parses a YAML configuration.
//
// Keys absent from data keep their DefaultConfig values. The result has
// defaults applied and is validated.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: Parsed configuration
//   - error: YAML or validation error
//
// Example:
//
//	cfg, err := affinity.ParseConfig([]byte("alpha: 0.25\nstrategy: rendezvous\n"))
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
//
// Parameters:
//   - path: Configuration file path
//
// Returns:
//   - Config: Parsed configuration
//   - error: Read, YAML or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return ParseConfig(data)
}

// NewAssigner creates the node assigner selected by cfg.Strategy.
//
// Parameters:
//   - cfg: Configuration (defaults are applied to a copy)
//
// Returns:
//   - NodeAssigner: Assigner implementation
//   - error: ErrInvalidConfig for an unknown strategy
func NewAssigner(cfg *Config) (NodeAssigner, error) {
	c := *cfg
	SetDefaults(&c)

	switch c.Strategy {
	case StrategyModulo:
		return strategy.NewModulo(), nil
	case StrategyConsistentHash:
		return strategy.NewConsistentHash(
			strategy.WithVirtualNodes(c.VirtualNodes),
			strategy.WithHashSeed(c.HashSeed),
		), nil
	case StrategyRendezvous:
		var opts []strategy.RendezvousOption
		if c.HashSeed != 0 {
			opts = append(opts, strategy.WithRendezvousSeed(fmt.Sprint(c.HashSeed)))
		}

		return strategy.NewRendezvous(opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
}
