package affinity

import (
	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/source"
)

// NewSourceFromConfig returns the similarity source selected by cfg.Source.
//
// When both feed files are configured a file source reading them is returned,
// otherwise the built-in MeSH sample.
//
// Parameters:
//   - cfg: Configuration
//   - logger: Logger for the file source (nil for none)
//
// Returns:
//   - SimilaritySource[string]: Source to pass to New
func NewSourceFromConfig(cfg *Config, logger Logger) SimilaritySource[string] {
	if cfg.Source.TermsFile == "" || cfg.Source.SimilaritiesFile == "" {
		return source.NewMeSH()
	}

	var opts []source.FileOption
	if logger != nil {
		opts = append(opts, source.WithFileLogger(logging.Named(logger, "source")))
	}

	return source.NewFile(cfg.Source.TermsFile, cfg.Source.SimilaritiesFile, opts...)
}
