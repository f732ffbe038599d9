package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/types"
)

// File implements a similarity source reading a terms feed and a similarity feed from disk.
//
// Files ending in .gz or .zst are decompressed transparently.
type File struct {
	termsPath        string
	similaritiesPath string
	logger           types.Logger
}

var _ types.SimilaritySource[string] = (*File)(nil)

// FileOption configures a File source.
type FileOption func(*File)

// WithFileLogger sets the logger used to report loaded feed sizes.
func WithFileLogger(logger types.Logger) FileOption {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFile creates a new file similarity source.
//
// Parameters:
//   - termsPath: Terms feed, one term per line
//   - similaritiesPath: Similarity feed, score<>term1<>term2 per line
//   - opts: Optional configuration (WithFileLogger)
//
// Returns:
//   - *File: Initialized file source
//
// Example:
//
//	src := source.NewFile("data/terms.txt", "data/similarities.txt.zst")
//	placement, err := affinity.New(ctx, &cfg, src)
func NewFile(termsPath, similaritiesPath string, opts ...FileOption) *File {
	f := &File{
		termsPath:        termsPath,
		similaritiesPath: similaritiesPath,
		logger:           logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// Load reads both feeds concurrently.
//
// Returns:
//   - types.Dataset[string]: Terms in file order and all similarity entries
//   - error: Open, decompression or ErrMalformedFeed error
func (f *File) Load(ctx context.Context) (types.Dataset[string], error) {
	var ds types.Dataset[string]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		terms, err := readFeed(gctx, f.termsPath, ParseTerms)
		ds.Terms = terms

		return err
	})
	g.Go(func() error {
		entries, err := readFeed(gctx, f.similaritiesPath, ParseSimilarities)
		ds.Similarities = entries

		return err
	})
	if err := g.Wait(); err != nil {
		return types.Dataset[string]{}, err
	}

	f.logger.Info("similarity feed loaded",
		"terms", len(ds.Terms),
		"similarities", len(ds.Similarities),
		"terms_file", f.termsPath,
		"similarities_file", f.similaritiesPath,
	)

	return ds, nil
}

func readFeed[R any](ctx context.Context, path string, parse func(io.Reader) (R, error)) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	r, err := openFeed(path)
	if err != nil {
		return zero, err
	}
	defer r.Close()

	out, err := parse(r)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}

	return out, nil
}

// openFeed opens path, wrapping it in a decompressor chosen by extension.
func openFeed(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}

	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to open gzip feed %s: %w", path, err)
		}

		return &stackedReader{Reader: zr, closers: []io.Closer{zr, file}}, nil
	case ".zst":
		dec, err := zstd.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to open zstd feed %s: %w", path, err)
		}

		return &stackedReader{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), file}}, nil
	default:
		return file, nil
	}
}

// stackedReader closes a decompressor before its underlying file.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
