package source

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/affinity/internal/kvutil"
	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/types"
)

// KV keys holding the two feeds.
const (
	TermsKey        = "terms"
	SimilaritiesKey = "similarities"
)

// DefaultKVBucket is the bucket used by OpenNATSKV when none is given.
const DefaultKVBucket = "affinity-similarity"

// NATSKV implements a similarity source backed by a NATS JetStream KV bucket.
//
// The bucket holds the terms feed under TermsKey and the similarity feed under
// SimilaritiesKey, both in the text feed format. Use PublishDataset to write them.
type NATSKV struct {
	kv     jetstream.KeyValue
	logger types.Logger
}

var _ types.SimilaritySource[string] = (*NATSKV)(nil)

// NATSKVOption configures a NATSKV source.
type NATSKVOption func(*NATSKV)

// WithNATSKVLogger sets the logger used to report loaded feed sizes.
func WithNATSKVLogger(logger types.Logger) NATSKVOption {
	return func(s *NATSKV) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewNATSKV creates a similarity source reading from an existing KV bucket.
//
// Parameters:
//   - kv: JetStream KV bucket holding the feeds
//   - opts: Optional configuration (WithNATSKVLogger)
//
// Returns:
//   - *NATSKV: Initialized NATS KV source
func NewNATSKV(kv jetstream.KeyValue, opts ...NATSKVOption) *NATSKV {
	s := &NATSKV{kv: kv, logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// KV returns the bucket the source reads from.
func (s *NATSKV) KV() jetstream.KeyValue {
	return s.kv
}

// OpenNATSKV creates or opens the feed bucket and returns a source reading from it.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - bucket: Bucket name (DefaultKVBucket if empty)
//   - opts: Optional configuration
//
// Returns:
//   - *NATSKV: Source bound to the bucket
//   - error: Bucket creation error
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	src, err := source.OpenNATSKV(ctx, js, "mesh-similarity")
//	if err != nil {
//	    return err
//	}
//	placement, err := affinity.New(ctx, &cfg, src)
func OpenNATSKV(ctx context.Context, js jetstream.JetStream, bucket string, opts ...NATSKVOption) (*NATSKV, error) {
	if bucket == "" {
		bucket = DefaultKVBucket
	}

	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Active domain and similarity feed",
		History:     1,
	}, 3)
	if err != nil {
		return nil, err
	}

	return NewNATSKV(kv, opts...), nil
}

// Load reads and parses both feeds from the bucket.
//
// Returns:
//   - types.Dataset[string]: Loaded dataset
//   - error: KV error (jetstream.ErrKeyNotFound if a feed was never published) or ErrMalformedFeed
func (s *NATSKV) Load(ctx context.Context) (types.Dataset[string], error) {
	entries, err := kvutil.ReadKeys(ctx, s.kv, TermsKey, SimilaritiesKey)
	if err != nil {
		return types.Dataset[string]{}, err
	}
	termsEntry, simEntry := entries[0], entries[1]

	terms, err := ParseTerms(bytes.NewReader(termsEntry.Value()))
	if err != nil {
		return types.Dataset[string]{}, err
	}
	sims, err := ParseSimilarities(bytes.NewReader(simEntry.Value()))
	if err != nil {
		return types.Dataset[string]{}, err
	}

	s.logger.Info("similarity feed loaded",
		"bucket", s.kv.Bucket(),
		"terms", len(terms),
		"similarities", len(sims),
		"terms_revision", termsEntry.Revision(),
		"similarities_revision", simEntry.Revision(),
	)

	return types.Dataset[string]{Terms: terms, Similarities: sims}, nil
}

// PublishDataset writes a dataset to a KV bucket in the feed format read by NATSKV.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - kv: Target bucket
//   - ds: Dataset to publish
//
// Returns:
//   - error: Encoding or KV put error
func PublishDataset(ctx context.Context, kv jetstream.KeyValue, ds types.Dataset[string]) error {
	var terms, sims bytes.Buffer
	if err := WriteTerms(&terms, ds.Terms); err != nil {
		return err
	}
	if err := WriteSimilarities(&sims, ds.Similarities); err != nil {
		return err
	}

	if _, err := kv.Put(ctx, TermsKey, terms.Bytes()); err != nil {
		return fmt.Errorf("failed to publish %s: %w", TermsKey, err)
	}
	if _, err := kv.Put(ctx, SimilaritiesKey, sims.Bytes()); err != nil {
		return fmt.Errorf("failed to publish %s: %w", SimilaritiesKey, err)
	}

	return nil
}

// WaitForDataset blocks until both feeds are present in the bucket or ctx is done.
//
// Useful when the placement starts before the feed producer has published.
func WaitForDataset(ctx context.Context, kv jetstream.KeyValue, interval time.Duration) error {
	return kvutil.WaitForKeys(ctx, kv, interval, TermsKey, SimilaritiesKey)
}
