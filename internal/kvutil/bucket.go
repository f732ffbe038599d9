// Package kvutil provides helpers for feeds stored in NATS JetStream KeyValue buckets.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const defaultPollInterval = 100 * time.Millisecond

// EnsureBucket creates a KV bucket, or opens it when it already exists.
//
// Concurrent producers and placements may race to create the same bucket; a
// failed attempt is retried with a doubling backoff starting at 10ms.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - cfg: KV bucket configuration
//   - attempts: Maximum number of attempts (3 if <= 0)
//
// Returns:
//   - jetstream.KeyValue: The KV bucket
//   - error: Last creation error, or the context error
//
// Example:
//
//	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
//	    Bucket:  "affinity-similarity",
//	    History: 1,
//	}, 3)
func EnsureBucket(ctx context.Context, js jetstream.JetStream, cfg jetstream.KeyValueConfig, attempts int) (jetstream.KeyValue, error) {
	if attempts <= 0 {
		attempts = 3
	}

	backoff := 10 * time.Millisecond
	var lastErr error

	for attempt := 1; ; attempt++ {
		kv, err := js.CreateKeyValue(ctx, cfg)
		if err == nil {
			return kv, nil
		}

		if errors.Is(err, jetstream.ErrBucketExists) {
			if kv, err = js.KeyValue(ctx, cfg.Bucket); err == nil {
				return kv, nil
			}
			lastErr = fmt.Errorf("bucket exists but failed to open: %w", err)
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during KV bucket creation: %w", ctx.Err())
		}
		if attempt >= attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("failed to create/open KV bucket %s after %d attempts: %w", cfg.Bucket, attempts, lastErr)
}

// ReadKeys returns the current entries of keys, in order.
//
// Returns:
//   - []jetstream.KeyValueEntry: One entry per key
//   - error: First Get error, wrapped with key and bucket (jetstream.ErrKeyNotFound if missing)
func ReadKeys(ctx context.Context, kv jetstream.KeyValue, keys ...string) ([]jetstream.KeyValueEntry, error) {
	entries := make([]jetstream.KeyValueEntry, 0, len(keys))
	for _, key := range keys {
		entry, err := kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s from bucket %s: %w", key, kv.Bucket(), err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// HasKeys reports whether every key is present in the bucket.
func HasKeys(ctx context.Context, kv jetstream.KeyValue, keys ...string) (bool, error) {
	for _, key := range keys {
		if _, err := kv.Get(ctx, key); err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				return false, nil
			}

			return false, err
		}
	}

	return true, nil
}

// WaitForKeys polls the bucket until every key is present or ctx is done.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - kv: Bucket to poll
//   - interval: Poll interval (100ms if <= 0)
//   - keys: Keys that must all be present
//
// Returns:
//   - error: nil once all keys exist, the context error, or a KV error
func WaitForKeys(ctx context.Context, kv jetstream.KeyValue, interval time.Duration, keys ...string) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ready, err := HasKeys(ctx, kv, keys...)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
