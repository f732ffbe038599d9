package source

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	affinitytest "github.com/arloliu/affinity/testing"
)

func TestNATSKV_Load(t *testing.T) {
	ctx := t.Context()
	_, nc := affinitytest.StartEmbeddedNATS(t)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	src, err := OpenNATSKV(ctx, js, "")
	require.NoError(t, err)

	t.Run("unpublished feed", func(t *testing.T) {
		_, err := src.Load(ctx)
		require.ErrorIs(t, err, jetstream.ErrKeyNotFound)
	})

	t.Run("published feed round trips", func(t *testing.T) {
		kv, err := js.KeyValue(ctx, DefaultKVBucket)
		require.NoError(t, err)
		require.NoError(t, PublishDataset(ctx, kv, MeSHSample()))

		ds, err := src.Load(ctx)

		require.NoError(t, err)
		require.Equal(t, MeSHSample(), ds)
	})

	t.Run("reopening an existing bucket", func(t *testing.T) {
		again, err := OpenNATSKV(ctx, js, DefaultKVBucket)
		require.NoError(t, err)

		ds, err := again.Load(ctx)
		require.NoError(t, err)
		require.Len(t, ds.Terms, 5)
	})
}

func TestWaitForDataset(t *testing.T) {
	_, nc := affinitytest.StartEmbeddedNATS(t)
	kv := affinitytest.CreateJetStreamKV(t, nc, "mesh")

	t.Run("times out while unpublished", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		err := WaitForDataset(ctx, kv, 10*time.Millisecond)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns once published", func(t *testing.T) {
		go func() {
			time.Sleep(30 * time.Millisecond)
			_ = PublishDataset(context.Background(), kv, MeSHSample())
		}()

		ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
		defer cancel()

		require.NoError(t, WaitForDataset(ctx, kv, 10*time.Millisecond))
	})
}
