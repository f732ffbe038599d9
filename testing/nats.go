package testing

import (
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const serverReadyTimeout = 5 * time.Second

// ServerOption adjusts the options of an embedded NATS server.
type ServerOption func(*server.Options)

// WithServerName sets the server name reported in logs and monitoring.
func WithServerName(name string) ServerOption {
	return func(o *server.Options) {
		o.ServerName = name
	}
}

// WithJetStreamMaxMemory caps the JetStream memory store, in bytes.
func WithJetStreamMaxMemory(bytes int64) ServerOption {
	return func(o *server.Options) {
		o.JetStreamMaxMemory = bytes
	}
}

// StartEmbeddedNATS starts an in-process NATS server with JetStream and connects to it.
//
// The server listens on a random local port and keeps its JetStream store in
// t.TempDir(), so parallel tests never share state. Server and connection are
// shut down by t.Cleanup.
//
// Parameters:
//   - t: Testing context for failures and cleanup
//   - opts: Optional server adjustments (WithServerName, WithJetStreamMaxMemory)
//
// Returns:
//   - *server.Server: The running server
//   - *nats.Conn: Client connected to it
//
// Example:
//
//	func TestFeed(t *testing.T) {
//	    _, nc := affinitytest.StartEmbeddedNATS(t)
//	    js, _ := jetstream.New(nc)
//	    src, err := source.OpenNATSKV(t.Context(), js, "mesh")
//	}
func StartEmbeddedNATS(t *testing.T, opts ...ServerOption) (*server.Server, *nats.Conn) {
	t.Helper()

	ns := startServer(t, opts)

	nc, err := nats.Connect(ns.ClientURL(),
		nats.Name(t.Name()),
		nats.Timeout(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(3),
	)
	if err != nil {
		ns.Shutdown()
		t.Fatalf("connect to embedded NATS at %s: %v", ns.ClientURL(), err)
	}

	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	return ns, nc
}

func startServer(t *testing.T, opts []ServerOption) *server.Server {
	t.Helper()

	so := &server.Options{
		Host:      "127.0.0.1",
		Port:      server.RANDOM_PORT,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(so)
		}
	}

	ns, err := server.NewServer(so)
	if err != nil {
		t.Fatalf("create embedded NATS server: %v", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(serverReadyTimeout) {
		ns.Shutdown()
		t.Fatalf("embedded NATS server not ready within %v", serverReadyTimeout)
	}

	return ns
}

// CreateJetStreamKV creates a memory-backed KV bucket on nc for one test.
//
// Parameters:
//   - t: Testing context
//   - nc: NATS connection (from StartEmbeddedNATS)
//   - bucketName: Name of the bucket
//
// Returns:
//   - jetstream.KeyValue: The created bucket
//
// Example:
//
//	func TestFeed(t *testing.T) {
//	    _, nc := affinitytest.StartEmbeddedNATS(t)
//	    kv := affinitytest.CreateJetStreamKV(t, nc, "mesh")
//	    require.NoError(t, source.PublishDataset(t.Context(), kv, source.MeSHSample()))
//	}
func CreateJetStreamKV(t *testing.T, nc *nats.Conn, bucketName string) jetstream.KeyValue {
	t.Helper()

	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("create JetStream context: %v", err)
	}

	kv, err := js.CreateKeyValue(t.Context(), jetstream.KeyValueConfig{
		Bucket:      bucketName,
		Description: fmt.Sprintf("test feed bucket %s", bucketName),
		Storage:     jetstream.MemoryStorage,
		History:     1,
	})
	if err != nil {
		t.Fatalf("create KV bucket %s: %v", bucketName, err)
	}

	return kv
}
