// Package testing provides test utilities for the affinity library.
//
// This package offers helpers for setting up test environments, particularly
// an embedded NATS server for the NATS KV similarity source. It follows Go's
// convention of providing testing utilities in a dedicated package (similar to
// net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: In-process NATS server with JetStream, tuned by ServerOption
//   - CreateJetStreamKV: Memory-backed KV bucket for one similarity feed
//   - NewTestLogger: Logger writing to the test log
//
// Example usage:
//
//	import (
//	    "testing"
//	    affinitytest "github.com/arloliu/affinity/testing"
//	)
//
//	func TestNATSFeed(t *testing.T) {
//	    _, nc := affinitytest.StartEmbeddedNATS(t)
//	    kv := affinitytest.CreateJetStreamKV(t, nc, "mesh")
//	    src := source.NewNATSKV(kv, source.WithNATSKVLogger(affinitytest.NewTestLogger(t)))
//	}
package testing
