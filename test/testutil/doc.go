// Package testutil provides shared test utilities and fixtures for integration tests.
//
// This package contains dataset generators and invariant assertions that are
// used across the integration and stress tests.
//
// Examples of utilities that belong here:
//   - Test data generators (random similarity datasets)
//   - Assertion helpers (verify clusterings, check partition tables)
//
// Note: For NATS server setup, use the github.com/arloliu/affinity/testing package.
// This package is specifically for integration test scenarios and helper utilities.
package testutil
