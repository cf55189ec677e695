// Package mock provides deterministic test doubles for the ai interfaces.
//
// The mocks default to simple, reproducible behavior (canned completions,
// hash-derived embeddings) and expose function fields for injecting custom
// behavior per test, plus call counters for assertions.
package mock
