// Package mocks provides hand-written test doubles for the store and service
// interfaces used by the API handlers. Each mock exposes function fields for
// per-test behavior and sensible in-memory defaults.
package mocks
