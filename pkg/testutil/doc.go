// Package testutil provides helpers for building file trees inside
// t.TempDir fixtures and snapshotting them for structural comparison in
// tests.
package testutil
