// Package store provides the SQLite-backed sync journal.
//
// Each non-dry-run sync is appended as a run (id, start time, source path,
// database digest, confirmed sound id) with one row per artifact outcome.
// Runs are ordered by insertion sequence, never by wall time, so listings
// are stable even when clocks move backwards.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
