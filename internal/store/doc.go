// Package store provides a SQLite-backed cache of generated bindings.
//
// Each generation is recorded as a run keyed by the program hash and
// the options hash (see idl.ProgramHash and idl.OptionsHash). Its
// artifacts are stored alongside, one row per kind. A later generation
// with the same key and generator version reuses the stored artifacts
// instead of recomputing them.
//
// # Ordering
//
// Runs carry a seq logical clock. Listings use
// ORDER BY seq ASC, id COLLATE BINARY ASC so results never depend on
// wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
