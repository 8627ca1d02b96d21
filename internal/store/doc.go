// Package store owns the physical timesheet schema and raw query
// execution against SQLite.
//
// It is the single point of schema truth: every other package reaches
// the database through a Store, either directly for single-statement
// reads or through WithTx for multi-statement sequences that must
// commit or roll back as a unit. Foreign-key enforcement and WAL
// journaling are applied to every connection, and lock contention is
// bounded by a busy timeout rather than blocking indefinitely.
package store
