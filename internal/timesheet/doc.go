// Package timesheet implements the entity-resolution and
// referential-integrity layer of the ledger: client and project
// registries, the client/plant resolver, and the append-only job
// ledger with its lazy workday grouping.
//
// The package never reads wall-clock time or stdin. Days, confirmation
// decisions and disambiguation choices arrive from the caller as plain
// arguments, which keeps every operation deterministic and testable.
// Every multi-statement sequence (resolve-then-insert,
// count-then-delete, workday-then-job) runs inside one store
// transaction.
package timesheet
