// Package audit persists one record per reconciled bucket.
//
// Records are written by an Observer attached to reconcile runs and read back
// by the history command and the /history endpoint. Persistence is optional:
// drivers run without a Store when the database is unavailable.
package audit
