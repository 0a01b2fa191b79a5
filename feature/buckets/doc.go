// Package buckets exposes read-only bucket inspection and on-demand
// reconciliation of a single bucket.
//
// Routes:
//
//	GET  /buckets                    MPU rule status of every bucket
//	GET  /buckets/:name/lifecycle    current lifecycle rules
//	POST /buckets/:name/reconcile    reconcile one bucket (dry_run, retention_days)
package buckets
