// Package reconcile ensures buckets carry a lifecycle rule that aborts
// incomplete multipart uploads.
//
// A Reconciler performs one read-decide-write cycle per bucket:
//
//  1. Fetch the bucket's lifecycle configuration. A bucket without one is
//     treated as having no rules.
//  2. If any rule already aborts incomplete multipart uploads, do nothing and
//     report that rule's ID. Its retention and filter are not inspected.
//  3. Otherwise append delete-incomplete-mpu-{N}days (enabled, matching every
//     object) and write the whole document back, keeping every other rule.
//
// Dry runs stop before the write and report what would have been created.
//
// # Errors
//
// Failures are classified so callers can decide what to retry:
//
//   - *NotFoundError: the bucket does not exist or is not accessible.
//   - *TransientError: any other failure. The whole call may be retried.
//
// The Reconciler never retries on its own and keeps no state between calls.
// Calls for different buckets may run concurrently. Two concurrent calls for
// the same bucket race on the whole-document write; the later one wins.
//
// # Batches
//
// RunBatch reconciles many buckets through a bounded worker pool. A failure on
// one bucket is recorded in its outcome and never stops the others. PlanBatch
// and ApplyPlan split a batch into a dry-run pass and a confirmed write pass.
//
// # Usage Example
//
//	r := reconcile.New(client, logger)
//	result, err := r.Reconcile(ctx, "logs", reconcile.Options{RetentionDays: 7})
//	if reconcile.IsNotFound(err) {
//	    // skip
//	}
package reconcile
