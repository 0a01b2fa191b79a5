// Package events reacts to bucket creation.
//
// It accepts the EventBridge envelope of a CloudTrail CreateBucket call,
// extracts the bucket name, region and actor, and reconciles only that
// bucket. The same parsing and service back both the HTTP endpoint and the
// Lambda entry point.
//
// # Status Mapping
//
//   - 200: reconciled (created, would-create or noop)
//   - 400: malformed event or missing bucket name
//   - 404: bucket not found or inaccessible, never worth retrying
//   - 503: transient failure, the event source may retry
package events
