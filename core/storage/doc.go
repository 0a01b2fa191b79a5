// Package storage abstracts the object-storage control plane the janitor
// reconciles against.
//
// It exposes a provider-neutral lifecycle model (Configuration, Rule, Filter)
// and a small Client interface with two implementations: one on the AWS SDK
// for Amazon S3 and one on minio-go for MinIO and other S3-compatible stores.
//
// # Errors
//
// Provider error codes are mapped onto two sentinels so callers never parse
// provider errors themselves:
//
//   - ErrNoLifecycleConfiguration: the bucket has no lifecycle document.
//   - ErrBucketNotFound: the bucket is missing or access is denied.
//
// Any other error is returned wrapped and should be treated as transient.
//
// # Preservation
//
// Rules read from a bucket keep the provider's own representation in
// Rule.Native. Writing a configuration back emits those rules unchanged, so a
// whole-document replace never loses fields this model does not name.
//
// # Usage
//
//	client, err := storage.NewClient(ctx, cfg)
//	lc, err := client.GetLifecycleConfiguration(ctx, "logs")
//	if errors.Is(err, storage.ErrNoLifecycleConfiguration) {
//		lc = &storage.Configuration{}
//	}
package storage
