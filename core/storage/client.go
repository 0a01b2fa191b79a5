package storage

import (
	"context"
	"fmt"
)

// Client defines the lifecycle operations the reconciler needs from an
// object-storage control plane.
type Client interface {
	// ListBuckets lists every bucket visible to the credentials.
	ListBuckets(ctx context.Context) ([]BucketInfo, error)
	// GetLifecycleConfiguration returns the bucket's lifecycle document.
	// It returns ErrNoLifecycleConfiguration when none is set and
	// ErrBucketNotFound when the bucket is missing or inaccessible.
	GetLifecycleConfiguration(ctx context.Context, bucket string) (*Configuration, error)
	// PutLifecycleConfiguration replaces the bucket's lifecycle document.
	PutLifecycleConfiguration(ctx context.Context, bucket string, cfg *Configuration) error
}

// NewClient creates a storage client for the configured provider.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderAWS, "":
		return NewAWSClient(ctx, cfg)
	case ProviderMinio:
		return NewMinioClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
}
