package mocks

import (
	"context"

	"mpu-janitor/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	args := m.Called(ctx)
	if buckets, ok := args.Get(0).([]storage.BucketInfo); ok {
		return buckets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetLifecycleConfiguration(ctx context.Context, bucket string) (*storage.Configuration, error) {
	args := m.Called(ctx, bucket)
	if cfg, ok := args.Get(0).(*storage.Configuration); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) PutLifecycleConfiguration(ctx context.Context, bucket string, cfg *storage.Configuration) error {
	args := m.Called(ctx, bucket, cfg)
	return args.Error(0)
}
