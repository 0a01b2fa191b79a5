package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const listingKey = "buckets"

// CachedClient wraps a Client and caches the bucket listing for a TTL.
// Lifecycle reads and writes always go to the wrapped client.
type CachedClient struct {
	Client

	ttl time.Duration

	mu      sync.RWMutex
	buckets []BucketInfo
	built   time.Time
	sf      singleflight.Group
}

// NewCachedClient wraps client. A zero ttl disables caching.
func NewCachedClient(client Client, ttl time.Duration) *CachedClient {
	return &CachedClient{Client: client, ttl: ttl}
}

func (c *CachedClient) isExpired() bool {
	if c.ttl == 0 || c.buckets == nil {
		return true
	}
	return time.Since(c.built) > c.ttl
}

// ListBuckets returns the cached listing while it is fresh.
// Concurrent misses share a single upstream call.
func (c *CachedClient) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	c.mu.RLock()
	if !c.isExpired() {
		out := c.buckets
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(listingKey, func() (interface{}, error) {
		c.mu.RLock()
		if !c.isExpired() {
			out := c.buckets
			c.mu.RUnlock()
			return out, nil
		}
		c.mu.RUnlock()

		buckets, err := c.Client.ListBuckets(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.buckets = buckets
		c.built = time.Now()
		c.mu.Unlock()

		return buckets, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]BucketInfo), nil
}

// Invalidate drops the cached listing.
func (c *CachedClient) Invalidate() {
	c.mu.Lock()
	c.buckets = nil
	c.mu.Unlock()
}
