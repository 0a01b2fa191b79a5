// Package memory provides an in-process storage.Client for tests and local
// dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mpu-janitor/core/storage"
)

type bucket struct {
	created time.Time
	config  *storage.Configuration
	writes  int
}

// Client is a goroutine-safe in-memory storage.Client.
type Client struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	getErrs map[string]error
	putErrs map[string]error
	listErr error
}

// New returns an empty client.
func New() *Client {
	return &Client{
		buckets: make(map[string]*bucket),
		getErrs: make(map[string]error),
		putErrs: make(map[string]error),
	}
}

// AddBucket creates a bucket. A nil cfg means no lifecycle configuration.
func (c *Client) AddBucket(name string, cfg *storage.Configuration) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buckets[name] = &bucket{created: time.Now().UTC(), config: cfg.Clone()}
	return c
}

// SetConfiguration replaces a bucket's configuration without counting a write.
func (c *Client) SetConfiguration(name string, cfg *storage.Configuration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.buckets[name]; ok {
		b.config = cfg.Clone()
	}
}

// Configuration returns a copy of the stored configuration.
func (c *Client) Configuration(name string) *storage.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.buckets[name]; ok {
		return b.config.Clone()
	}
	return nil
}

// Writes returns how many times the bucket's configuration was put.
func (c *Client) Writes(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.buckets[name]; ok {
		return b.writes
	}
	return 0
}

// TotalWrites sums Writes over every bucket.
func (c *Client) TotalWrites() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, b := range c.buckets {
		total += b.writes
	}
	return total
}

// FailGet makes GetLifecycleConfiguration on name return err.
func (c *Client) FailGet(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getErrs[name] = err
}

// FailPut makes PutLifecycleConfiguration on name return err.
func (c *Client) FailPut(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putErrs[name] = err
}

// FailList makes ListBuckets return err.
func (c *Client) FailList(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listErr = err
}

func (c *Client) ListBuckets(_ context.Context) ([]storage.BucketInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}

	out := make([]storage.BucketInfo, 0, len(c.buckets))
	for name, b := range c.buckets {
		out = append(out, storage.BucketInfo{Name: name, CreationDate: b.created})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (c *Client) GetLifecycleConfiguration(_ context.Context, name string) (*storage.Configuration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.getErrs[name]; err != nil {
		return nil, err
	}

	b, ok := c.buckets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrBucketNotFound, name)
	}
	if b.config == nil {
		return nil, storage.ErrNoLifecycleConfiguration
	}

	return b.config.Clone(), nil
}

func (c *Client) PutLifecycleConfiguration(_ context.Context, name string, cfg *storage.Configuration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.putErrs[name]; err != nil {
		return err
	}

	b, ok := c.buckets[name]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrBucketNotFound, name)
	}
	if cfg == nil {
		cfg = &storage.Configuration{}
	}
	b.config = cfg.Clone()
	b.writes++

	return nil
}
