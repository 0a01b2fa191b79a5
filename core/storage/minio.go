package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// minioAPI is the subset of *minio.Client used by minioClient.
type minioAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	GetBucketLifecycle(ctx context.Context, bucketName string) (*lifecycle.Configuration, error)
	SetBucketLifecycle(ctx context.Context, bucketName string, config *lifecycle.Configuration) error
}

type minioClient struct {
	api minioAPI
}

// NewMinioClient creates a Client for a MinIO or other S3-compatible endpoint
// using static credentials.
func NewMinioClient(cfg Config) (Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio provider requires an endpoint")
	}

	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioClient{api: mc}, nil
}

func (c *minioClient) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ListBuckets")
	defer span.End()

	resp, err := c.api.ListBuckets(ctx)
	if err != nil {
		err = fmt.Errorf("%s: %w", errListBuckets, translateMinioError(err))
		recordError(span, err)

		return nil, err
	}

	buckets := make([]BucketInfo, 0, len(resp))
	for _, b := range resp {
		buckets = append(buckets, BucketInfo{Name: b.Name, CreationDate: b.CreationDate})
	}

	return buckets, nil
}

func (c *minioClient) GetLifecycleConfiguration(ctx context.Context, bucket string) (*Configuration, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GetBucketLifecycle")
	defer span.End()
	span.SetAttributes(attribute.String("bucket", bucket))

	resp, err := c.api.GetBucketLifecycle(ctx, bucket)
	if err != nil {
		err = translateMinioError(err)
		if errors.Is(err, ErrNoLifecycleConfiguration) {
			return nil, err
		}
		err = fmt.Errorf("%s: %w", errGetLifecycleConfig, err)
		recordError(span, err)

		return nil, err
	}
	if resp == nil {
		return &Configuration{}, nil
	}

	out := &Configuration{Rules: make([]Rule, 0, len(resp.Rules))}
	for _, r := range resp.Rules {
		out.Rules = append(out.Rules, ruleFromMinio(r))
	}

	return out, nil
}

func (c *minioClient) PutLifecycleConfiguration(ctx context.Context, bucket string, cfg *Configuration) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "SetBucketLifecycle")
	defer span.End()
	span.SetAttributes(attribute.String("bucket", bucket))

	lc := lifecycle.NewConfiguration()
	if cfg != nil {
		for _, r := range cfg.Rules {
			lc.Rules = append(lc.Rules, ruleToMinio(r))
		}
	}

	if err := c.api.SetBucketLifecycle(ctx, bucket, lc); err != nil {
		err = fmt.Errorf("%s: %w", errPutLifecycleConfig, translateMinioError(err))
		recordError(span, err)

		return err
	}

	return nil
}

func translateMinioError(err error) error {
	resp := minio.ToErrorResponse(err)
	if sentinel := classifyCode(resp.Code); sentinel != nil {
		return &providerError{sentinel: sentinel, cause: err}
	}

	return err
}

func ruleFromMinio(in lifecycle.Rule) Rule {
	rule := Rule{
		ID:     in.ID,
		Status: RuleStatus(in.Status),
		Filter: filterFromMinio(in),
		Native: in,
	}
	if in.AbortIncompleteMultipartUpload.DaysAfterInitiation > 0 {
		rule.AbortIncompleteMultipartUpload = &AbortIncompleteMultipartUpload{
			DaysAfterInitiation: int32(in.AbortIncompleteMultipartUpload.DaysAfterInitiation),
		}
	}
	exp := in.Expiration
	if exp.Days > 0 || !exp.Date.IsZero() || bool(exp.DeleteMarker) {
		rule.Expiration = &Expiration{
			Days:                      int32(exp.Days),
			ExpiredObjectDeleteMarker: bool(exp.DeleteMarker),
		}
		if !exp.Date.IsZero() {
			d := exp.Date.Time
			rule.Expiration.Date = &d
		}
	}
	if in.Transition.StorageClass != "" {
		t := Transition{
			Days:         int32(in.Transition.Days),
			StorageClass: in.Transition.StorageClass,
		}
		if !in.Transition.Date.IsZero() {
			d := in.Transition.Date.Time
			t.Date = &d
		}
		rule.Transitions = []Transition{t}
	}
	if in.NoncurrentVersionExpiration.NoncurrentDays > 0 {
		rule.NoncurrentVersionExpiration = &NoncurrentVersionExpiration{
			NoncurrentDays: int32(in.NoncurrentVersionExpiration.NoncurrentDays),
		}
	}

	return rule
}

func filterFromMinio(in lifecycle.Rule) Filter {
	f := in.RuleFilter
	out := Filter{Prefix: f.Prefix}
	if out.Prefix == "" {
		out.Prefix = f.And.Prefix
	}
	if out.Prefix == "" {
		out.Prefix = in.Prefix
	}
	if f.Tag.Key != "" {
		out.Tags = append(out.Tags, Tag{Key: f.Tag.Key, Value: f.Tag.Value})
	}
	for _, t := range f.And.Tags {
		out.Tags = append(out.Tags, Tag{Key: t.Key, Value: t.Value})
	}

	return out
}

// ruleToMinio mirrors ruleToSDK. MinIO keeps a single transition per rule,
// so only the first one of a locally built rule is written.
func ruleToMinio(in Rule) lifecycle.Rule {
	if native, ok := in.Native.(lifecycle.Rule); ok {
		return native
	}

	rule := lifecycle.Rule{
		ID:     in.ID,
		Status: string(in.Status),
	}
	switch {
	case len(in.Filter.Tags) == 0:
		rule.RuleFilter.Prefix = in.Filter.Prefix
	case len(in.Filter.Tags) == 1 && in.Filter.Prefix == "":
		rule.RuleFilter.Tag = lifecycle.Tag{Key: in.Filter.Tags[0].Key, Value: in.Filter.Tags[0].Value}
	default:
		rule.RuleFilter.And.Prefix = in.Filter.Prefix
		for _, t := range in.Filter.Tags {
			rule.RuleFilter.And.Tags = append(rule.RuleFilter.And.Tags, lifecycle.Tag{Key: t.Key, Value: t.Value})
		}
	}
	if in.AbortIncompleteMultipartUpload != nil {
		rule.AbortIncompleteMultipartUpload.DaysAfterInitiation =
			lifecycle.ExpirationDays(in.AbortIncompleteMultipartUpload.DaysAfterInitiation)
	}
	if in.Expiration != nil {
		rule.Expiration.Days = lifecycle.ExpirationDays(in.Expiration.Days)
		rule.Expiration.DeleteMarker = lifecycle.ExpireDeleteMarker(in.Expiration.ExpiredObjectDeleteMarker)
		if in.Expiration.Date != nil {
			rule.Expiration.Date = lifecycle.ExpirationDate{Time: *in.Expiration.Date}
		}
	}
	if len(in.Transitions) > 0 {
		t := in.Transitions[0]
		rule.Transition.Days = lifecycle.ExpirationDays(t.Days)
		rule.Transition.StorageClass = t.StorageClass
		if t.Date != nil {
			rule.Transition.Date = lifecycle.ExpirationDate{Time: *t.Date}
		}
	}
	if in.NoncurrentVersionExpiration != nil {
		rule.NoncurrentVersionExpiration.NoncurrentDays =
			lifecycle.ExpirationDays(in.NoncurrentVersionExpiration.NoncurrentDays)
	}

	return rule
}
