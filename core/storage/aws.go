package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultRegion      = "us-east-1"
	defaultTimeout     = 30
	defaultMaxAttempts = 3

	tracerName = "mpu-janitor/storage"

	errListBuckets        = "failed to list buckets"
	errGetLifecycleConfig = "failed to get bucket lifecycle configuration"
	errPutLifecycleConfig = "failed to put bucket lifecycle configuration"
)

// s3API is the subset of the S3 SDK client used by awsClient.
type s3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketLifecycleConfiguration(ctx context.Context, params *s3.GetBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error)
	PutBucketLifecycleConfiguration(ctx context.Context, params *s3.PutBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.PutBucketLifecycleConfigurationOutput, error)
}

type awsClient struct {
	api s3API
}

// NewAWSClient creates a Client backed by the AWS SDK S3 client.
// Credentials come from the configured shared-config profile unless static
// keys are set.
func NewAWSClient(ctx context.Context, cfg Config) (Client, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(resolveEndpoint(cfg.Endpoint, cfg.UseSSL))
			// S3-compatible endpoints rarely support virtual-hosted buckets.
			o.UsePathStyle = true
		}
	})

	return &awsClient{api: api}, nil
}

func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithRetryMaxAttempts(attempts),
		config.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(time.Duration(timeout) * time.Second)),
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return awsCfg, nil
}

// resolveEndpoint lets UseSSL decide the scheme even if one was given.
func resolveEndpoint(endpoint string, useSSL bool) string {
	endpoint = strings.TrimPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	if useSSL {
		return "https://" + endpoint
	}

	return "http://" + endpoint
}

func (c *awsClient) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ListBuckets")
	defer span.End()

	resp, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		err = fmt.Errorf("%s: %w", errListBuckets, translateAWSError(err))
		recordError(span, err)

		return nil, err
	}

	buckets := make([]BucketInfo, 0, len(resp.Buckets))
	for _, b := range resp.Buckets {
		buckets = append(buckets, BucketInfo{
			Name:         aws.ToString(b.Name),
			CreationDate: aws.ToTime(b.CreationDate),
		})
	}

	return buckets, nil
}

func (c *awsClient) GetLifecycleConfiguration(ctx context.Context, bucket string) (*Configuration, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GetBucketLifecycleConfiguration")
	defer span.End()
	span.SetAttributes(attribute.String("bucket", bucket))

	resp, err := c.api.GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		err = translateAWSError(err)
		if errors.Is(err, ErrNoLifecycleConfiguration) {
			return nil, err
		}
		err = fmt.Errorf("%s: %w", errGetLifecycleConfig, err)
		recordError(span, err)

		return nil, err
	}

	return configurationFromSDK(resp.Rules), nil
}

func (c *awsClient) PutLifecycleConfiguration(ctx context.Context, bucket string, cfg *Configuration) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PutBucketLifecycleConfiguration")
	defer span.End()
	span.SetAttributes(attribute.String("bucket", bucket))

	_, err := c.api.PutBucketLifecycleConfiguration(ctx, generateLifecycleConfigurationInput(bucket, cfg))
	if err != nil {
		err = fmt.Errorf("%s: %w", errPutLifecycleConfig, translateAWSError(err))
		recordError(span, err)

		return err
	}

	return nil
}

// translateAWSError maps S3 API error codes onto the package sentinels.
func translateAWSError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if sentinel := classifyCode(apiErr.ErrorCode()); sentinel != nil {
		return &providerError{sentinel: sentinel, cause: err}
	}

	return err
}

// generateLifecycleConfigurationInput builds the whole-document replace request.
func generateLifecycleConfigurationInput(bucket string, cfg *Configuration) *s3.PutBucketLifecycleConfigurationInput {
	var rules []types.LifecycleRule
	if cfg != nil {
		rules = make([]types.LifecycleRule, 0, len(cfg.Rules))
		for _, r := range cfg.Rules {
			rules = append(rules, ruleToSDK(r))
		}
	}

	return &s3.PutBucketLifecycleConfigurationInput{
		Bucket:                 aws.String(bucket),
		LifecycleConfiguration: &types.BucketLifecycleConfiguration{Rules: rules},
	}
}
