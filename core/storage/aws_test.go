package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/document"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	buckets []types.Bucket
	rules   []types.LifecycleRule
	getErr  error
	putErr  error
	listErr error

	putInput *s3.PutBucketLifecycleConfigurationInput
}

func (f *fakeS3) ListBuckets(_ context.Context, _ *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &s3.ListBucketsOutput{Buckets: f.buckets}, nil
}

func (f *fakeS3) GetBucketLifecycleConfiguration(_ context.Context, _ *s3.GetBucketLifecycleConfigurationInput, _ ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetBucketLifecycleConfigurationOutput{Rules: f.rules}, nil
}

func (f *fakeS3) PutBucketLifecycleConfiguration(_ context.Context, in *s3.PutBucketLifecycleConfigurationInput, _ ...func(*s3.Options)) (*s3.PutBucketLifecycleConfigurationOutput, error) {
	f.putInput = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutBucketLifecycleConfigurationOutput{}, nil
}

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

func TestAWSClientErrors(t *testing.T) {
	ctx := context.Background()

	cases := map[string]struct {
		getErr error
		want   error
	}{
		"NoLifecycle":  {getErr: apiError("NoSuchLifecycleConfiguration"), want: ErrNoLifecycleConfiguration},
		"NoSuchBucket": {getErr: apiError("NoSuchBucket"), want: ErrBucketNotFound},
		"AccessDenied": {getErr: apiError("AccessDenied"), want: ErrBucketNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := &awsClient{api: &fakeS3{getErr: tc.getErr}}
			_, err := c.GetLifecycleConfiguration(ctx, "b1")
			assert.ErrorIs(t, err, tc.want)

			var apiErr smithy.APIError
			assert.True(t, errors.As(err, &apiErr))
		})
	}

	t.Run("OtherErrorsStayUnclassified", func(t *testing.T) {
		c := &awsClient{api: &fakeS3{getErr: apiError("SlowDown"), putErr: errors.New("connection reset")}}
		_, err := c.GetLifecycleConfiguration(ctx, "b1")
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrBucketNotFound))
		assert.False(t, errors.Is(err, ErrNoLifecycleConfiguration))

		err = c.PutLifecycleConfiguration(ctx, "b1", &Configuration{})
		assert.ErrorContains(t, err, errPutLifecycleConfig)
	})

	t.Run("ListBucketsError", func(t *testing.T) {
		c := &awsClient{api: &fakeS3{listErr: apiError("AccessDenied")}}
		_, err := c.ListBuckets(ctx)
		assert.ErrorContains(t, err, errListBuckets)
	})
}

func TestAWSClientListBuckets(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := &awsClient{api: &fakeS3{buckets: []types.Bucket{
		{Name: aws.String("b1"), CreationDate: aws.Time(created)},
		{Name: aws.String("b2")},
	}}}

	got, err := c.ListBuckets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []BucketInfo{{Name: "b1", CreationDate: created}, {Name: "b2"}}, got)
}

func TestAWSClientRoundTripPreservesRules(t *testing.T) {
	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := []types.LifecycleRule{
		{
			ID:     aws.String("expire-logs"),
			Status: types.ExpirationStatusEnabled,
			Filter: &types.LifecycleRuleFilterMemberPrefix{Value: "logs/"},
			Expiration: &types.LifecycleExpiration{
				Days: aws.Int32(30),
			},
			NoncurrentVersionTransitions: []types.NoncurrentVersionTransition{
				{NoncurrentDays: aws.Int32(10), StorageClass: types.TransitionStorageClassGlacier},
			},
		},
		{
			ID:     aws.String("archive"),
			Status: types.ExpirationStatusDisabled,
			Filter: &types.LifecycleRuleFilterMemberAnd{Value: types.LifecycleRuleAndOperator{
				Prefix: aws.String("data/"),
				Tags:   []types.Tag{{Key: aws.String("tier"), Value: aws.String("cold")}},
			}},
			Transitions: []types.Transition{{Date: aws.Time(date), StorageClass: types.TransitionStorageClassGlacier}},
		},
	}
	fake := &fakeS3{rules: existing}
	c := &awsClient{api: fake}
	ctx := context.Background()

	cfg, err := c.GetLifecycleConfiguration(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 2)
	assert.Equal(t, "logs/", cfg.Rules[0].Filter.Prefix)
	assert.Equal(t, int32(30), cfg.Rules[0].Expiration.Days)
	assert.Equal(t, []Tag{{Key: "tier", Value: "cold"}}, cfg.Rules[1].Filter.Tags)
	assert.Equal(t, "GLACIER", cfg.Rules[1].Transitions[0].StorageClass)

	cfg.Rules = append(cfg.Rules, Rule{
		ID:                             "delete-incomplete-mpu-7days",
		Status:                         StatusEnabled,
		AbortIncompleteMultipartUpload: &AbortIncompleteMultipartUpload{DaysAfterInitiation: 7},
	})
	require.NoError(t, c.PutLifecycleConfiguration(ctx, "b1", cfg))

	want := &s3.PutBucketLifecycleConfigurationInput{
		Bucket: aws.String("b1"),
		LifecycleConfiguration: &types.BucketLifecycleConfiguration{Rules: append(append([]types.LifecycleRule{}, existing...),
			types.LifecycleRule{
				ID:     aws.String("delete-incomplete-mpu-7days"),
				Status: types.ExpirationStatusEnabled,
				Filter: &types.LifecycleRuleFilterMemberPrefix{},
				AbortIncompleteMultipartUpload: &types.AbortIncompleteMultipartUpload{
					DaysAfterInitiation: aws.Int32(7),
				},
			},
		)},
	}
	if diff := cmp.Diff(want, fake.putInput, cmpopts.IgnoreTypes(document.NoSerde{})); diff != "" {
		t.Errorf("PutBucketLifecycleConfiguration input: -want, +got:\n%s", diff)
	}
}

func TestFilterToSDK(t *testing.T) {
	cases := map[string]struct {
		in   Filter
		want types.LifecycleRuleFilter
	}{
		"Empty": {
			in:   Filter{},
			want: &types.LifecycleRuleFilterMemberPrefix{},
		},
		"Prefix": {
			in:   Filter{Prefix: "tmp/"},
			want: &types.LifecycleRuleFilterMemberPrefix{Value: "tmp/"},
		},
		"SingleTag": {
			in:   Filter{Tags: []Tag{{Key: "a", Value: "b"}}},
			want: &types.LifecycleRuleFilterMemberTag{Value: types.Tag{Key: aws.String("a"), Value: aws.String("b")}},
		},
		"PrefixAndTag": {
			in: Filter{Prefix: "tmp/", Tags: []Tag{{Key: "a", Value: "b"}}},
			want: &types.LifecycleRuleFilterMemberAnd{Value: types.LifecycleRuleAndOperator{
				Prefix: aws.String("tmp/"),
				Tags:   []types.Tag{{Key: aws.String("a"), Value: aws.String("b")}},
			}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := filterToSDK(tc.in)
			if diff := cmp.Diff(tc.want, got, cmpopts.IgnoreTypes(document.NoSerde{})); diff != "" {
				t.Errorf("filterToSDK: -want, +got:\n%s", diff)
			}
		})
	}
}

func TestFilterFromSDKLegacyPrefix(t *testing.T) {
	got := filterFromSDK(types.LifecycleRule{Prefix: aws.String("old/")})
	assert.Equal(t, Filter{Prefix: "old/"}, got)
}

func TestResolveEndpoint(t *testing.T) {
	assert.Equal(t, "https://s3.local:9000", resolveEndpoint("http://s3.local:9000", true))
	assert.Equal(t, "http://s3.local:9000", resolveEndpoint("s3.local:9000", false))
}
