package events_test

import (
	"testing"

	"mpu-janitor/feature/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createBucketEvent = `{
  "version": "0",
  "id": "7bf73129-1428-4cd3-a780-95db273d1602",
  "detail-type": "AWS API Call via CloudTrail",
  "source": "aws.s3",
  "account": "123456789012",
  "time": "2024-03-01T12:00:00Z",
  "region": "eu-west-1",
  "resources": [],
  "detail": {
    "eventSource": "s3.amazonaws.com",
    "eventName": "CreateBucket",
    "eventTime": "2024-03-01T11:59:58Z",
    "awsRegion": "eu-west-1",
    "userIdentity": {
      "type": "IAMUser",
      "arn": "arn:aws:iam::123456789012:user/alice",
      "userName": "alice"
    },
    "requestParameters": {
      "bucketName": "new-bucket",
      "Host": "new-bucket.s3.amazonaws.com"
    }
  }
}`

func TestParse(t *testing.T) {
	t.Run("CreateBucket", func(t *testing.T) {
		evt, err := events.Parse([]byte(createBucketEvent))
		require.NoError(t, err)
		assert.Equal(t, &events.BucketCreatedEvent{
			ID:         "7bf73129-1428-4cd3-a780-95db273d1602",
			BucketName: "new-bucket",
			EventTime:  "2024-03-01T11:59:58Z",
			Region:     "eu-west-1",
			ActorARN:   "arn:aws:iam::123456789012:user/alice",
			ActorName:  "alice",
		}, evt)
	})

	t.Run("RegionFallsBackToEnvelope", func(t *testing.T) {
		evt, err := events.Parse([]byte(`{"region":"us-east-2","detail":{"requestParameters":{"bucketName":"b1"}}}`))
		require.NoError(t, err)
		assert.Equal(t, "us-east-2", evt.Region)
		assert.Empty(t, evt.ActorARN)
	})

	tests := []struct {
		name string
		body string
		want error
	}{
		{"NotJSON", `not json`, events.ErrMalformedEvent},
		{"NoDetail", `{"id":"x"}`, events.ErrMalformedEvent},
		{"DetailNotObject", `{"detail":"oops"}`, events.ErrMalformedEvent},
		{"NoBucketName", `{"detail":{"eventName":"CreateBucket","requestParameters":{}}}`, events.ErrMissingBucketName},
		{"BlankBucketName", `{"detail":{"requestParameters":{"bucketName":"  "}}}`, events.ErrMissingBucketName},
		{"OtherEvent", `{"detail":{"eventName":"DeleteBucket","requestParameters":{"bucketName":"b1"}}}`, events.ErrUnexpectedEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := events.Parse([]byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, events.IsBadRequest(err))
		})
	}
}
