package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	lambdaevents "github.com/aws/aws-lambda-go/events"
)

const (
	// CreateBucketEventName is the CloudTrail eventName handled here.
	CreateBucketEventName = "CreateBucket"
	// S3EventSource is the CloudTrail eventSource of S3 API calls.
	S3EventSource = "s3.amazonaws.com"
)

var (
	// ErrMalformedEvent is returned when the envelope or its detail cannot be decoded.
	ErrMalformedEvent = errors.New("malformed event")
	// ErrMissingBucketName is returned when the detail names no bucket.
	ErrMissingBucketName = errors.New("event does not name a bucket")
	// ErrUnexpectedEvent is returned for CloudTrail events other than CreateBucket.
	ErrUnexpectedEvent = errors.New("unexpected event")
)

// BucketCreatedEvent is the part of a CreateBucket call the janitor needs.
type BucketCreatedEvent struct {
	ID         string `json:"id,omitempty"`
	BucketName string `json:"bucket_name"`
	EventTime  string `json:"event_time,omitempty"`
	Region     string `json:"region,omitempty"`
	ActorARN   string `json:"actor_arn,omitempty"`
	ActorName  string `json:"actor_name,omitempty"`
}

type cloudTrailDetail struct {
	EventSource  string `json:"eventSource"`
	EventName    string `json:"eventName"`
	EventTime    string `json:"eventTime"`
	AWSRegion    string `json:"awsRegion"`
	UserIdentity struct {
		ARN      string `json:"arn"`
		UserName string `json:"userName"`
	} `json:"userIdentity"`
	RequestParameters struct {
		BucketName string `json:"bucketName"`
	} `json:"requestParameters"`
}

// Parse decodes an EventBridge envelope.
func Parse(body []byte) (*BucketCreatedEvent, error) {
	var envelope lambdaevents.CloudWatchEvent
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	return FromCloudWatchEvent(envelope)
}

// FromCloudWatchEvent extracts the bucket creation from a decoded envelope.
func FromCloudWatchEvent(envelope lambdaevents.CloudWatchEvent) (*BucketCreatedEvent, error) {
	if len(envelope.Detail) == 0 {
		return nil, fmt.Errorf("%w: missing detail", ErrMalformedEvent)
	}

	var detail cloudTrailDetail
	if err := json.Unmarshal(envelope.Detail, &detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if detail.EventName != "" && detail.EventName != CreateBucketEventName {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedEvent, detail.EventName)
	}

	name := strings.TrimSpace(detail.RequestParameters.BucketName)
	if name == "" {
		return nil, ErrMissingBucketName
	}

	evt := &BucketCreatedEvent{
		ID:         envelope.ID,
		BucketName: name,
		EventTime:  detail.EventTime,
		Region:     detail.AWSRegion,
		ActorARN:   detail.UserIdentity.ARN,
		ActorName:  detail.UserIdentity.UserName,
	}
	if evt.Region == "" {
		evt.Region = envelope.Region
	}

	return evt, nil
}

// IsBadRequest reports whether err stems from the event itself.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrMalformedEvent) ||
		errors.Is(err, ErrMissingBucketName) ||
		errors.Is(err, ErrUnexpectedEvent)
}
