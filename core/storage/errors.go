package storage

import "errors"

var (
	// ErrNoLifecycleConfiguration is returned when a bucket has never had
	// lifecycle rules configured. It is a state, not a fault.
	ErrNoLifecycleConfiguration = errors.New("no lifecycle configuration present")

	// ErrBucketNotFound is returned when a bucket does not exist or the
	// caller is not allowed to see it.
	ErrBucketNotFound = errors.New("bucket not found or inaccessible")
)

// Error codes returned by S3-compatible control planes.
const (
	codeNoSuchLifecycleConfiguration = "NoSuchLifecycleConfiguration"
	codeNoSuchBucket                 = "NoSuchBucket"
	codeAccessDenied                 = "AccessDenied"
	codeAllAccessDisabled            = "AllAccessDisabled"
)

// classifyCode maps a provider error code onto the package sentinels.
// It returns nil when the code carries no special meaning.
func classifyCode(code string) error {
	switch code {
	case codeNoSuchLifecycleConfiguration:
		return ErrNoLifecycleConfiguration
	case codeNoSuchBucket, codeAccessDenied, codeAllAccessDisabled:
		return ErrBucketNotFound
	default:
		return nil
	}
}

// providerError keeps the provider's error reachable while matching a sentinel.
type providerError struct {
	sentinel error
	cause    error
}

func (e *providerError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *providerError) Is(target error) bool {
	return target == e.sentinel
}

func (e *providerError) Unwrap() error {
	return e.cause
}
