package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBucket is returned for an empty bucket name.
	ErrInvalidBucket = errors.New("bucket name must not be empty")

	// ErrInvalidRetention is returned for a retention that is negative or
	// does not fit a lifecycle rule's 32-bit day count.
	ErrInvalidRetention = errors.New("retention days out of range")
)

// NotFoundError reports a bucket that does not exist or cannot be accessed.
// Retrying will not help.
type NotFoundError struct {
	Bucket string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bucket %q not found or inaccessible: %v", e.Bucket, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// TransientError reports a failed read or write that may succeed on retry.
type TransientError struct {
	Bucket string
	// Op is "get" or "put".
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s lifecycle configuration for bucket %q failed: %v", e.Op, e.Bucket, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsTransient reports whether err is or wraps a *TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// ErrorKind names the class of err for logs, metrics and audit records.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return "not_found"
	case IsTransient(err):
		return "transient"
	case errors.Is(err, ErrInvalidBucket), errors.Is(err, ErrInvalidRetention):
		return "invalid"
	default:
		return "unknown"
	}
}
