package device

import (
	"errors"
	"fmt"
)

// ErrHubUnavailable indicates the device hub could not be reached at all
// (connection refused, timeout). AccessError wraps it for transport faults.
var ErrHubUnavailable = errors.New("device: hub unavailable")

// AccessError is the fault type for all device-layer failures: enumeration
// errors, read timeouts, and missing modules or functions. The collector
// aborts the current cycle on any AccessError.
type AccessError struct {
	// Op is the operation that failed, e.g. "enumerate" or "read current".
	Op string

	// Serial is the module serial involved, if any.
	Serial string

	// Err is the underlying cause.
	Err error
}

// Error returns the formatted error string.
func (e *AccessError) Error() string {
	if e.Serial == "" {
		return fmt.Sprintf("device: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("device: %s: module %s: %v", e.Op, e.Serial, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AccessError) Unwrap() error { return e.Err }

// IsAccessError reports whether err is or wraps an *AccessError.
func IsAccessError(err error) bool {
	var ae *AccessError
	return errors.As(err, &ae)
}
