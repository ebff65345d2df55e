package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed remote call.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"      // no connectivity or transport failure
	KindTimeout      ErrorKind = "timeout"      // the request deadline elapsed
	KindUnauthorized ErrorKind = "unauthorized" // HTTP 401; triggers the forced-logout side channel
	KindValidation   ErrorKind = "validation"   // 4xx other than 401
	KindServer       ErrorKind = "server"       // 5xx
	KindUnknown      ErrorKind = "unknown"      // anything the taxonomy cannot place
)

// RemoteError is the classified failure of a single remote attempt. The
// gateway makes exactly one attempt per call; retry policy belongs to
// callers.
type RemoteError struct {
	Kind     ErrorKind
	Status   int
	Endpoint string
	Message  string
	Err      error
}

func (e *RemoteError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("gateway: %s %s (HTTP %d): %s", e.Kind, e.Endpoint, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("gateway: %s %s: %v", e.Kind, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("gateway: %s %s", e.Kind, e.Endpoint)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// KindOf extracts the error kind from err, or KindUnknown when err is not a
// RemoteError.
func KindOf(err error) ErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}
