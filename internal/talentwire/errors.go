package talentwire

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call against the talentwire API.
type ErrorKind int

const (
	// KindUnauthenticated means the credential was missing or rejected.
	KindUnauthenticated ErrorKind = iota
	// KindClient covers 4xx responses other than authentication failures.
	KindClient
	// KindServer covers 5xx responses.
	KindServer
	// KindNetwork means no response was received at all.
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindClient:
		return "client error"
	case KindServer:
		return "server error"
	case KindNetwork:
		return "network error"
	default:
		return "unknown"
	}
}

// ErrUnauthenticated is matched by errors.Is against any APIError carrying
// KindUnauthenticated, whether the credential was absent locally or rejected
// by the server.
var ErrUnauthenticated = errors.New("authentication required")

// APIError is the typed outcome of a failed API call.
type APIError struct {
	Kind    ErrorKind
	Op      string
	Status  int
	Message string
	cause   error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Op, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthenticated && e.Kind == KindUnauthenticated
}
