package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure so callers can branch without parsing
// status codes or response bodies.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation"
	KindServer       ErrorKind = "server"
)

// Error is a failed API operation. Status and Body are zero for transport
// failures, Err is non-nil only for transport failures.
type Error struct {
	Kind   ErrorKind
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

func isKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsNotFound reports whether err is an API error for a missing resource.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsUnauthorized reports whether err is an API error for a rejected or
// missing credential.
func IsUnauthorized(err error) bool { return isKind(err, KindUnauthorized) }

// IsValidation reports whether err is an API error for a payload the
// backend refused.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsNetwork reports whether err is a transport-level failure, the request
// never produced an HTTP status.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsServer reports whether err is a server-side API error.
func IsServer(err error) bool { return isKind(err, KindServer) }
