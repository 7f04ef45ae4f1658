package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a request failed.
type Kind string

const (
	// KindNetwork means the server could not be reached at all.
	KindNetwork Kind = "network"
	// KindStatus means the server answered with a non-2xx status.
	KindStatus Kind = "status"
	// KindDecode means the response body was not the expected JSON.
	KindDecode Kind = "decode"
	// KindCanceled means the caller's context ended first.
	KindCanceled Kind = "canceled"
)

// FetchError is returned by every Client method that talks to the backend.
type FetchError struct {
	Kind       Kind
	Op         string // e.g. "GET /api/ItemsBlob/GetItems"
	StatusCode int    // set for KindStatus
	Body       string // trimmed response body for KindStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	default:
		if e.Err == nil {
			return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
		}
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsOffline reports whether err is a network-level failure, i.e. the server
// is unreachable rather than answering with an error.
func IsOffline(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindNetwork
}

// IsUnauthorized reports whether the server rejected the credentials.
func IsUnauthorized(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindStatus {
		return false
	}
	return fe.StatusCode == http.StatusUnauthorized || fe.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindStatus && fe.StatusCode == http.StatusNotFound
}

func transportError(ctx context.Context, op string, err error) *FetchError {
	if ctx.Err() != nil {
		return &FetchError{Kind: KindCanceled, Op: op, Err: ctx.Err()}
	}
	return &FetchError{Kind: KindNetwork, Op: op, Err: err}
}
