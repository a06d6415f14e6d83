package tmdb

import (
	"errors"
	"fmt"
)

const (
	// GenericFailureMessage is shown for every transport-level failure.
	GenericFailureMessage = "Error fetching movies. Please try again later."
	// APIFailureFallback is shown when an API-level failure carries no message.
	APIFailureFallback = "Failed to fetch movies"
)

// TransportError means the request failed, returned a non-2xx status, or
// returned a body that could not be decoded.
type TransportError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb request %s failed with status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tmdb request %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a well-formed response whose body signals failure
// (`"Response": "False"`).
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error from %s", e.Endpoint)
	}
	return fmt.Sprintf("tmdb API error from %s: %s", e.Endpoint, e.Message)
}

// FailureMessage normalises err into the message displayed to the user.
// API-level failures surface the server text when present; everything else
// collapses into GenericFailureMessage.
func FailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return APIFailureFallback
	}
	return GenericFailureMessage
}

// IsAPIError reports whether err is an application-level failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
