package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for one fetch/solve/submit run. Match with errors.Is.
var (
	ErrFetchFailed           = errors.New("fetch failed")
	ErrMalformedPayload      = errors.New("malformed payload")
	ErrUnrecognizedChallenge = errors.New("unrecognized challenge")
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrSubmissionFailed      = errors.New("submission failed")
)

// maxErrorBody caps how much of a response body is kept in an error.
const maxErrorBody = 256

// StatusError is a non-success HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

// NewStatusError builds a StatusError, truncating long bodies.
func NewStatusError(statusCode int, body []byte) *StatusError {
	s := string(body)
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return &StatusError{StatusCode: statusCode, Body: s}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// SubmissionError is returned once the submit retry budget is spent.
type SubmissionError struct {
	Attempts int
	Last     error
}

// Error implements the error interface.
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrSubmissionFailed, e.Attempts, e.Last)
}

// Unwrap exposes both the sentinel and the last observed failure.
func (e *SubmissionError) Unwrap() []error {
	return []error{ErrSubmissionFailed, e.Last}
}
