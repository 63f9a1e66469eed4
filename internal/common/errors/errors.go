// Package errors provides standardized error handling for the booking sync pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMailboxConnectionFailed ErrorCode = "MAILBOX_CONNECTION_FAILED"
	ErrCodeMailboxFetchFailed      ErrorCode = "MAILBOX_FETCH_FAILED"

	ErrCodeExtractionFailed        ErrorCode = "EXTRACTION_FAILED"
	ErrCodeExtractionTimeout       ErrorCode = "EXTRACTION_TIMEOUT"
	ErrCodeExtractionInvalidOutput ErrorCode = "EXTRACTION_INVALID_OUTPUT"

	ErrCodeStoreConnectionFailed ErrorCode = "STORE_CONNECTION_FAILED"
	ErrCodeStoreQueryFailed      ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeStoreWriteFailed      ErrorCode = "STORE_WRITE_FAILED"

	ErrCodeMissingBookingReference ErrorCode = "MISSING_BOOKING_REFERENCE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewMailboxConnectionFailedError creates a retryable mailbox connection error.
func NewMailboxConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailboxConnectionFailed,
		Message:   "Mailbox connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMailboxFetchFailedError creates a retryable mailbox fetch error.
func NewMailboxFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailboxFetchFailed,
		Message:   "Mailbox search or fetch error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a retryable extraction oracle error.
func NewExtractionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Extraction oracle error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionTimeoutError creates a retryable extraction timeout error.
func NewExtractionTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionTimeout,
		Message:   "Extraction oracle timeout",
		Details:   "oracle call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionInvalidOutputError creates a non-retryable error for oracle
// output that could not be decoded into a candidate field set.
func NewExtractionInvalidOutputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionInvalidOutput,
		Message:   "Extraction output is not a valid candidate field set",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreConnectionFailedError creates a retryable store connection error.
func NewStoreConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreConnectionFailed,
		Message:   "Record store connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryFailedError creates a retryable store lookup error.
func NewStoreQueryFailedError(ref string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreQueryFailed,
		Message:   "Record store lookup error",
		Details:   fmt.Sprintf("booking_reference: %s, error: %s", ref, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreWriteFailedError creates a retryable store mutation error.
func NewStoreWriteFailedError(ref string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   "Record store write error",
		Details:   fmt.Sprintf("booking_reference: %s, error: %s", ref, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingBookingReferenceError creates a non-retryable error for a
// candidate that cannot be keyed into the store.
func NewMissingBookingReferenceError(subject string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingBookingReference,
		Message:   "Candidate has no booking reference",
		Details:   fmt.Sprintf("subject: %s", subject),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeMailboxConnectionFailed,
		ErrCodeStoreConnectionFailed,
		ErrCodeStoreQueryFailed,
		ErrCodeStoreWriteFailed:
		return 3 // Retryable technical errors

	case ErrCodeMailboxFetchFailed,
		ErrCodeExtractionFailed:
		return 2

	case ErrCodeExtractionTimeout:
		return 1

	default:
		return 0 // Classification/reference problems: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "MAILBOX"):
		return "MAILBOX"
	case strings.Contains(codeStr, "EXTRACTION"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "STORE"):
		return "STORE"
	case strings.Contains(codeStr, "REFERENCE"):
		return "RECONCILIATION"
	default:
		return "OTHER"
	}
}
