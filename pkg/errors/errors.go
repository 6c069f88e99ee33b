package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies the failure modes of the scraping pipeline
type ErrorType string

const (
	// ErrorTypeTimeout is a navigation that ran past its deadline; the only
	// retryable failure in the pipeline
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeNavigation is any non-timeout navigation failure
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeAuth means a login wall was detected; the attached browser
	// session is not authenticated
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeMissingDate means no date strategy produced a parseable
	// timestamp for a post
	ErrorTypeMissingDate ErrorType = "missing_date"
	// ErrorTypeStalePost means the post date resolved below the run cutoff
	ErrorTypeStalePost ErrorType = "stale_post"
	ErrorTypeParsing   ErrorType = "parsing"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// Error is a scrape error with type information
type Error struct {
	Type    ErrorType
	Message string
	URL     string
	Err     error
}

func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s error at %s: %s", e.Type, e.URL, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a typed error without an underlying cause
func New(t ErrorType, message, url string) *Error {
	return &Error{Type: t, Message: message, URL: url}
}

// Wrap creates a typed error around an underlying cause
func Wrap(t ErrorType, err error, url string) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Error{Type: t, Message: msg, URL: url, Err: err}
}

// IsRetryable checks if an error type should be retried. Only navigation
// timeouts are; everything else either will not change on retry or carries
// stop semantics of its own.
func IsRetryable(errorType ErrorType) bool {
	return errorType == ErrorTypeTimeout
}

// TypeOf extracts the ErrorType from any error in the chain,
// ErrorTypeUnknown if none is present
func TypeOf(err error) ErrorType {
	var scrapeErr *Error
	if stderrors.As(err, &scrapeErr) {
		return scrapeErr.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err carries the given error type
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}
