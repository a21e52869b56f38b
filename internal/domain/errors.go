package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnsupportedFormat     = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrFileIO                = errors.New("temporary file storage failed")
	ErrPageOutOfRange        = errors.New("page number out of range")
	ErrModelInvocation       = errors.New("ocr model invocation failed")
	ErrBackendUnreachable    = errors.New("extraction backend unreachable")
	ErrBackendHTTP           = errors.New("extraction backend returned an error status")
	ErrMalformedOutput       = errors.New("extraction output is not valid json for its kind")
	ErrInvalidExtractionKind = errors.New("unknown extraction kind")
	ErrUploadNotFound        = errors.New("no prior upload found")
	ErrUploadExpired         = errors.New("upload has expired")
	ErrInvalidUploadToken    = errors.New("invalid upload token")
)

// BackendError describes a failed call to an external model endpoint.
// It unwraps to ErrBackendUnreachable for transport failures and to
// ErrBackendHTTP when the endpoint answered with a non-2xx status.
type BackendError struct {
	Backend    string
	StatusCode int
	Body       string
	RetryAfter time.Duration
	Err        error
}

// NewUnreachableError wraps a transport-level failure.
func NewUnreachableError(backend string, err error) *BackendError {
	return &BackendError{Backend: backend, Err: err}
}

// NewHTTPError records a non-2xx response. retryAfterSecs <= 0 means the
// server did not ask for a specific delay.
func NewHTTPError(backend string, status int, body string, retryAfterSecs int) *BackendError {
	e := &BackendError{Backend: backend, StatusCode: status, Body: body}
	if retryAfterSecs > 0 {
		e.RetryAfter = time.Duration(retryAfterSecs) * time.Second
	}
	return e
}

func (e *BackendError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s unreachable: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Backend, e.StatusCode, e.Body)
}

func (e *BackendError) Unwrap() []error {
	sentinel := ErrBackendHTTP
	if e.StatusCode == 0 {
		sentinel = ErrBackendUnreachable
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// Transient reports whether the failure is worth retrying: transport
// errors, 429 and 5xx.
func (e *BackendError) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// DecodeError is returned when a model response cannot be decoded into
// the shape required by an extraction kind.
type DecodeError struct {
	Kind ExtractionKind
	Raw  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Kind, ErrMalformedOutput)
	}
	return fmt.Sprintf("%s: %v: %v", e.Kind, ErrMalformedOutput, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedOutput}
	}
	return []error{ErrMalformedOutput, e.Err}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// Truncate shortens s to at most maxLen bytes for error and log text, cutting
// on a rune boundary and marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
