package sequence

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed is the generic category for any remote-call problem
	// (network, status or body).
	ErrFetchFailed = errors.New("fetch failed")

	// ErrInvalidSourceKind is returned when the selector is not a recognized kind.
	ErrInvalidSourceKind = errors.New("invalid source kind")

	// ErrInvalidCount is returned when a requested count is not an integer.
	ErrInvalidCount = errors.New("invalid count")

	// ErrCountTooLarge is returned when a requested count exceeds the configured limit.
	ErrCountTooLarge = errors.New("count too large")
)

// ErrorKind is the user-facing failure category of a request.
type ErrorKind string

const (
	ErrorKindNone              ErrorKind = ""
	ErrorKindFetchFailed       ErrorKind = "fetch_failed"
	ErrorKindInvalidSourceKind ErrorKind = "invalid_source_kind"
)

// String implements Stringer interface.
func (k ErrorKind) String() string {
	return string(k)
}

// Error is the typed failure surfaced by sources and the provider.
// It keeps the transport detail in Err for logging while Kind stays generic.
type Error struct {
	Kind   ErrorKind
	Source SourceKind
	Op     string // e.g. "GET https://..." or "decode"
	Err    error
}

func (e *Error) Error() string {
	var sentinel error = ErrFetchFailed
	if e.Kind == ErrorKindInvalidSourceKind {
		sentinel = ErrInvalidSourceKind
	}
	msg := fmt.Sprintf("%s: %s", e.Source, sentinel)
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFetchFailed:
		return e.Kind == ErrorKindFetchFailed
	case ErrInvalidSourceKind:
		return e.Kind == ErrorKindInvalidSourceKind
	default:
		return false
	}
}

// FetchError wraps a remote failure of the given source.
func FetchError(source SourceKind, op string, err error) *Error {
	return &Error{Kind: ErrorKindFetchFailed, Source: source, Op: op, Err: err}
}

// KindOf maps any error to its user-facing category.
// Errors that carry no category collapse to ErrorKindFetchFailed.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var seqErr *Error
	if errors.As(err, &seqErr) {
		return seqErr.Kind
	}
	if errors.Is(err, ErrInvalidSourceKind) {
		return ErrorKindInvalidSourceKind
	}
	return ErrorKindFetchFailed
}

// UserMessage returns the message shown for a failure category. Every
// failure shows the same generic text; the category is kept for logs.
func UserMessage(kind ErrorKind) string {
	if kind == ErrorKindNone {
		return ""
	}
	return "Failed to fetch data. Please try again."
}
