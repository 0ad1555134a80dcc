// Package apperr defines the error kinds used throughout the engine. Each
// kind is a sentinel; call sites wrap a sentinel with Newf for context and
// callers test membership with errors.Is or the Is helper below.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInput covers malformed URLs and invalid numeric flag values.
	ErrInput = errors.New("input error")
	// ErrIO covers socket, file, or filesystem failures.
	ErrIO = errors.New("io error")
	// ErrNotHTMLOrNotOK marks a fetch that returned a non-HTML body or a
	// non-2xx/3xx status. It is not logged as a failure by callers that
	// treat it as an expected, non-error outcome.
	ErrNotHTMLOrNotOK = errors.New("response was not html or not ok")
	// ErrLockMisuse indicates a write-lock release by a goroutine that does
	// not hold it — a programming error, not a runtime condition to retry.
	ErrLockMisuse = errors.New("concurrent modification: write unlock by non-owner")
	// ErrInterrupted marks a blocked wait abandoned due to cancellation.
	ErrInterrupted = errors.New("interrupted")
)

// AppError wraps a sentinel with additional context.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New wraps sentinel with a static message.
func New(sentinel error, message string) *AppError {
	return &AppError{Err: sentinel, Message: message}
}

// Newf wraps sentinel with a formatted message.
func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{Err: sentinel, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is, or wraps, sentinel.
func Is(err, sentinel error) bool {
	return errors.Is(err, sentinel)
}
