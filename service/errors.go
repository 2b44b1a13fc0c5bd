package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an estimation failure so callers can branch on it
// without string-matching messages.
type ErrorKind string

const (
	// KindValidation means the caller supplied an incomplete request; nothing
	// reached the network.
	KindValidation ErrorKind = "validation"

	// KindQuotaExceeded means the caller's rate-limit window is exhausted.
	KindQuotaExceeded ErrorKind = "quota_exceeded"

	// KindUpstream means the remote model could not be reached or answered
	// with a transport-level failure.
	KindUpstream ErrorKind = "upstream"

	// KindParse means the model answered but its text could not be coerced
	// into a valid result.
	KindParse ErrorKind = "parse"
)

// EstimationError is the single error type the estimation engine returns.
// Raw carries the upstream text or payload for parse and upstream failures;
// debugging AI responses requires the original text, so it is never dropped.
type EstimationError struct {
	Kind    ErrorKind
	Message string
	Raw     string
	Err     error
}

func (e *EstimationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EstimationError) Unwrap() error {
	return e.Err
}

func newValidationError(msg string) *EstimationError {
	return &EstimationError{Kind: KindValidation, Message: msg}
}

func newQuotaError(msg string, err error) *EstimationError {
	return &EstimationError{Kind: KindQuotaExceeded, Message: msg, Err: err}
}

func newUpstreamError(msg, raw string, err error) *EstimationError {
	return &EstimationError{Kind: KindUpstream, Message: msg, Raw: raw, Err: err}
}

func newParseError(msg, raw string, err error) *EstimationError {
	return &EstimationError{Kind: KindParse, Message: msg, Raw: raw, Err: err}
}

// ErrKind extracts the classification from err, or "" when err is not an
// EstimationError.
func ErrKind(err error) ErrorKind {
	var ee *EstimationError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}

// RawText extracts the preserved upstream text from err, if any.
func RawText(err error) string {
	var ee *EstimationError
	if errors.As(err, &ee) {
		return ee.Raw
	}
	return ""
}
