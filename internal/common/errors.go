package common

import (
	"errors"
	"fmt"
)

// Kind classifies failures that reach the presentation layer.
type Kind string

const (
	KindInternal            Kind = "internal"
	KindInvalidInput        Kind = "invalid_input"
	KindConfiguration       Kind = "configuration"
	KindNotFound            Kind = "not_found"
	KindUpstreamFormat      Kind = "upstream_format"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
)

// Error is the typed failure returned by resolving and fetching operations.
// Trail carries per-attempt diagnostics when every endpoint was exhausted.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Trail   []string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func InvalidInput(format string, args ...any) error {
	return newError(KindInvalidInput, nil, format, args...)
}

func Configuration(err error, format string, args ...any) error {
	return newError(KindConfiguration, err, format, args...)
}

func NotFound(format string, args ...any) error {
	return newError(KindNotFound, nil, format, args...)
}

func UpstreamFormat(err error, format string, args ...any) error {
	return newError(KindUpstreamFormat, err, format, args...)
}

func UpstreamUnavailable(trail []string, format string, args ...any) error {
	e := newError(KindUpstreamUnavailable, nil, format, args...)
	e.Trail = trail
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind helps callers branch on failure classes.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// TrailOf returns the attempt trail attached to err, if any.
func TrailOf(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Trail
	}
	return nil
}
