package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch without inspecting messages.
type Kind string

const (
	KindNone                Kind = ""
	KindNotFound            Kind = "not_found"
	KindEmptyRetrieval      Kind = "empty_retrieval"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindGeneratorFailure    Kind = "generator_failure"
)

var (
	ErrNotFound            = errors.New("course not found")
	ErrEmptyRetrieval      = errors.New("no relevant courses found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrGeneratorFailure    = errors.New("generator failure")

	// Both are reported as UpstreamUnavailable by KindOf.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrInvalidPayload    = errors.New("invalid point payload")
)

// Error carries the operation that failed alongside the sentinel it wraps.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match any Error of the same kind, even
// when the wrapped cause is a driver error.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && target == s
}

var sentinels = map[Kind]error{
	KindNotFound:            ErrNotFound,
	KindEmptyRetrieval:      ErrEmptyRetrieval,
	KindUpstreamUnavailable: ErrUpstreamUnavailable,
	KindGeneratorFailure:    ErrGeneratorFailure,
}

func NotFound(op string, err error) error {
	if err == nil {
		err = ErrNotFound
	}
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

func Unavailable(op string, err error) error {
	return &Error{Kind: KindUpstreamUnavailable, Op: op, Err: err}
}

func GeneratorFailure(op string, err error) error {
	return &Error{Kind: KindGeneratorFailure, Op: op, Err: err}
}

// KindOf reports the kind of err, or KindNone for nil. Unclassified errors
// are treated as upstream failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmptyRetrieval):
		return KindEmptyRetrieval
	case errors.Is(err, ErrGeneratorFailure):
		return KindGeneratorFailure
	default:
		return KindUpstreamUnavailable
	}
}
