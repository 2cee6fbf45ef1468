package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrAccessDenied = errors.New("access denied")
	ErrUpstream     = errors.New("upstream failure")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
)

// UpstreamError wraps a store failure so callers can tell it apart from the
// caller-facing kinds above.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}
