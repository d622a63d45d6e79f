// Package apperr classifies failures returned by the store and the batch
// engines so callers can branch on the kind of failure instead of its text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the class of a failure.
type Kind string

const (
	// Infrastructure marks store or network failures that abort a whole run.
	Infrastructure Kind = "infrastructure"
	NotFound       Kind = "not_found"
	// Conflict marks a write that lost a race against a concurrent update.
	Conflict   Kind = "conflict"
	Validation Kind = "validation"
)

// Error is a failure tagged with its Kind and the operation that produced it.
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

// E builds a tagged error. A nil err still yields a non-nil *Error.
func E(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// Infrastructure for untagged errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Infrastructure
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == NotFound
}

func IsConflict(err error) bool {
	return err != nil && KindOf(err) == Conflict
}
