package accounting

import (
	"errors"
	"fmt"
)

var (
	errNegativeCounter = errors.New("counter value is negative")
	errWindowMismatch  = errors.New("window counters exceed their containing window")
)

// LimitKind identifies which quota dimension triggered a denial.
type LimitKind string

const (
	LimitTotal    LimitKind = "total"
	LimitCalls60s LimitKind = "calls_60s"
	LimitCalls24h LimitKind = "calls_24h"
)

// OutOfQuotaError is returned when a quota check fails. It is recoverable:
// the caller can back off or surface it, the tracker keeps running.
type OutOfQuotaError struct {
	Kind    LimitKind
	Current int64
	Limit   int64
}

func (e *OutOfQuotaError) Error() string {
	return fmt.Sprintf("out of quota: %s calls (%d) reached limit (%d)", e.Kind, e.Current, e.Limit)
}

// PersistenceError is returned when importing accounting state fails. The
// in-memory state is left untouched.
type PersistenceError struct {
	Reason string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("accounting persistence: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("accounting persistence: %s", e.Reason)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
