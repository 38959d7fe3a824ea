package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials deliberately covers "no such user", "inactive
// account" and "wrong password": callers must not be able to tell those
// apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrNotFound = errors.New("record not found")

var ErrUnauthorized = errors.New("not authorized")

// DataAccessError wraps any failure surfaced by the gateway's underlying
// store. The gateway never retries; recovery, if any, is the caller's call.
type DataAccessError struct {
	Collection string
	Operation  string
	Err        error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s %s: %v", e.Operation, e.Collection, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// PartialWriteFailure reports a multi-step write sequence whose later step
// failed after an earlier step committed. The first effect already happened
// and is not rolled back; CreatedID names the row left behind.
type PartialWriteFailure struct {
	Operation string // the sequence, e.g. "create appointment invoice"
	CreatedID string // id committed by the earlier step
	Err       error  // failure of the later step
}

func (e *PartialWriteFailure) Error() string {
	return fmt.Sprintf("partial write during %s (committed id %s): %v", e.Operation, e.CreatedID, e.Err)
}

func (e *PartialWriteFailure) Unwrap() error { return e.Err }
