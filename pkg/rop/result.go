package rop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type absent struct{}

func (absent) String() string {
	return "<absent>"
}

// Absent is returned by Result.Get for keys that are not present in the
// active payload. Reading an unknown key is not an error.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// Result is the outcome of a service invocation: a success flag with a data
// payload, or a failure with an error payload. Both payloads are always
// present; the flag decides which one is active.
type Result struct {
	id        uuid.UUID
	createdAt time.Time
	succeeded bool
	data      Payload
	errors    Payload
}

func NewResult(succeeded bool, data, errors Payload) Result {
	return Result{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		succeeded: succeeded,
		data:      data,
		errors:    errors,
	}
}

func Success(data Payload) Result {
	return NewResult(true, data, Payload{})
}

func Failure(errors Payload) Result {
	return NewResult(false, Payload{}, errors)
}

// Get returns the value of key in the active payload, or Absent.
func (r Result) Get(key any) any {
	if v, ok := r.Lookup(key); ok {
		return v
	}
	return Absent
}

func (r Result) Lookup(key any) (any, bool) {
	return r.Active().Get(key)
}

// Active returns data for a successful result and errors otherwise.
func (r Result) Active() Payload {
	if r.succeeded {
		return r.data
	}
	return r.errors
}

func (r Result) Data() Payload {
	return r.data.clone()
}

func (r Result) Errors() Payload {
	return r.errors.clone()
}

func (r Result) IsSuccess() bool {
	return r.succeeded
}

func (r Result) IsFailure() bool {
	return !r.succeeded
}

func (r Result) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result) ID() uuid.UUID {
	return r.id
}

// IsZero reports whether r was never constructed.
func (r Result) IsZero() bool {
	return r.id == uuid.Nil
}

// SameOutcome compares flag and payloads, ignoring id and creation time.
func (r Result) SameOutcome(other Result) bool {
	return r.succeeded == other.succeeded &&
		r.data.Equal(other.data) &&
		r.errors.Equal(other.errors)
}

func (r Result) String() string {
	if r.succeeded {
		return fmt.Sprintf("success %s", r.data)
	}
	return fmt.Sprintf("failure %s", r.errors)
}
