package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/ib-77/ropsvc/pkg/rop"
)

type (
	Validatable = rop.Validatable
	Persistable = rop.Persistable
)

// State tracks where an instance is in its single invocation.
type State int

const (
	Created State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Service is a single-invocation unit of business logic. Concrete services
// embed Base and override Call.
type Service interface {
	Call(ctx context.Context) error
	base() *Base
}

// Initializer is implemented by services that build their own state from
// the invocation params. It is required when enforce_interface is set.
type Initializer interface {
	Initialize(ctx context.Context, params rop.Payload) error
}

// Factory returns a fresh instance for every invocation.
type Factory func() Service

// Base holds the params and the current result of one invocation.
type Base struct {
	params rop.Payload
	result rop.Result
	state  State
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) init(params rop.Payload) {
	b.params = params
	b.result = rop.Success(rop.Payload{})
	b.state = Created
}

// Call must be overridden by every concrete service.
func (b *Base) Call(context.Context) error {
	return fmt.Errorf("%w: subclasses must implement the call method", ErrNotImplemented)
}

func (b *Base) Params() rop.Payload {
	return b.params
}

// Param reads one invocation param, rop.Absent when missing.
func (b *Base) Param(key any) any {
	if v, ok := b.params.Get(key); ok {
		return v
	}
	return rop.Absent
}

func (b *Base) Result() rop.Result {
	return b.result
}

func (b *Base) State() State {
	return b.state
}

// Succeed replaces the current result with a success holding data.
func (b *Base) Succeed(data rop.Payload) {
	b.result = rop.Success(data)
}

// Fail replaces the current result with a failure holding errors. It does
// not stop Call; a later Succeed or Fail overwrites it.
func (b *Base) Fail(errors rop.Payload) {
	b.result = rop.Failure(errors)
}

// FailAndAbort sets the same failure as Fail and returns an *Abort carrying
// it. Call must return the error for the abort to take effect:
//
//	return s.FailAndAbort(rop.Of("email", "bad"))
func (b *Base) FailAndAbort(errors rop.Payload) error {
	b.Fail(errors)
	return NewAbort(b.result)
}

// Name returns the type name used in logs and metrics.
func Name(s Service) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.String()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
