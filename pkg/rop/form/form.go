package form

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ib-77/ropsvc/pkg/rop"
)

var (
	ErrInvalid = errors.New("invalid")
	ErrNoModel = errors.New("form has no model")
)

// Model is the object a form validates and persists.
type Model interface {
	rop.Validatable
	rop.Persistable
}

// Error is a validation failure shaped as a failed rop.Result.
type Error struct {
	result rop.Result
}

func NewError(messages rop.Payload) *Error {
	return &Error{result: rop.Failure(messages)}
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(FullMessages(e.result.Errors()), ", ")
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

func (e *Error) Result() rop.Result {
	return e.result
}

func (e *Error) Messages() rop.Payload {
	return e.result.Errors()
}

var defaultValidator = NewValidator()

type Option func(*options)

type options struct {
	validate *validator.Validate
	message  MessageFunc
}

func WithValidator(v *validator.Validate) Option {
	return func(o *options) {
		o.validate = v
	}
}

func WithMessages(fn MessageFunc) Option {
	return func(o *options) {
		o.message = fn
	}
}

// Form checks its own field rules (validate struct tags on T) before
// handing over to the wrapped model. It is a rop.Validatable itself, so it
// can be passed straight to service.ValidateOne or a pipeline.
type Form[T any] struct {
	value    T
	model    Model
	opts     options
	messages rop.Payload
}

func New[T any](value T, model Model, opts ...Option) *Form[T] {
	o := options{validate: defaultValidator, message: DefaultMessage}
	for _, opt := range opts {
		opt(&o)
	}
	return &Form[T]{value: value, model: model, opts: o}
}

func (f *Form[T]) Value() T {
	return f.value
}

func (f *Form[T]) Model() Model {
	return f.model
}

// IsValid runs the form rules and records the messages.
func (f *Form[T]) IsValid(ctx context.Context) bool {
	f.messages = Check(ctx, f.opts.validate, f.value, f.opts.message)
	return f.messages.IsEmpty()
}

func (f *Form[T]) IsInvalid(ctx context.Context) bool {
	return !f.IsValid(ctx)
}

// ErrorMessages returns the messages of the last IsValid call.
func (f *Form[T]) ErrorMessages() rop.Payload {
	return f.messages
}

// Validate checks the form rules and then the model's own rules. A failure
// on either side comes back as *Error carrying a failed result.
func (f *Form[T]) Validate(ctx context.Context) error {
	if !f.IsValid(ctx) {
		return NewError(f.messages)
	}
	if rop.IsNil(f.model) {
		return nil
	}
	if !f.model.IsValid(ctx) {
		return promote(f.model)
	}
	return nil
}

// Save persists the model when the form rules pass.
func (f *Form[T]) Save(ctx context.Context) bool {
	if rop.IsNil(f.model) || !f.IsValid(ctx) {
		return false
	}
	return f.model.Save(ctx)
}

// SaveOrError persists the model when the form rules pass, and reports why
// it did not otherwise.
func (f *Form[T]) SaveOrError(ctx context.Context) error {
	if rop.IsNil(f.model) {
		return ErrNoModel
	}
	if !f.IsValid(ctx) {
		return NewError(f.messages)
	}
	return f.model.SaveOrError(ctx)
}

func promote(model rop.Validatable) *Error {
	return NewError(model.ErrorMessages())
}
