package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/core"
)

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeAborted   Outcome = "aborted"
	OutcomeErrored   Outcome = "errored"
	OutcomeCanceled  Outcome = "canceled"
)

// Invocation describes one finished Invoke call.
type Invocation struct {
	ID       uuid.UUID
	Service  string
	Outcome  Outcome
	Duration time.Duration
	Err      error
}

// Observer is notified after every invocation, nested ones included.
type Observer interface {
	Observe(ctx context.Context, inv Invocation)
}

type observerKey struct{}

// Invoker runs services with explicit settings. Settings are attached to the
// context handed to Call, so nested Invoke calls inherit them.
type Invoker struct {
	cfg      *core.Config
	logger   *zerolog.Logger
	observer Observer
}

type Option func(*Invoker)

func WithConfig(cfg core.Config) Option {
	return func(i *Invoker) {
		i.cfg = &cfg
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(i *Invoker) {
		i.logger = &logger
	}
}

func WithObserver(observer Observer) Option {
	return func(i *Invoker) {
		i.observer = observer
	}
}

func NewInvoker(opts ...Option) *Invoker {
	i := &Invoker{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Invoker) bind(ctx context.Context) context.Context {
	if i.cfg != nil {
		ctx = core.WithConfig(ctx, *i.cfg)
	}
	if i.logger != nil {
		ctx = i.logger.WithContext(ctx)
	}
	if i.observer != nil {
		ctx = context.WithValue(ctx, observerKey{}, i.observer)
	}
	return ctx
}

func (i *Invoker) Invoke(ctx context.Context, factory Factory, params rop.Payload) (rop.Result, error) {
	return Invoke(i.bind(ctx), factory, params)
}

func (i *Invoker) InvokeOrAbort(ctx context.Context, factory Factory, params rop.Payload) (rop.Result, error) {
	return InvokeOrAbort(i.bind(ctx), factory, params)
}

// InvokeFunc runs one service. Invoke and (*Invoker).Invoke both fit.
type InvokeFunc func(ctx context.Context, factory Factory, params rop.Payload) (rop.Result, error)

// Invoke constructs a service with factory, runs Call once and returns the
// final result. An *Abort returned by Call is turned into its carried
// result. Any other error is returned unchanged with a zero Result; panics
// are not recovered.
func Invoke(ctx context.Context, factory Factory, params rop.Payload) (rop.Result, error) {
	if factory == nil {
		return rop.Result{}, ErrNilService
	}
	svc := factory()
	if rop.IsNil(svc) {
		return rop.Result{}, ErrNilService
	}

	inv := Invocation{ID: uuid.New(), Service: Name(svc)}
	logger := zerolog.Ctx(ctx).With().
		Str("service", inv.Service).
		Str("invocation_id", inv.ID.String()).
		Logger()

	start := time.Now()
	result, aborted, err := run(ctx, svc, params)
	inv.Duration = time.Since(start)
	inv.Err = err

	switch {
	case err != nil && rop.IsCancellationError(err):
		inv.Outcome = OutcomeCanceled
		logger.Warn().Err(err).Dur("duration", inv.Duration).Msg("service canceled")
	case err != nil:
		inv.Outcome = OutcomeErrored
		logger.Error().Err(err).Dur("duration", inv.Duration).Msg("service errored")
	case aborted:
		inv.Outcome = OutcomeAborted
		logger.Debug().Stringer("errors", result.Errors()).Dur("duration", inv.Duration).Msg("service aborted")
	case result.IsFailure():
		inv.Outcome = OutcomeFailed
		logger.Debug().Stringer("errors", result.Errors()).Dur("duration", inv.Duration).Msg("service failed")
	default:
		inv.Outcome = OutcomeSucceeded
		logger.Debug().Dur("duration", inv.Duration).Msg("service succeeded")
	}

	if observer, ok := ctx.Value(observerKey{}).(Observer); ok {
		observer.Observe(ctx, inv)
	}

	return result, err
}

// InvokeOrAbort is Invoke that turns a failed result into an *Abort. Inside
// another service's Call, returning that error aborts the outer service with
// the inner failure:
//
//	if _, err := service.InvokeOrAbort(ctx, inner, params); err != nil {
//		return err
//	}
func InvokeOrAbort(ctx context.Context, factory Factory, params rop.Payload) (rop.Result, error) {
	result, err := Invoke(ctx, factory, params)
	if err != nil {
		return result, err
	}
	if result.IsFailure() {
		return result, NewAbort(result)
	}
	return result, nil
}

func run(ctx context.Context, svc Service, params rop.Payload) (result rop.Result, aborted bool, err error) {
	b := svc.base()
	b.init(params)

	if err := construct(ctx, svc, params); err != nil {
		return rop.Result{}, false, err
	}

	b.state = Running
	err = svc.Call(ctx)
	b.state = Completed

	if err == nil {
		return b.result, false, nil
	}
	if abort, ok := AsAbort(err); ok {
		if carried, ok := abort.Result(); ok {
			return carried, true, nil
		}
		return b.result, true, nil
	}
	return rop.Result{}, false, err
}

func construct(ctx context.Context, svc Service, params rop.Payload) error {
	initializer, ok := svc.(Initializer)
	if !ok {
		if core.IsEnforceInterfaceEnabled(ctx, false) {
			return fmt.Errorf("%w: %s must implement the initialize method because `enforce_interface` is set to true",
				ErrNotImplemented, Name(svc))
		}
		return nil
	}
	return initializer.Initialize(ctx, params)
}
