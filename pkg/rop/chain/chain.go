package chain

import (
	"context"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/service"
	"github.com/ib-77/ropsvc/pkg/rop/solo"
)

// Chain wraps a rop.Result with context to enable fluent chaining.
// Once a step returns an error every later step is skipped and the error is
// kept.
type Chain struct {
	ctx    context.Context
	result rop.Result
	err    error
	invoke service.InvokeFunc
}

// Start creates a new chain from a rop.Result
func Start(ctx context.Context, result rop.Result) *Chain {
	return &Chain{
		ctx:    ctx,
		result: result,
		invoke: service.Invoke,
	}
}

// FromParams creates a new chain from a successful result holding params
func FromParams(ctx context.Context, params rop.Payload) *Chain {
	return Start(ctx, rop.Success(params))
}

// Using makes later Then steps run through invoke, e.g. an Invoker's
// Invoke method carrying a logger and an observer.
func (c *Chain) Using(invoke service.InvokeFunc) *Chain {
	if invoke == nil {
		invoke = service.Invoke
	}
	return &Chain{ctx: c.ctx, result: c.result, err: c.err, invoke: invoke}
}

// Result returns the underlying rop.Result and the first error raised
func (c *Chain) Result() (rop.Result, error) {
	return c.result, c.err
}

// Then invokes the service built by factory with the current data as its
// params. A failed chain is passed through untouched.
func (c *Chain) Then(factory service.Factory) *Chain {
	return c.Switch(func(ctx context.Context, data rop.Payload) (rop.Result, error) {
		return c.invoke(ctx, factory, data)
	})
}

// Switch chains a function that returns a new result
func (c *Chain) Switch(onSuccess func(context.Context, rop.Payload) (rop.Result, error)) *Chain {
	if c.err != nil {
		return c
	}

	var err error
	result := solo.Switch(c.ctx, c.result, func(ctx context.Context, data rop.Payload) rop.Result {
		var next rop.Result
		next, err = onSuccess(ctx, data)
		return next
	})
	if err != nil {
		return &Chain{ctx: c.ctx, result: c.result, err: err, invoke: c.invoke}
	}
	return &Chain{ctx: c.ctx, result: result, invoke: c.invoke}
}

// Ensure performs a side effect without changing the result
func (c *Chain) Ensure(onSuccess func(context.Context, rop.Payload)) *Chain {
	if c.err != nil {
		return c
	}
	return &Chain{
		ctx: c.ctx,
		result: solo.Tee(c.ctx, c.result,
			func(ctx context.Context, result rop.Result) {
				onSuccess(ctx, result.Data())
			}),
		invoke: c.invoke,
	}
}

// Finally collapses the chain into a final value using solo.Finally. The
// error, if any, is returned alongside the zero value of Out.
func Finally[Out any](c *Chain,
	onSuccess func(context.Context, rop.Payload) Out,
	onError func(context.Context, rop.Payload) Out) (Out, error) {

	if c.err != nil {
		var zero Out
		return zero, c.err
	}
	return solo.Finally(c.ctx, c.result, onSuccess, onError), nil
}
