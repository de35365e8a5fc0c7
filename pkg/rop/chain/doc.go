// Package chain provides a fluent wrapper around rop.Result for running
// services one after another.
//
// Each Then step invokes a service with the data of the previous result as
// its params, and only when that result succeeded:
//
//	out, err := chain.FromParams(ctx, params).
//	    Then(NewSignUp).
//	    Ensure(func(ctx context.Context, data rop.Payload) { log(data) }).
//	    Then(NewWelcome).
//	    Result()
//
// Key operations:
// - Start/FromParams: begin a chain from a result or from params
// - Using: route Then through a configured service.Invoker
// - Then: invoke the next service
// - Switch: continue with any function returning a result
// - Ensure: run side effects on success without changing the result
// - Finally: collapse the chain into a final value via handlers
package chain
