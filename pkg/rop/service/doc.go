// Package service standardizes how business logic is called and how it
// reports its outcome.
//
// A service embeds Base, overrides Call and records its outcome with
// Succeed, Fail or FailAndAbort. Invoke builds a fresh instance through a
// Factory, runs Call once and hands back the final rop.Result:
//
//	type SendInvite struct {
//	    service.Base
//	}
//
//	func (s *SendInvite) Call(ctx context.Context) error {
//	    if rop.IsAbsent(s.Param("email")) {
//	        return s.FailAndAbort(rop.Of("email", []string{"can't be blank"}))
//	    }
//	    s.Succeed(rop.Of("sent", true))
//	    return nil
//	}
//
//	res, err := service.Invoke(ctx, func() service.Service { return &SendInvite{} }, params)
//
// Succeed and Fail only replace the current result; FailAndAbort also
// returns an *Abort that Call passes up to stop early. Invoke intercepts only
// *Abort: any other error from Call is a real failure and reaches the caller.
//
// Nested services: a plain Invoke inside Call never touches the outer
// result. InvokeOrAbort returns an *Abort when the inner service failed, so
// returning it aborts the outer service with the inner result.
//
// ValidateOne, ValidateOneAndAbort and ValidateAll turn rop.Validatable
// objects (forms, models) into failures keyed by name.
package service
