// Package mass runs one service over a batch of params on several
// goroutine lines.
//
// Every job gets its own service instance, so invocations never share
// state:
//
//	outcomes := mass.InvokeAll(ctx, invoker.Invoke, accounts.NewSignUp(db), params, 4)
//	ok, failed, err := mass.Split(outcomes)
//
// Stream is the channel form for callers that produce jobs incrementally.
package mass
