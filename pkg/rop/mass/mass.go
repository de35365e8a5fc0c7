package mass

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/service"
)

// Job is one invocation request. Index is the position of the job in its
// batch.
type Job struct {
	Index  int
	Params rop.Payload
}

// Outcome is what one job's invocation returned.
type Outcome struct {
	Index  int
	Params rop.Payload
	Result rop.Result
	Err    error
}

func (o Outcome) IsSuccess() bool {
	return o.Err == nil && o.Result.IsSuccess()
}

// Stream invokes factory once per job on the given number of lines and
// emits outcomes in completion order. The channel closes when jobs is
// drained or ctx is done; jobs left unread are not reported.
func Stream(ctx context.Context, invoke service.InvokeFunc, factory service.Factory,
	jobs <-chan Job, lines int) <-chan Outcome {

	if invoke == nil {
		invoke = service.Invoke
	}
	if lines < 1 {
		lines = 1
	}

	out := make(chan Outcome)
	wg := &sync.WaitGroup{}

	for i := 0; i < lines; i++ {
		wg.Add(1)
		go locomotive(ctx, invoke, factory, jobs, out, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func locomotive(ctx context.Context, invoke service.InvokeFunc, factory service.Factory,
	jobs <-chan Job, out chan<- Outcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}

			result, err := invoke(ctx, factory, job.Params)
			outcome := Outcome{Index: job.Index, Params: job.Params, Result: result, Err: err}

			select {
			case <-ctx.Done():
				return
			case out <- outcome:
			}
		}
	}
}

// InvokeAll invokes factory once per params entry and returns the outcomes
// in input order. Entries that never ran because ctx ended carry ctx's
// error.
func InvokeAll(ctx context.Context, invoke service.InvokeFunc, factory service.Factory,
	params []rop.Payload, lines int) []Outcome {

	jobs := make(chan Job)
	go func() {
		defer close(jobs)
		for i, p := range params {
			select {
			case <-ctx.Done():
				return
			case jobs <- Job{Index: i, Params: p}:
			}
		}
	}()

	outcomes := make([]Outcome, len(params))
	done := make([]bool, len(params))
	for o := range Stream(ctx, invoke, factory, jobs, lines) {
		outcomes[o.Index] = o
		done[o.Index] = true
	}

	for i := range outcomes {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			outcomes[i] = Outcome{Index: i, Params: params[i], Err: err}
		}
	}
	return outcomes
}

// Split separates outcomes into successes and failures and joins every
// invocation error, annotated with its index.
func Split(outcomes []Outcome) (succeeded, failed []Outcome, err error) {
	var errs []error
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			errs = append(errs, fmt.Errorf("job %d: %w", o.Index, o.Err))
		case o.Result.IsSuccess():
			succeeded = append(succeeded, o)
		default:
			failed = append(failed, o)
		}
	}
	return succeeded, failed, errors.Join(errs...)
}
