package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/service"
)

// double reads "n" and succeeds with "n" doubled, failing on negatives.
type double struct {
	service.Base
}

func (d *double) Call(context.Context) error {
	n, ok := d.Param("n").(int)
	if !ok {
		return d.FailAndAbort(rop.Of("n", []string{"can't be blank"}))
	}
	if n < 0 {
		d.Fail(rop.Of("n", []string{"must be positive"}))
		return nil
	}
	d.Succeed(rop.Of("n", n*2))
	return nil
}

type broken struct {
	service.Base
}

func (b *broken) Call(context.Context) error {
	return errors.New("boom")
}

func newDouble() service.Service { return &double{} }

func TestThen_PassesDataAsParams(t *testing.T) {
	t.Parallel()

	res, err := FromParams(context.Background(), rop.Of("n", 3)).
		Then(newDouble).
		Then(newDouble).
		Result()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %v", res)
	}
	if got := res.Get("n"); got != 12 {
		t.Fatalf("expected 12, got %v", got)
	}
}

func TestThen_SkipsAfterFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	counting := func() service.Service {
		calls++
		return &double{}
	}

	res, err := FromParams(context.Background(), rop.Of("n", -1)).
		Then(newDouble).
		Then(counting).
		Result()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsFailure() {
		t.Fatalf("expected failure, got %v", res)
	}
	if calls != 0 {
		t.Fatalf("expected second service to be skipped, built %d times", calls)
	}
	if got := res.Get("n"); fmt.Sprint(got) != "[must be positive]" {
		t.Fatalf("unexpected errors: %v", got)
	}
}

func TestThen_AbortedServiceFails(t *testing.T) {
	t.Parallel()

	res, err := FromParams(context.Background(), rop.Of("other", 1)).
		Then(newDouble).
		Result()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsFailure() {
		t.Fatalf("expected failure, got %v", res)
	}
}

func TestThen_ErrorStopsChain(t *testing.T) {
	t.Parallel()

	ensured := false
	res, err := FromParams(context.Background(), rop.Of("n", 1)).
		Then(func() service.Service { return &broken{} }).
		Ensure(func(context.Context, rop.Payload) { ensured = true }).
		Then(newDouble).
		Result()

	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
	if ensured {
		t.Fatal("Ensure ran after an error")
	}
	if got := res.Get("n"); got != 1 {
		t.Fatalf("expected the last good result to be kept, got %v", got)
	}
}

func TestUsing_CustomInvoke(t *testing.T) {
	t.Parallel()

	var seen []rop.Payload
	invoke := func(ctx context.Context, factory service.Factory, params rop.Payload) (rop.Result, error) {
		seen = append(seen, params)
		return service.Invoke(ctx, factory, params)
	}

	res, err := FromParams(context.Background(), rop.Of("n", 2)).
		Using(invoke).
		Then(newDouble).
		Then(newDouble).
		Result()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(seen))
	}
	if got := seen[1].String(); got != "{n:4}" {
		t.Fatalf("unexpected params for the second step: %s", got)
	}
	if got := res.Get("n"); got != 8 {
		t.Fatalf("expected 8, got %v", got)
	}
}

func TestSwitch(t *testing.T) {
	t.Parallel()

	res, err := Start(context.Background(), rop.Success(rop.Of("a", 1))).
		Switch(func(_ context.Context, data rop.Payload) (rop.Result, error) {
			return rop.Success(data.With("b", 2)), nil
		}).
		Result()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Data().String(); got != "{a:1 b:2}" {
		t.Fatalf("unexpected data: %s", got)
	}
}

func TestEnsure_OnlyOnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	count := 0
	bump := func(context.Context, rop.Payload) { count++ }

	Start(ctx, rop.Success(rop.Of("a", 1))).Ensure(bump)
	Start(ctx, rop.Failure(rop.Of("a", "bad"))).Ensure(bump)

	if count != 1 {
		t.Fatalf("expected 1 side effect, got %d", count)
	}
}

func TestFinally(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	onSuccess := func(_ context.Context, data rop.Payload) string { return "ok " + data.String() }
	onError := func(_ context.Context, errs rop.Payload) string { return "failed " + errs.String() }

	out, err := Finally(FromParams(ctx, rop.Of("n", 1)).Then(newDouble), onSuccess, onError)
	if err != nil || out != "ok {n:2}" {
		t.Fatalf("unexpected outcome: %q, %v", out, err)
	}

	out, err = Finally(FromParams(ctx, rop.Of("n", -1)).Then(newDouble), onSuccess, onError)
	if err != nil || out != "failed {n:[must be positive]}" {
		t.Fatalf("unexpected outcome: %q, %v", out, err)
	}

	out, err = Finally(FromParams(ctx, rop.Payload{}).Then(func() service.Service { return &broken{} }), onSuccess, onError)
	if err == nil || out != "" {
		t.Fatalf("expected error and zero value, got %q, %v", out, err)
	}
}
