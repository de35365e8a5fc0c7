package solo

import (
	"context"
	"testing"

	"github.com/ib-77/ropsvc/pkg/rop"
)

type check struct {
	valid    bool
	messages rop.Payload
	calls    int
}

func (c *check) IsValid(context.Context) bool {
	c.calls++
	return c.valid
}

func (c *check) ErrorMessages() rop.Payload {
	return c.messages
}

func invalid(field, msg string) *check {
	return &check{messages: rop.Of(field, []string{msg})}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	res := Validate(context.Background(), "user", &check{valid: true})
	if !res.IsSuccess() || !res.Data().IsEmpty() {
		t.Fatalf("expected empty success, got %v", res)
	}
}

func TestValidate_InvalidNestsMessagesUnderKey(t *testing.T) {
	t.Parallel()

	res := Validate(context.Background(), "address", invalid("line1", "is too short"))
	if !res.IsFailure() {
		t.Fatalf("expected failure")
	}
	nested, ok := res.Get("address").(rop.Payload)
	if !ok {
		t.Fatalf("expected nested payload, got %T", res.Get("address"))
	}
	if got := rop.Messages(nested.ToMap()["line1"]); len(got) != 1 || got[0] != "is too short" {
		t.Fatalf("unexpected messages: %v", got)
	}
}

func TestValidateAll_AggregatesWithoutShortCircuit(t *testing.T) {
	t.Parallel()

	a := invalid("x", "bad x")
	b := invalid("y", "bad y")

	res := ValidateAll(context.Background(), false,
		Check{Key: "a", Validatable: a},
		Check{Key: "b", Validatable: b})

	if !res.IsFailure() {
		t.Fatalf("expected failure")
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected every check to run once, got a=%d b=%d", a.calls, b.calls)
	}
	want := rop.Of("a", rop.Of("x", []string{"bad x"}), "b", rop.Of("y", []string{"bad y"}))
	if !res.Errors().Equal(want) {
		t.Fatalf("expected %v, got %v", want, res.Errors())
	}
}

func TestValidateAll_BreakOnError(t *testing.T) {
	t.Parallel()

	a := invalid("x", "bad x")
	b := invalid("y", "bad y")

	res := ValidateAll(context.Background(), true,
		Check{Key: "a", Validatable: a},
		Check{Key: "b", Validatable: b})

	if b.calls != 0 {
		t.Fatalf("expected second check to be skipped")
	}
	if res.Errors().Has("b") || !res.Errors().Has("a") {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
}

func TestValidateAll_KeyCollisionLastWins(t *testing.T) {
	t.Parallel()

	res := ValidateAll(context.Background(), false,
		Check{Key: "user", Validatable: invalid("name", "first")},
		Check{Key: "user", Validatable: invalid("email", "second")})

	want := rop.Of("user", rop.Of("email", []string{"second"}))
	if !res.Errors().Equal(want) {
		t.Fatalf("expected %v, got %v", want, res.Errors())
	}
}

func TestValidateAll_AllValid(t *testing.T) {
	t.Parallel()

	res := ValidateAll(context.Background(), false,
		Check{Key: "a", Validatable: &check{valid: true}},
		Check{Key: "b", Validatable: &check{valid: true}})

	if !res.IsSuccess() {
		t.Fatalf("expected success, got %v", res)
	}
}

func TestJoin_NoInputsReturnsInput(t *testing.T) {
	t.Parallel()

	in := Fail(rop.Of("k", "v"))
	out := Join(context.Background(), in, false, nil)
	if out.ID() != in.ID() {
		t.Fatalf("expected input to be returned unchanged")
	}
}

func TestSwitch_SkipsOnFailure(t *testing.T) {
	t.Parallel()

	called := false
	in := Fail(rop.Of("k", "v"))
	out := Switch(context.Background(), in, func(context.Context, rop.Payload) rop.Result {
		called = true
		return Succeed(rop.Payload{})
	})
	if called || out.ID() != in.ID() {
		t.Fatalf("expected failure to pass through untouched")
	}

	out = Switch(context.Background(), Succeed(rop.Of("n", 1)), func(_ context.Context, d rop.Payload) rop.Result {
		v, _ := d.Get("n")
		return Succeed(rop.Of("n", v.(int)+1))
	})
	if out.Get("n") != 2 {
		t.Fatalf("expected 2, got %v", out.Get("n"))
	}
}

func TestTee_OnlyOnSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	Tee(context.Background(), Succeed(rop.Payload{}), func(context.Context, rop.Result) { calls++ })
	Tee(context.Background(), Fail(rop.Payload{}), func(context.Context, rop.Result) { calls++ })
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
}

func TestFinally(t *testing.T) {
	t.Parallel()

	onSuccess := func(_ context.Context, d rop.Payload) string { return "ok" }
	onError := func(_ context.Context, e rop.Payload) string { return "err:" + e.Keys()[0] }

	if got := Finally(context.Background(), Succeed(rop.Payload{}), onSuccess, onError); got != "ok" {
		t.Fatalf("expected ok, got %s", got)
	}
	if got := Finally(context.Background(), Fail(rop.Of("email", "bad")), onSuccess, onError); got != "err:email" {
		t.Fatalf("expected err:email, got %s", got)
	}
}
