package solo

import (
	"context"

	"github.com/ib-77/ropsvc/pkg/rop"
)

// Check names one Validatable inside a pipeline.
type Check struct {
	Key         string
	Validatable rop.Validatable
}

func Succeed(data rop.Payload) rop.Result {
	return rop.Success(data)
}

func Fail(errors rop.Payload) rop.Result {
	return rop.Failure(errors)
}

// Validate runs v and returns an empty success, or a failure holding
// {key: v.ErrorMessages()}.
func Validate(ctx context.Context, key any, v rop.Validatable) rop.Result {
	if v.IsValid(ctx) {
		return rop.Success(rop.Payload{})
	}
	return rop.Failure(rop.Of(key, v.ErrorMessages()))
}

// ValidateAll folds every check into one result. Failures accumulate into a
// single error payload; when two failing checks share a key the later one
// wins. With breakOnError the fold stops at the first failing check.
func ValidateAll(
	ctx context.Context,
	breakOnError bool, // exit on first error
	checks ...Check) rop.Result {

	inputsF := make([]func(ctx context.Context) rop.Result, 0, len(checks))
	for _, c := range checks {
		c := c
		inputsF = append(inputsF, func(ctx context.Context) rop.Result {
			return Validate(ctx, c.Key, c.Validatable)
		})
	}

	return Join(
		ctx,
		rop.Success(rop.Payload{}),
		breakOnError,
		func(ctx context.Context, acc, current rop.Result) rop.Result {
			if current.IsSuccess() {
				return acc
			}
			if acc.IsSuccess() {
				return current
			}
			return rop.Failure(acc.Errors().Merge(current.Errors()))
		},
		inputsF...,
	)
}

// Join evaluates inputsF in order and folds each outcome into the
// accumulator with concat.
func Join(ctx context.Context,
	input rop.Result,
	breakOnError bool, // exit on first error
	concat func(ctx context.Context, acc, current rop.Result) rop.Result,
	inputsF ...func(ctx context.Context) rop.Result) rop.Result {

	if len(inputsF) == 0 || concat == nil {
		return input
	}

	finalResult := input
	for _, in := range inputsF {
		finalResult = concat(ctx, finalResult, in(ctx))
		if finalResult.IsFailure() && breakOnError {
			return finalResult
		}
	}
	return finalResult
}

func Switch(ctx context.Context,
	input rop.Result,
	onSuccess func(ctx context.Context, data rop.Payload) rop.Result) rop.Result {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Data())
	}
	return input
}

func Tee(ctx context.Context,
	input rop.Result,
	onSuccess func(ctx context.Context, r rop.Result)) rop.Result {

	if input.IsSuccess() {
		onSuccess(ctx, input)
	}

	return input
}

func Finally[Out any](ctx context.Context, input rop.Outcome,
	onSuccess func(ctx context.Context, data rop.Payload) Out,
	onError func(ctx context.Context, errors rop.Payload) Out) Out {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Active())
	}
	return onError(ctx, input.Active())
}
