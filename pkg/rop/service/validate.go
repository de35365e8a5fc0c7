package service

import (
	"context"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/solo"
)

// Pipeline is an ordered set of named checks evaluated together.
type Pipeline struct {
	checks []solo.Check
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Add appends a check. Adding the same key twice keeps both checks; if both
// fail the later messages win.
func (p *Pipeline) Add(key any, v Validatable) *Pipeline {
	p.checks = append(p.checks, solo.Check{Key: rop.Key(key), Validatable: v})
	return p
}

func (p *Pipeline) Len() int {
	return len(p.checks)
}

// ValidateOne fails the service with {key: messages} when v is invalid.
func (b *Base) ValidateOne(ctx context.Context, key any, v Validatable) {
	if res := solo.Validate(ctx, key, v); res.IsFailure() {
		b.Fail(res.Errors())
	}
}

// ValidateOneAndAbort is ValidateOne followed by an abort on failure.
func (b *Base) ValidateOneAndAbort(ctx context.Context, key any, v Validatable) error {
	if res := solo.Validate(ctx, key, v); res.IsFailure() {
		return b.FailAndAbort(res.Errors())
	}
	return nil
}

// ValidateAll runs every check in the pipeline, then aborts once with the
// accumulated errors. When all checks pass the current result is left as is.
func (b *Base) ValidateAll(ctx context.Context, pipeline *Pipeline) error {
	if pipeline == nil || pipeline.Len() == 0 {
		return nil
	}
	if res := solo.ValidateAll(ctx, false, pipeline.checks...); res.IsFailure() {
		return b.FailAndAbort(res.Errors())
	}
	return nil
}
