package service

import (
	"errors"
	"fmt"

	"github.com/ib-77/ropsvc/pkg/rop"
)

var (
	// ErrNotImplemented marks a missing required override. It is a
	// programming error and is never turned into a Result.
	ErrNotImplemented = errors.New("not implemented")

	ErrNilService = errors.New("factory returned nil service")
)

// Abort is the control-flow signal returned by FailAndAbort,
// ValidateOneAndAbort, ValidateAll and InvokeOrAbort. Invoke intercepts it
// and returns the carried result; every other error passes through.
type Abort struct {
	result    rop.Result
	hasResult bool
}

func NewAbort(result rop.Result) *Abort {
	return &Abort{result: result, hasResult: !result.IsZero()}
}

func (a *Abort) Error() string {
	if !a.hasResult {
		return "service aborted"
	}
	return fmt.Sprintf("service aborted: %s", a.result)
}

// Result returns the carried result and whether there is one.
func (a *Abort) Result() (rop.Result, bool) {
	return a.result, a.hasResult
}

// AsAbort unwraps err to an *Abort.
func AsAbort(err error) (*Abort, bool) {
	var abort *Abort
	if errors.As(err, &abort) {
		return abort, true
	}
	return nil, false
}

func IsAbort(err error) bool {
	_, ok := AsAbort(err)
	return ok
}
