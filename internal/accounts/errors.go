package accounts

import "errors"

var (
	ErrMissingParam = errors.New("missing param")
	ErrNotFound     = errors.New("not found")
)
