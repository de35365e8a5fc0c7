package rop

import "context"

// PayloadProvider exposes the payload selected by an outcome
type PayloadProvider interface {
	// Active returns data on success and errors on failure
	Active() Payload
	// Get reads a key from the active payload, Absent when missing
	Get(key any) any
}

// Outcome is implemented by Result and anything wrapping one
type Outcome interface {
	PayloadProvider
	// IsSuccess returns true if the operation was successful
	IsSuccess() bool
	// IsFailure returns true if the operation failed
	IsFailure() bool
}

// Validatable runs its own rules and exposes field keyed messages afterwards.
type Validatable interface {
	// IsValid evaluates the rules and records messages
	IsValid(ctx context.Context) bool
	// ErrorMessages maps field names to []string messages
	ErrorMessages() Payload
}

// Persistable can be durably saved.
type Persistable interface {
	// Save reports whether the object was stored
	Save(ctx context.Context) bool
	// SaveOrError stores the object or returns why it could not
	SaveOrError(ctx context.Context) error
}
