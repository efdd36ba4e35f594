package core

import (
	"errors"
	"fmt"
)

// Field names reported by ValidationError.
const (
	FieldAmount   = "amount"
	FieldDate     = "date"
	FieldReason   = "reason"
	FieldCategory = "category"
	FieldType     = "type"
	FieldMode     = "mode"
	FieldNode     = "node"
	FieldImage    = "image"
	FieldID       = "id"
)

var (
	ErrMissingAmount   = errors.New("amount is required")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrMissingDate     = errors.New("date is required")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyReason     = errors.New("empty reason")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidMode     = errors.New("invalid entry mode")
	ErrMissingCategory = errors.New("category is required for IN transactions")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyNode       = errors.New("empty node name")
	ErrInvalidRange    = errors.New("start date is after end date")
	ErrMissingID       = errors.New("transaction id is required")
)

// ValidationError is a local input failure. It never reaches the gateway.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// SubmissionError wraps a gateway failure on the save path. The draft that
// produced it is left untouched.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit transaction: %v", e.Cause)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
