package wizard

import (
	"errors"
	"sort"
	"strings"
)

// Field names a user input.
type Field string

const (
	FieldRecipient Field = "recipient"
	FieldAmount    Field = "amount"
	FieldReference Field = "reference"
)

var (
	ErrBusy        = errors.New("wizard: a step is already in progress")
	ErrCompleted   = errors.New("wizard: payment already completed")
	ErrFinalStep   = errors.New("wizard: confirmation is the last step; submit instead")
	ErrNotConfirm  = errors.New("wizard: submit is only possible from the confirmation step")
	ErrDeclined    = errors.New("wizard: payment declined")
	ErrNoContactNo = errors.New("wizard: contact has no phone number")
)

// ValidationError carries per-field messages. Err is set when a vendor call
// caused the failure.
type ValidationError struct {
	Fields map[Field]string
	Err    error
}

func invalid(f Field, msg string) *ValidationError {
	return &ValidationError{Fields: map[Field]string{f: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[Field(k)])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Message returns the message for f, or "".
func (e *ValidationError) Message(f Field) string {
	if e == nil {
		return ""
	}
	return e.Fields[f]
}
