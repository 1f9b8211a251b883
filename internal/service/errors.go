package service

import "errors"

// Failure kinds. Handlers translate these to HTTP statuses with
// errors.Is; the message wrapped around them is what the client sees.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type taggedError struct {
	kind error
	msg  string
}

func (e *taggedError) Error() string { return e.msg }

func (e *taggedError) Unwrap() error { return e.kind }

func tagged(kind error, msg string) error {
	return &taggedError{kind: kind, msg: msg}
}
