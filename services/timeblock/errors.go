package timeblock

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the API layer. Every rejected transition carries
// one of these; the entity is left untouched.
const (
	CodeValidation      = "validation"
	CodeConflict        = "conflict"
	CodeOutOfWindow     = "outOfWindow"
	CodeExpired         = "expired"
	CodeNotYet          = "notYet"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "notFound"
	CodeAlreadyTerminal = "alreadyTerminal"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func errValidation(msg string) error      { return newError(CodeValidation, msg) }
func errConflict(msg string) error        { return newError(CodeConflict, msg) }
func errOutOfWindow(msg string) error     { return newError(CodeOutOfWindow, msg) }
func errExpired(msg string) error         { return newError(CodeExpired, msg) }
func errNotYet(msg string) error          { return newError(CodeNotYet, msg) }
func errForbidden(msg string) error       { return newError(CodeForbidden, msg) }
func errNotFound(msg string) error        { return newError(CodeNotFound, msg) }
func errAlreadyTerminal(msg string) error { return newError(CodeAlreadyTerminal, msg) }

// CodeOf extracts the service error code, or "" for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err is a service error with the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
