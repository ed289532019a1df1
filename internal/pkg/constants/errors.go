package constants

import (
	"errors"
	"net/http"
)

// CodedError is an error that knows which HTTP status it should be answered with.
type CodedError struct {
	err  error
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{err: errors.New(msg), code: code}
}

func (e *CodedError) Error() string {
	return e.err.Error()
}

func (e *CodedError) Code() int {
	return e.code
}

func (e *CodedError) Unwrap() error {
	return e.err
}

var (
	ErrDBNotFound        = NewCodedError("not found", http.StatusNotFound)
	ErrUnauthorized      = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrMissingAuthCookie = NewCodedError("missing auth cookie", http.StatusUnauthorized)
	ErrBadRequest        = NewCodedError("bad request", http.StatusBadRequest)
)
