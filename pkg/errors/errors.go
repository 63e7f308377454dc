package errors

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("resource already exists")
	ErrUpstream     = errors.New("upstream service unavailable")
	ErrInternal     = errors.New("internal server error")
)
