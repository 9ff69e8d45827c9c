package domain

import "errors"

// Error taxonomy shared by usecases and the HTTP layer. Usecases wrap these
// with fmt.Errorf("%w: detail"); handlers map them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)
