package services

import "github.com/dmitrijs2005/gophdiary/internal/common"

// ValidationError describes a rejected input. It matches
// common.ErrorValidation under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
