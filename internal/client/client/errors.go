package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// AuthError reports a rejected or failed login/registration. Message is
// meant to be shown to the user as is.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError reports a non-2xx response of the diary API.
//
// A 401 matches both ErrSessionExpired and ErrUnauthorized under errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrSessionExpired:
		return e.Status == http.StatusUnauthorized
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}
