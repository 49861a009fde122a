// Package common contains wire-level constants shared by the diary client
// and the local stand-in API.
package common

const (
	// AuthorizationHeaderName carries the bearer credential.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates client log lines with server log lines.
	RequestIDHeaderName = "X-Request-ID"

	ContentTypeJSON = "application/json"
)
