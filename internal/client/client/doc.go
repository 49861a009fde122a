// Package client contains the transport layer of the diary client.
//
// # Overview
//
// The package provides:
//  1. The Client interface: login, register and the diary CRUD/search calls
//     of the remote REST service.
//  2. HTTPClient, the JSON-over-HTTP implementation. It attaches the bearer
//     token handed to each diary call, tags every request with an
//     X-Request-ID and maps responses to typed errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) opening the
//     SQLite file that backs the persisted session.
//
// # Error Handling
//
// Login and registration failures are *AuthError; their Message comes from
// the response body's "error" field, then "message", then a generic
// fallback. Diary failures are *APIError{Status, Message}; a 401 matches
// ErrSessionExpired under errors.Is. Network failures wrap ErrUnavailable.
//
// Every call makes a single attempt; there are no retries.
package client
