// Package cli provides the interactive diary command-line client.
//
// It wires configuration, the local session database, the API client and
// the session state, then runs a REPL whose commands stand in for the
// pages of the diary front-end. Every diary command targets a protected
// route and goes through the route guard first.
//
// Boot order: the persisted session is restored before the first prompt,
// so a user who logged in earlier lands on their dashboard directly.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
