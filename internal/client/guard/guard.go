// Package guard decides whether a navigation to a protected route may
// proceed.
//
// Access is granted when the in-memory session is authenticated OR the
// persisted store holds a complete record. The second branch covers the
// window before the in-memory session has been restored. Unknown routes
// redirect to RouteHome; every other denial redirects to RouteLogin.
package guard

import (
	"context"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// SessionSource exposes the in-memory session.
type SessionSource interface {
	Snapshot() models.Session
}

// SessionLoader exposes the persisted session.
type SessionLoader interface {
	Load(ctx context.Context) (models.SessionRecord, bool)
}

// Decision is the outcome of a navigation check. Redirect is set only
// when Allowed is false.
type Decision struct {
	Allowed  bool
	Redirect string
}

type Guard struct {
	session SessionSource
	store   SessionLoader
}

func New(session SessionSource, store SessionLoader) *Guard {
	return &Guard{session: session, store: store}
}

// CanAccess reports whether a protected route may be shown.
func (g *Guard) CanAccess(ctx context.Context) bool {
	if g.session.Snapshot().IsAuthenticated {
		return true
	}
	_, ok := g.store.Load(ctx)
	return ok
}

// Check evaluates a navigation to route.
func (g *Guard) Check(ctx context.Context, route string) Decision {
	route = normalize(route)
	if !IsKnown(route) {
		return Decision{Redirect: RouteHome}
	}
	if !IsProtected(route) {
		return Decision{Allowed: true}
	}
	if !g.CanAccess(ctx) {
		return Decision{Redirect: RouteLogin}
	}
	if route == RouteDashboard {
		if u := g.currentUser(ctx); u != nil && !u.IsAdmin() {
			return Decision{Redirect: RouteUserDashboard}
		}
	}
	return Decision{Allowed: true}
}

// currentUser prefers the in-memory user and falls back to the persisted
// one.
func (g *Guard) currentUser(ctx context.Context) *models.User {
	if s := g.session.Snapshot(); s.IsAuthenticated && s.User != nil {
		return s.User
	}
	if rec, ok := g.store.Load(ctx); ok {
		return &rec.User
	}
	return nil
}
