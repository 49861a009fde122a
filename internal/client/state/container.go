// Package state holds the in-memory session of the running client.
//
// The Container is the single authority on "who is logged in" during a
// live session. It is mutated only through its actions (Login, Register,
// Logout, RestoreAuth, ClearError, ExpireSession) and publishes a snapshot
// to its subscribers after every transition.
//
// Concurrent Login calls are not coalesced: each runs independently and
// the last one to resolve determines the final state.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/client/client"
	"github.com/dmitrijs2005/gophdiary/internal/client/guard"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

const (
	loginFailedMessage    = "login failed"
	registerFailedMessage = "registration failed"
)

// Authenticator performs the remote and persisted side of the actions.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, profile models.Profile) (*models.User, error)
	Logout(ctx context.Context) error
}

// SessionLoader reads the persisted session.
type SessionLoader interface {
	Load(ctx context.Context) (models.SessionRecord, bool)
}

type Navigator interface {
	Navigate(route string)
}

type observer struct {
	id int
	fn func(models.Session)
}

type Container struct {
	auth   Authenticator
	store  SessionLoader
	nav    Navigator
	logger logging.Logger

	mu        sync.Mutex
	session   models.Session
	observers []observer
	nextID    int
}

// New returns a container in the initial, unauthenticated state. nav may
// be nil.
func New(auth Authenticator, store SessionLoader, nav Navigator, logger logging.Logger) *Container {
	return &Container{auth: auth, store: store, nav: nav, logger: logger}
}

// Snapshot returns a copy of the current session.
func (c *Container) Snapshot() models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Clone()
}

// Token returns the current bearer token, or "" when logged out.
func (c *Container) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Token
}

// Subscribe registers fn to receive a snapshot after every transition.
func (c *Container) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, observer{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// update applies fn under the lock and notifies observers outside it.
func (c *Container) update(fn func(s *models.Session)) {
	c.mu.Lock()
	fn(&c.session)
	snap := c.session.Clone()
	observers := append([]observer(nil), c.observers...)
	c.mu.Unlock()

	for _, o := range observers {
		o.fn(snap.Clone())
	}
}

func (c *Container) Login(ctx context.Context, creds models.Credentials) error {
	c.update(func(s *models.Session) {
		s.Loading = true
		s.Error = ""
	})

	res, err := c.auth.Login(ctx, creds)
	if err == nil && (res == nil || res.Token == "") {
		err = errors.New(loginFailedMessage)
	}
	if err != nil {
		msg := failureMessage(err, loginFailedMessage)
		c.update(func(s *models.Session) {
			*s = models.Session{Error: msg}
		})
		return err
	}

	user := res.User
	c.update(func(s *models.Session) {
		*s = models.Session{User: &user, Token: res.Token, IsAuthenticated: true}
	})
	return nil
}

// Register never changes the authentication status.
func (c *Container) Register(ctx context.Context, profile models.Profile) (*models.User, error) {
	c.update(func(s *models.Session) {
		s.Loading = true
		s.Error = ""
	})

	u, err := c.auth.Register(ctx, profile)
	if err != nil {
		msg := failureMessage(err, registerFailedMessage)
		c.update(func(s *models.Session) {
			s.Loading = false
			s.Error = msg
		})
		return nil, err
	}

	c.update(func(s *models.Session) {
		s.Loading = false
	})
	return u, nil
}

// Logout resets to the initial state, then clears the persisted session.
// Storage failures are logged only.
func (c *Container) Logout(ctx context.Context) {
	c.update(func(s *models.Session) {
		*s = models.Session{}
	})

	if err := c.auth.Logout(ctx); err != nil {
		c.logger.Warn(ctx, "logout left persisted session behind", "error", err)
	}
}

// RestoreAuth adopts the persisted session when it is complete and leaves
// the state untouched otherwise. It makes no network call.
func (c *Container) RestoreAuth(ctx context.Context) {
	rec, ok := c.store.Load(ctx)
	if !ok || rec.Token == "" {
		return
	}

	user := rec.User
	c.update(func(s *models.Session) {
		s.User = &user
		s.Token = rec.Token
		s.IsAuthenticated = true
	})
	c.logger.Debug(ctx, "session restored", "user_id", user.ID)
}

func (c *Container) ClearError() {
	c.update(func(s *models.Session) {
		s.Error = ""
	})
}

// ExpireSession handles a 401 from the diary API: it logs out, keeps a
// message for the user and sends the front-end to the login route.
func (c *Container) ExpireSession(ctx context.Context) {
	c.Logout(ctx)
	c.update(func(s *models.Session) {
		s.Error = client.ErrSessionExpired.Error()
	})
	if c.nav != nil {
		c.nav.Navigate(guard.RouteLogin)
	}
}

func failureMessage(err error, fallback string) string {
	var ae *client.AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
