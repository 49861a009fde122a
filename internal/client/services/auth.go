// Package services contains the application services of the diary client.
// This file defines the authentication service: login and registration
// against the remote API, and the persisted side of logout.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/client/client"
	"github.com/dmitrijs2005/gophdiary/internal/client/guard"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// SessionStore is the persisted session as seen by the auth service.
type SessionStore interface {
	Save(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
}

// Navigator moves the front-end to another route.
type Navigator interface {
	Navigate(route string)
}

// AuthService defines authentication operations.
//
// Contract:
//   - Login: authenticate against the API and persist {token, user}.
//   - Register: create an account; the caller stays unauthenticated.
//   - Logout: clear the persisted session and navigate to the public
//     entry point. Safe to call when already logged out.
//
// Login and Register failures are *client.AuthError.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, profile models.Profile) (*models.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
	nav    Navigator
	logger logging.Logger
}

// NewAuthService constructs an AuthService. nav may be nil when no
// front-end is attached.
func NewAuthService(c client.Client, store SessionStore, nav Navigator, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, nav: nav, logger: logger}
}

// Login authenticates and persists the session. Nothing is persisted when
// the API rejects the credentials.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	res, err := a.client.Login(ctx, creds)
	if err != nil {
		a.logger.Info(ctx, "login rejected", "email", creds.Email, "error", err)
		return nil, err
	}

	if err := a.store.Save(ctx, res.Token, res.User); err != nil {
		a.logger.Error(ctx, "persisting session failed", "user_id", res.User.ID, "error", err)
		return nil, fmt.Errorf("persist session: %w", err)
	}

	a.logger.Info(ctx, "login succeeded", "user_id", res.User.ID, "role", res.User.Role)
	return res, nil
}

func (a *authService) Register(ctx context.Context, profile models.Profile) (*models.User, error) {
	res, err := a.client.Register(ctx, profile)
	if err != nil {
		a.logger.Info(ctx, "registration rejected", "email", profile.Email, "error", err)
		return nil, err
	}
	a.logger.Info(ctx, "registration succeeded", "user_id", res.User.ID)
	return &res.User, nil
}

// Logout navigates home even when clearing storage fails; the error is
// still returned.
func (a *authService) Logout(ctx context.Context) error {
	err := a.store.Clear(ctx)
	if err != nil {
		a.logger.Warn(ctx, "clearing persisted session failed", "error", err)
	}
	if a.nav != nil {
		a.nav.Navigate(guard.RouteHome)
	}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
