package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophdiary/internal/client/guard"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errInvalidAge = errors.New("age must be a positive number")

// Register prompts for a profile and creates the account. The caller
// stays logged out and is sent to the login route.
func (a *App) Register(ctx context.Context) error {
	a.Navigate(guard.RouteRegister)

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	ageText, err := getSimpleText(a.reader, "Enter age", a.out)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil || age <= 0 {
		printlnFn("Registration failed:", errInvalidAge)
		return errInvalidAge
	}

	u, err := a.state.Register(ctx, models.Profile{Name: name, Email: email, Password: string(password), Age: age})
	if err != nil {
		printlnFn("Registration failed:", a.state.Snapshot().Error)
		a.state.ClearError()
		return err
	}

	printlnFn(fmt.Sprintf("Registered %s, please log in", u.Email))
	a.Navigate(guard.RouteLogin)
	return nil
}

// Login prompts for credentials. On success the user lands on the
// dashboard matching their role.
func (a *App) Login(ctx context.Context) error {
	a.Navigate(guard.RouteLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.state.Login(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		printlnFn("Login failed:", a.state.Snapshot().Error)
		a.state.ClearError()
		return err
	}

	u := a.state.Snapshot().User
	printlnFn("Welcome,", u.Name)
	a.Navigate(guard.LandingRoute(u))
	return nil
}

// Logout always succeeds from the user's point of view.
func (a *App) Logout(ctx context.Context) error {
	a.state.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.state.Snapshot()
	if !s.IsAuthenticated || s.User == nil {
		printlnFn("Not logged in")
		return nil
	}
	u := s.User
	printlnFn(fmt.Sprintf("#%d %s <%s>, age %d, role %s", u.ID, u.Name, u.Email, u.Age, u.Role))
	return nil
}

// Go navigates to an arbitrary route through the guard.
func (a *App) Go(ctx context.Context, route string) error {
	if !a.enter(ctx, route) {
		return nil
	}
	printlnFn("Now at", a.currentRoute())
	return nil
}
