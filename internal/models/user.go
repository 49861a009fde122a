// Package models defines the diary domain types shared by the client
// packages and the local stand-in API. JSON tags follow the remote
// service's wire format.
package models

import "github.com/dmitrijs2005/gophdiary/internal/timex"

// Role is the authorization role the API assigns to a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is the client's cached copy of the account owned by the API.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Age       int        `json:"age"`
	Role      Role       `json:"role"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials are only ever passed as call parameters; they are never
// persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the registration payload.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// AuthResult is the body of a successful login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterResult is the body of a successful registration.
type RegisterResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
