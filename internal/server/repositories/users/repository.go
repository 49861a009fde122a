// Package users stores the accounts of the stand-in API.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// Account is a user together with its password hash. The hash never
// leaves the server.
type Account struct {
	models.User
	PasswordHash []byte
}

// Repository persists accounts. Emails are unique, compared
// case-insensitively. Lookups of absent accounts return
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
}
