package auth

import (
	"context"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID int64
	Role   models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanAccess reports whether p may modify or see the private entries of
// ownerID.
func (p Principal) CanAccess(ownerID int64) bool {
	return p.IsAdmin() || p.UserID == ownerID
}

type contextKey string

const principalKey contextKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
