// Package middleware holds the HTTP middleware of the stand-in API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/server/auth"
	"github.com/dmitrijs2005/gophdiary/internal/server/respond"
)

// BearerAuth rejects requests without a valid bearer token and stores the
// caller in the request context (see auth.PrincipalFromContext).
func BearerAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if header == "" {
				respond.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(header, common.BearerPrefix)
			if !found || token == "" {
				respond.Error(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := auth.ParseToken(token, secret)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := auth.WithPrincipal(r.Context(), auth.Principal{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
