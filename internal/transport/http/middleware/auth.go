package middleware

import (
	"context"
	"net/http"
	"strings"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/identity"
	"perftrack/internal/transport/http/api"
)

type userKey struct{}

// UserLoader resolves the token subject to a current user record so
// role and active status are re-checked on every request.
type UserLoader interface {
	UserByID(ctx context.Context, id int64) (identity.User, error)
}

// Authenticate validates the bearer token and attaches the user to the
// request context. Requests without a valid token pass through
// unauthenticated; RequireRole decides whether that is acceptable.
func Authenticate(secret string, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := identity.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.UserByID(r.Context(), claims.UserID)
			if err != nil || !user.IsActive {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (identity.User, bool) {
	user, ok := ctx.Value(userKey{}).(identity.User)
	return user, ok
}

// Caller returns the access context for the authenticated user.
func Caller(ctx context.Context) (access.AuthContext, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return access.AuthContext{}, false
	}
	return access.AuthContext{UserID: user.ID, Role: user.Role}, true
}

// RequireRole rejects unauthenticated requests with 401 and
// authenticated callers outside the allowed roles with 403. With no
// roles listed, any authenticated user is allowed.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Message(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if len(allowed) > 0 {
				if _, ok := allowed[user.Role]; !ok {
					api.Message(w, http.StatusForbidden, "Access denied")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
