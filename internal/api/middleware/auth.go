package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Lazycharm/Careerpilot-sub001/internal/auth"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/user"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// UserEmailKey is the context key for user email
	UserEmailKey ContextKey = "email"
	// UserRoleKey is the context key for user role
	UserRoleKey ContextKey = "role"
)

// AuthMiddleware returns a middleware that validates JWT tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)

			AddLogField(w, "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly returns a middleware that rejects non-admin users. It must run
// after AuthMiddleware.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(UserRoleKey).(string)
			if !ok || role != user.RoleAdmin {
				utils.WriteError(w, errors.Forbidden("Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie("accessToken")
	if err == nil {
		return cookie.Value
	}
	return ""
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	return userID, ok
}

// GetUserRole extracts the user role from the request context
func GetUserRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(UserRoleKey).(string)
	return role, ok
}
