package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	isRootKey    ctxKey = "isRoot"
	sessionIDKey ctxKey = "sessionID"
)

// GetUserID returns the authenticated user ID from context.
// Returns 401 error if user is not authenticated.
func GetUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return userID, nil
}

// getSessionID returns the token's session ID from context, or "".
func getSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}

func setIdentity(ctx context.Context, userID, sessionID string, isRoot bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, sessionIDKey, sessionID)
	return context.WithValue(ctx, isRootKey, isRoot)
}

// authMiddleware validates Bearer tokens and stores the identity in context.
// Requests without a valid token continue anonymously; handlers decide via
// GetUserID/RequireUser whether authentication is mandatory.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.VerifyAccessToken(authHeader[7:])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := setIdentity(r.Context(), claims.UserID, claims.TokenID, claims.IsRoot)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns the authenticated user from the store.
// Deactivated accounts are rejected even with a still-valid token.
func (s *Server) RequireUser(ctx context.Context) (*domain.User, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}
	if !user.Active {
		return nil, domainerrors.Forbidden("Account is deactivated")
	}

	return user, nil
}

// RequireAdmin validates the user is authenticated and has the admin role.
func (s *Server) RequireAdmin(ctx context.Context) (*domain.User, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domainerrors.Forbidden("Admin access required")
	}
	return user, nil
}

// RequireCanEdit validates the user is authenticated and may modify content.
func (s *Server) RequireCanEdit(ctx context.Context) (*domain.User, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanEdit() {
		return nil, domainerrors.Forbidden("Edit permission required")
	}
	return user, nil
}
