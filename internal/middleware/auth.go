package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/pkg/jwt"
)

// TokenVerifier defines the interface for token validation
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
	IsRevoked(token string) bool
}

// UserResolver loads the user record behind a registered identity
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

const (
	// IdentityKey is the context key for the authenticated identity
	IdentityKey contextKey = "identity"

	// UserKey is the context key for the resolved user record
	UserKey contextKey = "user"

	// TokenKey is the context key for the raw bearer token
	TokenKey contextKey = "token"
)

// Auth returns a middleware that validates bearer tokens. Revoked tokens
// are rejected even when they still verify cryptographically. Guest tokens
// resolve to the synthetic guest user without a store lookup.
func Auth(tokens TokenVerifier, users UserResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				model.NewUnauthorizedError("missing or malformed authorization header").WriteJSON(w)
				return
			}

			if tokens.IsRevoked(token) {
				model.NewUnauthorizedError("token has been revoked").WriteJSON(w)
				return
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				switch err {
				case jwt.ErrTokenExpired:
					model.NewUnauthorizedError("token expired").WriteJSON(w)
				case jwt.ErrInvalidSignature:
					model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
				default:
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
				}
				return
			}

			var user *model.User
			if identity.Guest {
				user = model.GuestUser()
			} else {
				user, err = users.GetUserByID(r.Context(), identity.UserID)
				if err != nil || user == nil {
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
					return
				}
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			ctx = context.WithValue(ctx, UserKey, user)
			ctx = context.WithValue(ctx, TokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetIdentity extracts the authenticated identity from context
func GetIdentity(ctx context.Context) model.Identity {
	if identity, ok := ctx.Value(IdentityKey).(model.Identity); ok {
		return identity
	}
	return model.Identity{}
}

// GetUser extracts the resolved user record from context
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserKey).(*model.User); ok {
		return user
	}
	return nil
}

// GetToken extracts the raw bearer token from context
func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}
