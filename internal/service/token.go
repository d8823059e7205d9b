package service

import (
	"time"

	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/pkg/jwt"
)

// TokenService issues and verifies access tokens and tracks revocations.
// Tokens are self-contained; logout adds them to an in-process revocation
// list checked on every authenticated request.
type TokenService struct {
	jwtService *jwt.Service
	revoked    *RevocationList
}

// TokenServiceConfig holds configuration for the token service.
type TokenServiceConfig struct {
	JWTService *jwt.Service
	Revoked    *RevocationList
}

// NewTokenService creates a new token service.
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{
		jwtService: cfg.JWTService,
		revoked:    cfg.Revoked,
	}
}

// Issue signs a token for the given identity. Guest tokens carry a guest
// marker instead of a user id.
func (s *TokenService) Issue(identity model.Identity) (string, error) {
	claims := jwt.Claims{
		Subject: identity.UserID,
		Guest:   identity.Guest,
	}
	if identity.Guest {
		claims.Subject = "guest"
	}
	return s.jwtService.Sign(claims)
}

// Verify checks the token signature and expiry and returns the identity it
// carries. Revocation is a separate check; see IsRevoked.
func (s *TokenService) Verify(token string) (model.Identity, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return model.Identity{}, err
	}
	if claims.Guest {
		return model.GuestIdentity(), nil
	}
	return model.RegisteredIdentity(claims.Subject), nil
}

// Revoke invalidates a token for the remainder of its lifetime. Revoking
// an already-revoked or malformed token is harmless.
func (s *TokenService) Revoke(token string) {
	expiresAt := time.Now().Add(s.jwtService.GetExpiration())
	if claims, err := s.jwtService.Validate(token); err == nil {
		expiresAt = claims.ExpiresAt
	}
	s.revoked.Add(token, expiresAt)
}

// IsRevoked reports whether the token was invalidated by a logout.
func (s *TokenService) IsRevoked(token string) bool {
	return s.revoked.Contains(token)
}
