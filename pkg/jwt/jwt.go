package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid key")
)

// Claims represents the identity claims carried by a token.
type Claims struct {
	// Subject is the user record id, or the guest marker when Guest is set.
	Subject   string
	Guest     bool
	Issuer    string
	JWTID     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire representation handed to golang-jwt.
type tokenClaims struct {
	Guest bool `json:"guest,omitempty"`
	jwtlib.RegisteredClaims
}

// Service handles token signing and validation.
type Service struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// Config holds JWT service configuration.
type Config struct {
	Secret         string
	Issuer         string
	ExpirationDays int
}

// NewService creates a new JWT service. Tokens default to a 30 day lifetime.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrInvalidKey
	}
	if cfg.ExpirationDays <= 0 {
		cfg.ExpirationDays = 30
	}

	return &Service{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: time.Duration(cfg.ExpirationDays) * 24 * time.Hour,
	}, nil
}

// Sign creates a signed HS256 token for the given claims.
func (s *Service) Sign(claims Claims) (string, error) {
	now := time.Now()

	expires := claims.ExpiresAt
	if expires.IsZero() {
		expires = now.Add(s.expiration)
	}

	tc := tokenClaims{
		Guest: claims.Guest,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.Subject,
			IssuedAt:  jwtlib.NewNumericDate(now),
			NotBefore: jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expires),
			ID:        uuid.New().String(),
		},
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, tc).SignedString(s.secret)
}

// Validate validates a token string and returns the claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	var tc tokenClaims

	token, err := jwtlib.ParseWithClaims(tokenString, &tc, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	},
		jwtlib.WithIssuer(s.issuer),
		jwtlib.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		Subject: tc.Subject,
		Guest:   tc.Guest,
		Issuer:  tc.Issuer,
		JWTID:   tc.ID,
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}

	return claims, nil
}

// GetExpiration returns the configured token lifetime.
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}
