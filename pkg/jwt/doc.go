// Package jwt provides JSON Web Token utilities for the Gatherhub API.
//
// The jwt package handles token generation, validation, and claims
// extraction for authentication. Tokens are signed with HMAC-SHA256
// (golang-jwt) and carry the identity subject plus a guest marker.
//
// # Token Generation
//
// Generate tokens for authenticated users:
//
//	service := jwt.NewService(jwt.Config{
//	    Secret:         "secret-key",
//	    ExpirationDays: 30,
//	    Issuer:         "gatherhub-api",
//	})
//
//	token, err := service.Sign(jwt.Claims{Subject: userID})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.Subject
package jwt
