// Package middleware provides HTTP middleware for the GatherHub API.
//
// The middleware package contains reusable middleware components for
// authentication and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: token validation, revocation check and user extraction
//   - RequestID: unique request identifier propagation
//   - Logger: structured request logging
//   - Recovery: panic recovery with a JSON error response
//   - CORS: cross-origin request handling
//
// # Authentication
//
// The auth middleware validates bearer tokens, rejects revoked ones and
// resolves the requesting user:
//
//	protected := middleware.Chain(handler, middleware.Auth(tokens, users))
//
// After authentication, handlers can access the request identity:
//
//	identity := middleware.GetIdentity(r.Context())
//	user := middleware.GetUser(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetIdentity(ctx): Returns the authenticated identity
//   - GetUser(ctx): Returns the resolved user record
//   - GetToken(ctx): Returns the raw bearer token
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
