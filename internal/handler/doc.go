// Package handler provides HTTP request handlers for the GatherHub API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the dependencies needed to serve
// requests for a specific feature area (authentication, events).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts its service dependency
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteJSON: JSON response with a status code
//   - WriteError: RFC 9457 Problem Details error response
//
// # Authentication
//
// Protected handlers sit behind the auth middleware, which resolves the
// bearer token and makes the caller available via middleware.GetIdentity(ctx)
// and middleware.GetUser(ctx).
//
// # Example Usage
//
//	handler := NewEventHandler(eventService)
//	mux.HandleFunc("GET /events", handler.List)
//	mux.Handle("POST /events", authMiddleware(http.HandlerFunc(handler.Create)))
package handler
