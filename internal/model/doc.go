// Package model defines the domain types for the Gatherhub API.
//
// The model package contains the core entities (User, Event), the Identity
// variant used to represent the actor behind a request, and the error
// response types shared by all handlers.
//
// # Error Responses
//
// API errors use RFC 9457 Problem Details. Constructors for common cases are
// provided (NewNotFoundError, NewValidationError, etc.) and handlers write
// them with ProblemDetails.WriteJSON or handler.WriteError.
package model
