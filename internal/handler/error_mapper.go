package handler

import (
	"errors"

	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication failures → 400 =====
	// Bad credentials and duplicate registrations are client errors, not
	// authorization failures; 401 is reserved for token problems.
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewBadRequestError(err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewBadRequestError(err.Error())
	case errors.Is(err, service.ErrNoToken):
		return model.NewBadRequestError(err.Error())

	// ===== Token/identity problems → 401 =====
	case errors.Is(err, service.ErrTokenRevoked),
		errors.Is(err, service.ErrGuestOnly):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")

	// ===== Validation → 400 =====
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidCategory):
		return model.NewValidationError([]model.FieldError{{Field: "event", Message: err.Error()}})

	// ===== Registration conflict → 400 =====
	case errors.Is(err, service.ErrAlreadyRegistered):
		return model.NewBadRequestError(err.Error())

	// ===== Collaborator failures → 500 =====
	case errors.Is(err, service.ErrUploadFailed):
		return model.NewUploadError(err.Error())
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		return model.NewInternalError("")

	default:
		return model.NewInternalError("")
	}
}
