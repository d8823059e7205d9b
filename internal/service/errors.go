package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Token Errors =====
var (
	ErrNoToken      = errors.New("no token provided")
	ErrTokenRevoked = errors.New("token has been revoked")
	ErrGuestOnly    = errors.New("operation requires a registered account")
)

// ===== Event Errors =====
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrMissingFields     = errors.New("all fields are required")
	ErrInvalidCategory   = errors.New("invalid event category")
	ErrInvalidDate       = errors.New("invalid event date")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrUploadFailed      = errors.New("image upload failed")
)
