package handler

import (
	"context"
	"net/http"

	"github.com/gatherhub/api/internal/middleware"
	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/service"
)

// AuthProvider is the slice of the auth service the handler consumes
type AuthProvider interface {
	Register(ctx context.Context, req service.RegisterRequest) (*service.AuthResult, error)
	Login(ctx context.Context, req service.LoginRequest) (*service.AuthResult, error)
	GuestLogin() (*service.AuthResult, error)
	Logout(token string) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthProvider
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthProvider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest represents the register endpoint request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents an authenticated user in API responses
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		ID:    result.User.ID,
		Name:  result.User.Name,
		Email: result.User.Email,
		Token: result.Token,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

// Guest handles POST /auth/guest
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	result, err := h.authService.GuestLogin()
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

// Logout handles POST /auth/logout.
// The route is not behind the auth middleware: a missing token is a client
// error (400), and expired or malformed tokens are still accepted so a
// client can always log out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		token = ""
	}

	if err := h.authService.Logout(token); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
