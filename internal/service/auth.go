package service

import (
	"context"
	"strings"

	"github.com/gatherhub/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (10-14 recommended for production)
const bcryptCost = 12

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.User, error)
}

// AuthService handles account registration, login and logout.
type AuthService struct {
	userRepo     UserRepository
	tokenService *TokenService
}

// AuthServiceConfig holds configuration for the auth service.
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult represents a successful authentication: the user plus a
// freshly issued token.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new user account with email/password and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:  name,
		Email: email,
		Hash:  hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenService.Issue(model.RegisteredIdentity(user.ID))
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates a user with email/password. Unknown emails and wrong
// passwords return the same error so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(req.Password, user.Hash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(model.RegisteredIdentity(user.ID))
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// GuestLogin issues a token for the shared anonymous guest. No account is
// created; the returned user is synthetic.
func (s *AuthService) GuestLogin() (*AuthResult, error) {
	token, err := s.tokenService.Issue(model.GuestIdentity())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: model.GuestUser(), Token: token}, nil
}

// Logout revokes the presented token. The token need not be valid; revoking
// an expired or malformed token succeeds and changes nothing.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return ErrNoToken
	}
	s.tokenService.Revoke(token)
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
