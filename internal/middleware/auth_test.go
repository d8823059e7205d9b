package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/pkg/jwt"
)

// ============================================================================
// Mocks
// ============================================================================

type mockTokenVerifier struct {
	identity model.Identity
	err      error
	revoked  bool
}

func (m *mockTokenVerifier) Verify(token string) (model.Identity, error) {
	return m.identity, m.err
}

func (m *mockTokenVerifier) IsRevoked(token string) bool {
	return m.revoked
}

type mockUserResolver struct {
	user *model.User
	err  error
}

func (m *mockUserResolver) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return m.user, m.err
}

// captureHandler captures the request context for inspection
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func newTestRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// ============================================================================
// Tests
// ============================================================================

func TestAuth_Success(t *testing.T) {
	user := &model.User{ID: "user:abc", Name: "Peter", Email: "peter@example.com"}
	tokens := &mockTokenVerifier{identity: model.RegisteredIdentity("user:abc")}
	users := &mockUserResolver{user: user}
	next := &captureHandler{}

	handler := Auth(tokens, users)(next)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newTestRequest("Bearer some-token"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !next.called {
		t.Fatal("expected next handler to be called")
	}
	if got := GetIdentity(next.ctx); got.UserID != "user:abc" || got.Guest {
		t.Errorf("unexpected identity %+v", got)
	}
	if got := GetUser(next.ctx); got == nil || got.ID != "user:abc" {
		t.Errorf("unexpected user %+v", got)
	}
	if got := GetToken(next.ctx); got != "some-token" {
		t.Errorf("expected raw token in context, got %q", got)
	}
}

func TestAuth_GuestSkipsUserLookup(t *testing.T) {
	tokens := &mockTokenVerifier{identity: model.GuestIdentity()}
	users := &mockUserResolver{err: errors.New("lookup must not happen")}
	next := &captureHandler{}

	handler := Auth(tokens, users)(next)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newTestRequest("Bearer guest-token"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	user := GetUser(next.ctx)
	if user == nil || user.Name != model.GuestName {
		t.Errorf("expected synthetic guest user, got %+v", user)
	}
}

func TestAuth_Rejections(t *testing.T) {
	user := &model.User{ID: "user:abc"}

	tests := []struct {
		name   string
		header string
		tokens *mockTokenVerifier
		users  *mockUserResolver
	}{
		{
			name:   "missing header",
			header: "",
			tokens: &mockTokenVerifier{identity: model.RegisteredIdentity("user:abc")},
			users:  &mockUserResolver{user: user},
		},
		{
			name:   "malformed header",
			header: "Token abc",
			tokens: &mockTokenVerifier{identity: model.RegisteredIdentity("user:abc")},
			users:  &mockUserResolver{user: user},
		},
		{
			name:   "revoked token",
			header: "Bearer revoked",
			tokens: &mockTokenVerifier{identity: model.RegisteredIdentity("user:abc"), revoked: true},
			users:  &mockUserResolver{user: user},
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			tokens: &mockTokenVerifier{err: jwt.ErrTokenExpired},
			users:  &mockUserResolver{user: user},
		},
		{
			name:   "bad signature",
			header: "Bearer forged",
			tokens: &mockTokenVerifier{err: jwt.ErrInvalidSignature},
			users:  &mockUserResolver{user: user},
		},
		{
			name:   "unknown user",
			header: "Bearer orphaned",
			tokens: &mockTokenVerifier{identity: model.RegisteredIdentity("user:gone")},
			users:  &mockUserResolver{user: nil},
		},
		{
			name:   "user lookup error",
			header: "Bearer some-token",
			tokens: &mockTokenVerifier{identity: model.RegisteredIdentity("user:abc")},
			users:  &mockUserResolver{err: errors.New("store down")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &captureHandler{}
			handler := Auth(tt.tokens, tt.users)(next)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newTestRequest(tt.header))

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if next.called {
				t.Error("next handler should not be called")
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("expected problem+json response, got %s", ct)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"", "", false},
		{"abc", "", false},
		{"Basic abc", "", false},
	}

	for _, tt := range tests {
		token, ok := BearerToken(newTestRequest(tt.header))
		if token != tt.token || ok != tt.ok {
			t.Errorf("BearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, token, ok, tt.token, tt.ok)
		}
	}
}
