// Package helpers provides common utilities for acceptance testing.
//
// It wires the full service stack against a test database, with inert
// collaborators standing in for the image host and the notification hub.
package helpers

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/repository"
	"github.com/gatherhub/api/internal/service"
	"github.com/gatherhub/api/internal/testing/testdb"
	"github.com/gatherhub/api/pkg/jwt"
)

// StaticUploader implements service.Uploader without talking to the image
// host. Every upload succeeds and returns a deterministic URL.
type StaticUploader struct {
	mu      sync.Mutex
	uploads []string
}

// Upload records the filename and returns a synthetic URL.
func (u *StaticUploader) Upload(_ context.Context, _ []byte, filename string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, filename)
	return fmt.Sprintf("https://images.test.local/%d-%s", len(u.uploads), filename), nil
}

// Uploads returns the filenames uploaded so far.
func (u *StaticUploader) Uploads() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.uploads))
	copy(out, u.uploads)
	return out
}

// RecordingNotifier implements service.Notifier and records every signal so
// tests can assert on broadcast behavior.
type RecordingNotifier struct {
	mu      sync.Mutex
	created []string
	updated []string
}

// EventCreated records a creation signal.
func (n *RecordingNotifier) EventCreated(event *model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, event.ID)
}

// EventUpdated records an attendance-change signal.
func (n *RecordingNotifier) EventUpdated(eventID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, eventID)
}

// Created returns the ids of events announced as created.
func (n *RecordingNotifier) Created() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.created))
	copy(out, n.created)
	return out
}

// Updated returns the ids of events announced as updated.
func (n *RecordingNotifier) Updated() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.updated))
	copy(out, n.updated)
	return out
}

// Stack is the full service layer wired against a test database.
type Stack struct {
	Auth     *service.AuthService
	Events   *service.EventService
	Tokens   *service.TokenService
	Uploader *StaticUploader
	Notifier *RecordingNotifier
}

// NewStack builds the service stack the way the server does, substituting
// the test database and inert collaborators. Cleanup is registered on t.
func NewStack(t *testing.T, tdb *testdb.TestDB) *Stack {
	t.Helper()

	jwtService, err := jwt.NewService(jwt.Config{
		Secret: "acceptance-test-secret",
		Issuer: "gatherhub-test",
	})
	if err != nil {
		t.Fatalf("helpers: creating jwt service: %v", err)
	}

	revoked := service.NewRevocationList(service.RevocationConfig{})
	t.Cleanup(revoked.Stop)

	tokens := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		Revoked:    revoked,
	})

	userRepo := repository.NewUserRepository(tdb.DB)
	eventRepo := repository.NewEventRepository(tdb.DB)

	uploader := &StaticUploader{}
	notifier := &RecordingNotifier{}

	return &Stack{
		Auth: service.NewAuthService(service.AuthServiceConfig{
			UserRepo:     userRepo,
			TokenService: tokens,
		}),
		Events: service.NewEventService(service.EventServiceConfig{
			EventRepo: eventRepo,
			UserRepo:  userRepo,
			Uploader:  uploader,
			Notifier:  notifier,
		}),
		Tokens:   tokens,
		Uploader: uploader,
		Notifier: notifier,
	}
}
