// Package fixtures provides test data factories for acceptance testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories insert through the real
// repositories and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t)
//	event := f.CreateEvent(t, fixtures.WithCreator(user))
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plaintext password all fixture users are created
// with, for use in login flows.
const DefaultPassword = "testpass123"

// Factory creates test entities in the database
type Factory struct {
	users  *repository.UserRepository
	events *repository.EventRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		users:  repository.NewUserRepository(db),
		events: repository.NewEventRepository(db),
	}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UserOpts customizes user creation
type UserOpts struct {
	Name     string
	Email    string
	Password string
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Name:     fmt.Sprintf("User %s", randomID()),
		Email:    fmt.Sprintf("user_%s@test.local", randomID()),
		Password: DefaultPassword,
	}
	for _, fn := range opts {
		fn(o)
	}

	// MinCost keeps fixture creation fast; production hashing uses a
	// higher cost in the auth service.
	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: hashing password: %v", err)
	}

	user := &model.User{
		Name:  o.Name,
		Email: o.Email,
		Hash:  string(hash),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := f.users.Create(ctx, user); err != nil {
		t.Fatalf("fixtures: creating user: %v", err)
	}
	return user
}

// WithEmail sets the user's email.
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// WithPassword sets the user's plaintext password.
func WithPassword(password string) func(*UserOpts) {
	return func(o *UserOpts) { o.Password = password }
}

// EventOpts customizes event creation
type EventOpts struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Category    model.Category
	ImageURL    string
	Creator     *model.User
}

// CreateEvent creates an event with optional customizations
func (f *Factory) CreateEvent(t *testing.T, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	o := &EventOpts{
		Title:       fmt.Sprintf("Event %s", randomID()),
		Description: "A gathering for testing purposes",
		Date:        time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second),
		Location:    "Test Hall",
		Category:    model.CategoryTech,
	}
	for _, fn := range opts {
		fn(o)
	}

	event := &model.Event{
		Title:       o.Title,
		Description: o.Description,
		Date:        o.Date,
		Location:    o.Location,
		Category:    o.Category,
		ImageURL:    o.ImageURL,
	}
	if o.Creator != nil {
		id := o.Creator.ID
		event.Creator = &id
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("fixtures: creating event: %v", err)
	}
	return event
}

// WithTitle sets the event title.
func WithTitle(title string) func(*EventOpts) {
	return func(o *EventOpts) { o.Title = title }
}

// WithCategory sets the event category.
func WithCategory(c model.Category) func(*EventOpts) {
	return func(o *EventOpts) { o.Category = c }
}

// WithDate sets the event date.
func WithDate(d time.Time) func(*EventOpts) {
	return func(o *EventOpts) { o.Date = d }
}

// WithLocation sets the event location.
func WithLocation(loc string) func(*EventOpts) {
	return func(o *EventOpts) { o.Location = loc }
}

// WithCreator sets the event creator.
func WithCreator(u *model.User) func(*EventOpts) {
	return func(o *EventOpts) { o.Creator = u }
}
