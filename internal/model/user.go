package model

import "time"

// User represents a registered account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Guest display values. Guests never have a user record in the store.
const (
	GuestName  = "Guest User"
	GuestEmail = "guest@example.com"
)

// Identity identifies the actor behind a request: either a registered user
// or the anonymous guest. The zero value is not a valid identity.
type Identity struct {
	UserID string
	Guest  bool
}

// RegisteredIdentity returns the identity of a registered user.
func RegisteredIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

// GuestIdentity returns the shared anonymous guest identity.
func GuestIdentity() Identity {
	return Identity{Guest: true}
}

// GuestUser returns the synthetic user record attached to guest requests.
// It is never persisted.
func GuestUser() *User {
	return &User{
		ID:    "guest",
		Name:  GuestName,
		Email: GuestEmail,
	}
}
