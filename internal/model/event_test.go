package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	t.Parallel()
	for _, c := range Categories() {
		assert.True(t, c.Valid(), "category %q should be valid", c)
	}

	invalid := []Category{"", "tech", "Gaming", "TECH", "Music "}
	for _, c := range invalid {
		assert.False(t, c.Valid(), "category %q should be invalid", c)
	}
}

func TestParseEventDate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "bare date",
			input: "2025-01-01",
			want:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: "2025-06-15T18:30:00Z",
			want:  time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestEventDetail_AttendeesOverrideEmbedded(t *testing.T) {
	t.Parallel()
	detail := EventDetail{
		Event: Event{
			ID:        "event:demo",
			Title:     "Demo",
			Attendees: []string{"user:a"},
		},
		Attendees: []Attendee{{ID: "user:a", Name: "Ada", Email: "ada@example.com"}},
	}

	data, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	attendees, ok := decoded["attendees"].([]interface{})
	require.True(t, ok)
	require.Len(t, attendees, 1)

	first, ok := attendees[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ada", first["name"])
	assert.Equal(t, "ada@example.com", first["email"])
}

func TestGuestUser_NeverPersistedShape(t *testing.T) {
	t.Parallel()
	guest := GuestUser()
	assert.Equal(t, GuestName, guest.Name)
	assert.Equal(t, GuestEmail, guest.Email)
	assert.Empty(t, guest.Hash)
}

func TestIdentityConstructors(t *testing.T) {
	t.Parallel()
	reg := RegisteredIdentity("user:abc")
	assert.False(t, reg.Guest)
	assert.Equal(t, "user:abc", reg.UserID)

	guest := GuestIdentity()
	assert.True(t, guest.Guest)
	assert.Empty(t, guest.UserID)
}
