package model

import (
	"fmt"
	"time"
)

// Category classifies an event. The set is fixed; any other value is
// rejected by the service and the store.
type Category string

const (
	CategoryTech      Category = "Tech"
	CategoryMusic     Category = "Music"
	CategoryEducation Category = "Education"
	CategoryBusiness  Category = "Business"
	CategorySports    Category = "Sports"
)

// Categories returns the fixed category enumeration.
func Categories() []Category {
	return []Category{
		CategoryTech,
		CategoryMusic,
		CategoryEducation,
		CategoryBusiness,
		CategorySports,
	}
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTech, CategoryMusic, CategoryEducation, CategoryBusiness, CategorySports:
		return true
	}
	return false
}

// Event represents a schedulable activity with attendee registration.
// Attendees holds user ids and never contains duplicates.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Category    Category  `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Creator     *string   `json:"creator"`
	Attendees   []string  `json:"attendees"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// EventSummary is the list-view projection of an event.
type EventSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Category  Category  `json:"category"`
	ImageURL  string    `json:"imageUrl"`
	Attendees []string  `json:"attendees"`
}

// Attendee is the expanded attendee view returned by the single-event
// endpoint.
type Attendee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventDetail is an event with attendees expanded to display records.
type EventDetail struct {
	Event
	Attendees []Attendee `json:"attendees"`
}

// EventUpdate describes a partial update to an event. Only title, date and
// location are mutable. A nil field leaves the prior value unchanged; so
// does a present-but-empty string, mirroring the update contract's
// "empty means unchanged" behavior.
type EventUpdate struct {
	Title    *string
	Date     *time.Time
	Location *string
}

// EventFilter narrows and orders event listings.
type EventFilter struct {
	Category string // exact match
	Location string // case-insensitive substring
	Sort     string // "date" or "title", ascending; otherwise store order
}

// EventSortOptions are the accepted values for EventFilter.Sort.
const (
	EventSortDate  = "date"
	EventSortTitle = "title"
)

// eventDateFormats are the accepted wire formats for event dates.
var eventDateFormats = []string{time.RFC3339, "2006-01-02"}

// ParseEventDate parses an event date from its wire representation.
// Both RFC 3339 timestamps and bare dates are accepted.
func ParseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
