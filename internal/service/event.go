package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gatherhub/api/internal/model"
)

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Event, error)
	Delete(ctx context.Context, id string) error
	AddAttendee(ctx context.Context, eventID, userID string) (bool, *model.Event, error)
	RemoveAttendee(ctx context.Context, eventID, userID string) (*model.Event, error)
}

// Uploader sends image bytes to the hosting collaborator and returns a
// public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// Notifier receives attendance and creation signals for broadcast to
// connected listeners. Implementations must not block.
type Notifier interface {
	EventCreated(event *model.Event)
	EventUpdated(eventID string)
}

// EventService handles event CRUD and attendee registration.
type EventService struct {
	eventRepo EventRepository
	userRepo  UserRepository
	uploader  Uploader
	notifier  Notifier
}

// EventServiceConfig holds configuration for the event service.
type EventServiceConfig struct {
	EventRepo EventRepository
	UserRepo  UserRepository
	Uploader  Uploader
	Notifier  Notifier
}

// NewEventService creates a new event service.
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo: cfg.EventRepo,
		userRepo:  cfg.UserRepo,
		uploader:  cfg.Uploader,
		notifier:  cfg.Notifier,
	}
}

// CreateEventRequest represents an event creation request as it arrives off
// the wire. Image is the raw uploaded file, empty when no image was sent.
type CreateEventRequest struct {
	Title       string
	Description string
	Date        string
	Location    string
	Category    string
	Image       []byte
	ImageName   string
}

// Create validates and stores a new event. The image, when present, is
// uploaded before anything is persisted so a hosting failure leaves no
// half-created event behind. The creator is recorded only for registered
// identities with a well-formed user reference.
func (s *EventService) Create(ctx context.Context, identity model.Identity, req CreateEventRequest) (*model.Event, error) {
	if req.Title == "" || req.Description == "" || req.Date == "" || req.Location == "" || req.Category == "" {
		return nil, ErrMissingFields
	}

	date, err := model.ParseEventDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	category := model.Category(req.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	var imageURL string
	if len(req.Image) > 0 {
		imageURL, err = s.uploader.Upload(ctx, req.Image, req.ImageName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Category:    category,
		ImageURL:    imageURL,
		Creator:     creatorRef(identity),
		Attendees:   []string{},
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.EventCreated(event)
	}

	return event, nil
}

// List returns event summaries matching the filter.
func (s *EventService) List(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error) {
	return s.eventRepo.List(ctx, filter)
}

// GetByID returns a single event with its attendees expanded to display
// records. Attendee ids that no longer resolve to a user are dropped.
func (s *EventService) GetByID(ctx context.Context, id string) (*model.EventDetail, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	attendees := []model.Attendee{}
	if len(event.Attendees) > 0 {
		users, err := s.userRepo.GetByIDs(ctx, event.Attendees)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			attendees = append(attendees, model.Attendee{
				ID:    u.ID,
				Name:  u.Name,
				Email: u.Email,
			})
		}
	}

	return &model.EventDetail{Event: *event, Attendees: attendees}, nil
}

// Update applies a partial update to an event's title, date and location.
// Absent and empty fields leave the stored value unchanged.
func (s *EventService) Update(ctx context.Context, id string, update model.EventUpdate) (*model.Event, error) {
	updates := make(map[string]interface{})
	if update.Title != nil && *update.Title != "" {
		updates["title"] = *update.Title
	}
	if update.Date != nil && !update.Date.IsZero() {
		updates["date"] = *update.Date
	}
	if update.Location != nil && *update.Location != "" {
		updates["location"] = *update.Location
	}

	if len(updates) == 0 {
		event, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrEventNotFound
		}
		return event, nil
	}

	event, err := s.eventRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	return s.eventRepo.Delete(ctx, id)
}

// Register adds the identity to the event's attendee set. The set never
// holds duplicates; a second registration fails with ErrAlreadyRegistered.
// Guests have no user record and cannot register.
func (s *EventService) Register(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
	if identity.Guest || identity.UserID == "" {
		return nil, ErrGuestOnly
	}

	added, event, err := s.eventRepo.AddAttendee(ctx, eventID, identity.UserID)
	if err != nil {
		return nil, err
	}
	if !added {
		existing, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrEventNotFound
		}
		return nil, ErrAlreadyRegistered
	}

	if s.notifier != nil {
		s.notifier.EventUpdated(eventID)
	}

	return event, nil
}

// Unregister removes the identity from the event's attendee set. Removing
// a non-attendee is a no-op that still succeeds.
func (s *EventService) Unregister(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
	if identity.Guest || identity.UserID == "" {
		return nil, ErrGuestOnly
	}

	event, err := s.eventRepo.RemoveAttendee(ctx, eventID, identity.UserID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if s.notifier != nil {
		s.notifier.EventUpdated(eventID)
	}

	return event, nil
}

// creatorRef returns the identity's user reference, or nil when the
// identity is a guest or the reference is not a well-formed record id.
func creatorRef(identity model.Identity) *string {
	if identity.Guest {
		return nil
	}
	id := identity.UserID
	if !strings.HasPrefix(id, "user:") || len(id) == len("user:") {
		return nil
	}
	return &id
}
