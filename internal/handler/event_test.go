package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatherhub/api/internal/middleware"
	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/service"
)

// ============================================================================
// Mock EventProvider
// ============================================================================

type mockEventProvider struct {
	createFunc     func(ctx context.Context, identity model.Identity, req service.CreateEventRequest) (*model.Event, error)
	listFunc       func(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error)
	getFunc        func(ctx context.Context, id string) (*model.EventDetail, error)
	updateFunc     func(ctx context.Context, id string, update model.EventUpdate) (*model.Event, error)
	deleteFunc     func(ctx context.Context, id string) error
	registerFunc   func(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error)
	unregisterFunc func(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error)
}

func (m *mockEventProvider) Create(ctx context.Context, identity model.Identity, req service.CreateEventRequest) (*model.Event, error) {
	return m.createFunc(ctx, identity, req)
}

func (m *mockEventProvider) List(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockEventProvider) GetByID(ctx context.Context, id string) (*model.EventDetail, error) {
	return m.getFunc(ctx, id)
}

func (m *mockEventProvider) Update(ctx context.Context, id string, update model.EventUpdate) (*model.Event, error) {
	return m.updateFunc(ctx, id, update)
}

func (m *mockEventProvider) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockEventProvider) Register(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
	return m.registerFunc(ctx, identity, eventID)
}

func (m *mockEventProvider) Unregister(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
	return m.unregisterFunc(ctx, identity, eventID)
}

// ============================================================================
// Test Helpers
// ============================================================================

func testEvent() *model.Event {
	return &model.Event{
		ID:        "event:1",
		Title:     "Go Meetup",
		Date:      time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		Location:  "Berlin",
		Category:  model.CategoryTech,
		Attendees: []string{},
	}
}

// withIdentity seeds the request context the way the auth middleware does.
func withIdentity(req *http.Request, identity model.Identity) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.IdentityKey, identity)
	return req.WithContext(ctx)
}

// newEventMux routes with path parameters the way the server does.
func newEventMux(h *EventHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events", h.Create)
	mux.HandleFunc("GET /events", h.List)
	mux.HandleFunc("GET /events/{id}", h.Get)
	mux.HandleFunc("PUT /events/{id}", h.Update)
	mux.HandleFunc("DELETE /events/{id}", h.Delete)
	mux.HandleFunc("POST /events/{id}/register", h.Register)
	mux.HandleFunc("DELETE /events/{id}/unregister", h.Unregister)
	return mux
}

// ============================================================================
// Tests
// ============================================================================

func TestEventHandler_Create_Multipart(t *testing.T) {
	var gotReq service.CreateEventRequest
	var gotIdentity model.Identity
	h := NewEventHandler(&mockEventProvider{
		createFunc: func(ctx context.Context, identity model.Identity, req service.CreateEventRequest) (*model.Event, error) {
			gotReq = req
			gotIdentity = identity
			return testEvent(), nil
		},
	})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("title", "Go Meetup")
	form.WriteField("description", "Monthly meetup")
	form.WriteField("date", "2026-10-01")
	form.WriteField("location", "Berlin")
	form.WriteField("category", "Tech")
	part, _ := form.CreateFormFile("image", "poster.png")
	part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/events", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req = withIdentity(req, model.RegisteredIdentity("user:abc"))

	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotReq.Title != "Go Meetup" || gotReq.Category != "Tech" {
		t.Errorf("unexpected request %+v", gotReq)
	}
	if len(gotReq.Image) != 4 || gotReq.ImageName != "poster.png" {
		t.Errorf("expected image bytes to be captured, got %d bytes name %q", len(gotReq.Image), gotReq.ImageName)
	}
	if gotIdentity.UserID != "user:abc" {
		t.Errorf("expected identity to be forwarded, got %+v", gotIdentity)
	}
}

func TestEventHandler_Create_JSONWithoutImage(t *testing.T) {
	var gotReq service.CreateEventRequest
	h := NewEventHandler(&mockEventProvider{
		createFunc: func(ctx context.Context, identity model.Identity, req service.CreateEventRequest) (*model.Event, error) {
			gotReq = req
			return testEvent(), nil
		},
	})

	payload, _ := json.Marshal(map[string]string{
		"title":       "Go Meetup",
		"description": "Monthly meetup",
		"date":        "2026-10-01",
		"location":    "Berlin",
		"category":    "Tech",
	})
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, model.RegisteredIdentity("user:abc"))

	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotReq.Location != "Berlin" || len(gotReq.Image) != 0 {
		t.Errorf("unexpected request %+v", gotReq)
	}
}

func TestEventHandler_Create_ValidationError(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		createFunc: func(ctx context.Context, identity model.Identity, req service.CreateEventRequest) (*model.Event, error) {
			return nil, service.ErrMissingFields
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(`{"title":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestEventHandler_Create_UploadError(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		createFunc: func(ctx context.Context, identity model.Identity, req service.CreateEventRequest) (*model.Event, error) {
			return nil, service.ErrUploadFailed
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(`{"title":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestEventHandler_List(t *testing.T) {
	var gotFilter model.EventFilter
	h := NewEventHandler(&mockEventProvider{
		listFunc: func(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error) {
			gotFilter = filter
			return []*model.EventSummary{{ID: "event:1", Title: "Go Meetup"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/events?category=Tech&location=berlin&sort=date", nil)
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotFilter.Category != "Tech" || gotFilter.Location != "berlin" || gotFilter.Sort != "date" {
		t.Errorf("unexpected filter %+v", gotFilter)
	}

	var events []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("expected a JSON array, got %s", rec.Body.String())
	}
	if len(events) != 1 {
		t.Errorf("expected one event, got %d", len(events))
	}
}

func TestEventHandler_List_EmptyIsArray(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		listFunc: func(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if got := string(bytes.TrimSpace(rec.Body.Bytes())); got != "[]" {
		t.Errorf("expected [], got %s", got)
	}
}

func TestEventHandler_Get_NotFound(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		getFunc: func(ctx context.Context, id string) (*model.EventDetail, error) {
			return nil, service.ErrEventNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/events/event:missing", nil)
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestEventHandler_Get_ExpandedAttendees(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		getFunc: func(ctx context.Context, id string) (*model.EventDetail, error) {
			return &model.EventDetail{
				Event: *testEvent(),
				Attendees: []model.Attendee{
					{ID: "user:abc", Name: "Peter", Email: "peter@example.com"},
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/events/event:1", nil)
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Attendees []map[string]string `json:"attendees"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Attendees) != 1 || body.Attendees[0]["name"] != "Peter" {
		t.Errorf("expected expanded attendees, got %s", rec.Body.String())
	}
}

func TestEventHandler_Update(t *testing.T) {
	var gotUpdate model.EventUpdate
	h := NewEventHandler(&mockEventProvider{
		updateFunc: func(ctx context.Context, id string, update model.EventUpdate) (*model.Event, error) {
			gotUpdate = update
			return testEvent(), nil
		},
	})

	payload := []byte(`{"title":"New Title","date":"2026-11-02"}`)
	req := httptest.NewRequest(http.MethodPut, "/events/event:1", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUpdate.Title == nil || *gotUpdate.Title != "New Title" {
		t.Errorf("unexpected title %v", gotUpdate.Title)
	}
	if gotUpdate.Date == nil || gotUpdate.Date.Day() != 2 {
		t.Errorf("unexpected date %v", gotUpdate.Date)
	}
	if gotUpdate.Location != nil {
		t.Errorf("location should be absent, got %v", *gotUpdate.Location)
	}
}

func TestEventHandler_Update_Multipart(t *testing.T) {
	var gotUpdate model.EventUpdate
	h := NewEventHandler(&mockEventProvider{
		updateFunc: func(ctx context.Context, id string, update model.EventUpdate) (*model.Event, error) {
			gotUpdate = update
			return testEvent(), nil
		},
	})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("title", "After")
	form.WriteField("location", "Hamburg")
	part, _ := form.CreateFormFile("image", "poster.png")
	part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	form.Close()

	req := httptest.NewRequest(http.MethodPut, "/events/event:1", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUpdate.Title == nil || *gotUpdate.Title != "After" {
		t.Errorf("unexpected title %v", gotUpdate.Title)
	}
	if gotUpdate.Location == nil || *gotUpdate.Location != "Hamburg" {
		t.Errorf("unexpected location %v", gotUpdate.Location)
	}
	if gotUpdate.Date != nil {
		t.Errorf("date should be absent, got %v", *gotUpdate.Date)
	}
}

func TestEventHandler_Update_IgnoresImmutableFields(t *testing.T) {
	var gotUpdate model.EventUpdate
	h := NewEventHandler(&mockEventProvider{
		updateFunc: func(ctx context.Context, id string, update model.EventUpdate) (*model.Event, error) {
			gotUpdate = update
			return testEvent(), nil
		},
	})

	// Clients commonly send the whole event back; only the mutable fields
	// apply, the rest must not break the request.
	payload := []byte(`{"title":"After","category":"Music","description":"changed","attendees":["user:x"]}`)
	req := httptest.NewRequest(http.MethodPut, "/events/event:1", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUpdate.Title == nil || *gotUpdate.Title != "After" {
		t.Errorf("unexpected title %v", gotUpdate.Title)
	}
	if gotUpdate.Location != nil || gotUpdate.Date != nil {
		t.Errorf("only title should be set, got %+v", gotUpdate)
	}
}

func TestEventHandler_Update_BadDate(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{})

	req := httptest.NewRequest(http.MethodPut, "/events/event:1", bytes.NewReader([]byte(`{"date":"whenever"}`)))
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestEventHandler_Delete(t *testing.T) {
	var deletedID string
	h := NewEventHandler(&mockEventProvider{
		deleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/events/event:1", nil)
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deletedID != "event:1" {
		t.Errorf("expected event:1 to be deleted, got %q", deletedID)
	}
	if body := decodeBody(t, rec); body["message"] != "Event deleted" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestEventHandler_Register(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		registerFunc: func(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
			event := testEvent()
			event.Attendees = []string{identity.UserID}
			return event, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/events/event:1/register", nil)
	req = withIdentity(req, model.RegisteredIdentity("user:abc"))
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Successfully registered for the event" {
		t.Errorf("unexpected message %v", body["message"])
	}
	if body["event"] == nil {
		t.Error("expected event payload in response")
	}
}

func TestEventHandler_Register_Duplicate(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		registerFunc: func(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
			return nil, service.ErrAlreadyRegistered
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/events/event:1/register", nil)
	req = withIdentity(req, model.RegisteredIdentity("user:abc"))
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestEventHandler_Register_Guest(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		registerFunc: func(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
			return nil, service.ErrGuestOnly
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/events/event:1/register", nil)
	req = withIdentity(req, model.GuestIdentity())
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestEventHandler_Unregister(t *testing.T) {
	h := NewEventHandler(&mockEventProvider{
		unregisterFunc: func(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error) {
			return testEvent(), nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/events/event:1/unregister", nil)
	req = withIdentity(req, model.RegisteredIdentity("user:abc"))
	rec := httptest.NewRecorder()
	newEventMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Successfully unregistered from the event" {
		t.Errorf("unexpected message %v", body["message"])
	}
}
