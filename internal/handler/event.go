package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gatherhub/api/internal/middleware"
	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/service"
)

// maxUploadSize bounds event creation request bodies, image included.
const maxUploadSize = 10 << 20 // 10 MiB

// EventProvider is the slice of the event service the handler consumes
type EventProvider interface {
	Create(ctx context.Context, identity model.Identity, req service.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error)
	GetByID(ctx context.Context, id string) (*model.EventDetail, error)
	Update(ctx context.Context, id string, update model.EventUpdate) (*model.Event, error)
	Delete(ctx context.Context, id string) error
	Register(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error)
	Unregister(ctx context.Context, identity model.Identity, eventID string) (*model.Event, error)
}

// EventHandler handles event endpoints
type EventHandler struct {
	eventService EventProvider
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventProvider) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// EventResponse wraps an updated event with a confirmation message.
type EventResponse struct {
	Message string       `json:"message"`
	Event   *model.Event `json:"event"`
}

// createEventBody is the JSON form of an event creation request, used when
// no image is attached.
type createEventBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

// updateEventBody is the PUT /events/{id} request body. Absent fields (and
// empty strings) leave the stored values unchanged.
type updateEventBody struct {
	Title    *string `json:"title"`
	Date     *string `json:"date"`
	Location *string `json:"location"`
}

// Create handles POST /events. The body is multipart/form-data with an
// optional "image" file part; plain JSON is accepted when there is no image.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, problem := decodeCreateRequest(r)
	if problem != nil {
		WriteError(w, problem)
		return
	}

	identity := middleware.GetIdentity(r.Context())

	event, err := h.eventService.Create(r.Context(), identity, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusCreated, event)
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.EventFilter{
		Category: q.Get("category"),
		Location: q.Get("location"),
		Sort:     q.Get("sort"),
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	if events == nil {
		events = []*model.EventSummary{}
	}
	WriteJSON(w, http.StatusOK, events)
}

// Get handles GET /events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.eventService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, detail)
}

// Update handles PUT /events/{id}. Like Create, the body may be either a
// multipart form or plain JSON; an attached image is tolerated but not
// applied, since only title, date and location are mutable. Fields beyond
// the mutable ones are ignored so clients can send a whole event back.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, problem := decodeUpdateRequest(r)
	if problem != nil {
		WriteError(w, problem)
		return
	}

	update := model.EventUpdate{
		Title:    body.Title,
		Location: body.Location,
	}
	if body.Date != nil && *body.Date != "" {
		date, err := model.ParseEventDate(*body.Date)
		if err != nil {
			WriteError(w, MapServiceError(service.ErrInvalidDate))
			return
		}
		update.Date = &date
	}

	event, err := h.eventService.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Event deleted"})
}

// Register handles POST /events/{id}/register
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	event, err := h.eventService.Register(r.Context(), identity, r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, EventResponse{
		Message: "Successfully registered for the event",
		Event:   event,
	})
}

// Unregister handles DELETE /events/{id}/unregister
func (h *EventHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	event, err := h.eventService.Unregister(r.Context(), identity, r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, EventResponse{
		Message: "Successfully unregistered from the event",
		Event:   event,
	})
}

// decodeUpdateRequest reads an event update from either a multipart form or
// a JSON body. JSON decoding is lenient about extra fields; a multipart
// image part is left untouched.
func decodeUpdateRequest(r *http.Request) (updateEventBody, *model.ProblemDetails) {
	var body updateEventBody

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		if err := DecodeJSONLenient(r, &body); err != nil {
			return body, model.NewBadRequestError("invalid request body")
		}
		return body, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return body, model.NewBadRequestError("invalid multipart form")
	}

	if v, ok := formField(r, "title"); ok {
		body.Title = &v
	}
	if v, ok := formField(r, "date"); ok {
		body.Date = &v
	}
	if v, ok := formField(r, "location"); ok {
		body.Location = &v
	}

	return body, nil
}

// formField reports whether the parsed multipart form carries the named
// field, distinguishing an absent field from an empty one.
func formField(r *http.Request, name string) (string, bool) {
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// decodeCreateRequest reads an event creation request from either a
// multipart form or a JSON body.
func decodeCreateRequest(r *http.Request) (service.CreateEventRequest, *model.ProblemDetails) {
	var req service.CreateEventRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		var body createEventBody
		if err := DecodeJSON(r, &body); err != nil {
			return req, model.NewBadRequestError("invalid request body")
		}
		return service.CreateEventRequest{
			Title:       body.Title,
			Description: body.Description,
			Date:        body.Date,
			Location:    body.Location,
			Category:    body.Category,
		}, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return req, model.NewBadRequestError("invalid multipart form")
	}

	req = service.CreateEventRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Location:    r.FormValue("location"),
		Category:    r.FormValue("category"),
	}

	file, header, err := r.FormFile("image")
	switch err {
	case nil:
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			return req, model.NewBadRequestError("failed to read image")
		}
		req.Image = data
		req.ImageName = header.Filename
	case http.ErrMissingFile:
		// No image attached.
	default:
		return req, model.NewBadRequestError("invalid image upload")
	}

	return req, nil
}
