package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event. Attendees always starts empty.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if !event.Category.Valid() {
		return fmt.Errorf("%w: invalid category %q", database.ErrQuery, event.Category)
	}

	vars := map[string]interface{}{
		"title":       event.Title,
		"description": event.Description,
		"date":        event.Date,
		"location":    event.Location,
		"category":    string(event.Category),
		"image_url":   event.ImageURL,
	}

	setClause := `
		title = $title,
		description = $description,
		date = $date,
		location = $location,
		category = $category,
		image_url = $image_url,
		attendees = [],
		created_on = time::now(),
		updated_on = time::now()`

	if event.Creator != nil {
		setClause += ", creator = $creator"
		vars["creator"] = *event.Creator
	}

	result, err := r.db.Query(ctx, "CREATE event SET "+setClause, vars)
	if err != nil {
		return err
	}

	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return errors.New("no result returned")
	}

	created, err := parseEventRecord(records[0])
	if err != nil {
		return err
	}

	event.ID = created.ID
	event.Attendees = created.Attendees
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an event by ID. Returns (nil, nil) when no record exists.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	event, err := parseEventRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// List returns event summaries matching the filter. Category is an exact
// match, location a case-insensitive substring, and sort orders by date or
// title ascending.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error) {
	query := `SELECT id, title, date, location, category, image_url, attendees FROM event`
	vars := map[string]interface{}{}

	var conditions []string
	if filter.Category != "" {
		conditions = append(conditions, "category = $category")
		vars["category"] = filter.Category
	}
	if filter.Location != "" {
		conditions = append(conditions, "string::contains(string::lowercase(location), string::lowercase($location))")
		vars["location"] = filter.Location
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	switch filter.Sort {
	case model.EventSortDate:
		query += " ORDER BY date ASC"
	case model.EventSortTitle:
		query += " ORDER BY title ASC"
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	summaries := make([]*model.EventSummary, 0, len(records))
	for _, rec := range records {
		data, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		attendees := getStringSlice(data, "attendees")
		if attendees == nil {
			attendees = []string{}
		}
		summaries = append(summaries, &model.EventSummary{
			ID:        convertSurrealID(data["id"]),
			Title:     getString(data, "title"),
			Date:      getTime(data, "date"),
			Location:  getString(data, "location"),
			Category:  model.Category(getString(data, "category")),
			ImageURL:  getString(data, "image_url"),
			Attendees: attendees,
		})
	}
	return summaries, nil
}

// Update applies the given field updates and returns the updated event.
// Returns (nil, nil) when the event does not exist.
func (r *EventRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Event, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	vars := map[string]interface{}{"id": id}
	setClause := ""
	for field, value := range updates {
		switch field {
		case "title", "date", "location":
			setClause += field + " = $" + field + ", "
			vars[field] = value
		default:
			return nil, fmt.Errorf("%w: field %q is not updatable", database.ErrQuery, field)
		}
	}

	query := "UPDATE type::record($id) SET " + setClause + "updated_on = time::now() RETURN AFTER"

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventRecord(result)
}

// Delete removes an event record. Deleting a missing record is a no-op;
// existence is checked by the service beforehand.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// AddAttendee atomically adds userID to the event's attendee set and reports
// whether it was newly added. The NOT INSIDE guard and array::union run in a
// single UPDATE, so concurrent registrations cannot produce duplicates.
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, userID string) (bool, *model.Event, error) {
	query := `
		UPDATE type::record($id)
		SET attendees = array::union(attendees ?? [], [$user]), updated_on = time::now()
		WHERE $user NOT INSIDE (attendees ?? [])
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":   eventID,
		"user": userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Already a member, or the event vanished; the caller
			// distinguishes via its prior existence check.
			return false, nil, nil
		}
		return false, nil, err
	}

	event, err := parseEventRecord(result)
	if err != nil {
		return false, nil, err
	}
	return true, event, nil
}

// RemoveAttendee removes userID from the event's attendee set and returns
// the updated event. Removing a non-member leaves the set unchanged.
// Returns (nil, nil) when the event does not exist.
func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID, userID string) (*model.Event, error) {
	query := `
		UPDATE type::record($id)
		SET attendees = array::complement(attendees ?? [], [$user]), updated_on = time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":   eventID,
		"user": userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventRecord(result)
}

// parseEventRecord maps a SurrealDB result row to a model.Event.
func parseEventRecord(result interface{}) (*model.Event, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	attendees := getStringSlice(data, "attendees")
	if attendees == nil {
		attendees = []string{}
	}

	return &model.Event{
		ID:          convertSurrealID(data["id"]),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Date:        getTime(data, "date"),
		Location:    getString(data, "location"),
		Category:    model.Category(getString(data, "category")),
		ImageURL:    getString(data, "image_url"),
		Creator:     getStringPtr(data, "creator"),
		Attendees:   attendees,
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}, nil
}
