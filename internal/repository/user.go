package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. The caller is responsible for hashing the
// password; Hash must already be set.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			name: $name,
			email: $email,
			hash: $hash,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"name":  user.Name,
		"email": user.Email,
		"hash":  user.Hash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return errors.New("no result returned")
	}

	created, err := parseUserRecord(records[0])
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when no record exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no record exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByIDs retrieves the users whose ids appear in ids. Missing ids are
// silently skipped; the result order is store-native.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	query := `SELECT * FROM user WHERE id INSIDE array::map($ids, |$id| type::record($id))`
	vars := map[string]interface{}{"ids": ids}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, _ := extractQueryResults(result)
	users := make([]*model.User, 0, len(records))
	for _, rec := range records {
		user, err := parseUserRecord(rec)
		if err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// parseUserRecord maps a SurrealDB result row to a model.User.
func parseUserRecord(result interface{}) (*model.User, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	// Unwrap the response wrapper and array forms
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

	return &model.User{
		ID:        convertSurrealID(data["id"]),
		Name:      getString(data, "name"),
		Email:     getString(data, "email"),
		Hash:      getString(data, "hash"),
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}, nil
}
