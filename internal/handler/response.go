package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gatherhub/api/internal/model"
)

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	WriteJSON(w, err.Status, err)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// DecodeJSONLenient decodes a JSON request body, ignoring unknown fields.
// Used on routes where clients commonly send back a whole object of which
// only some fields are writable.
func DecodeJSONLenient(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
