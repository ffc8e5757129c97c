package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body for 400 and 404 responses.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
}

// ServerErrorResponse is the body for 500 responses: a generic message plus
// the underlying error text for diagnostics.
// swagger:model ServerErrorResponse
type ServerErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a client error body of the form {"message": ...}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message})
}

// WriteServerError writes a 500 body of the form {"message": ..., "error": ...}.
func WriteServerError(w http.ResponseWriter, message string, err error) {
	body := ServerErrorResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, body)
}
