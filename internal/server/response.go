package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanShishkin/filecommander/internal/filesystem"
)

// Response is the envelope of every JSON reply
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// sendJSON sends a JSON response
func sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func sendSuccess(w http.ResponseWriter, message string, data any) {
	sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, Response{
		Success: false,
		Message: message,
	})
}

// statusFor maps filesystem errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, filesystem.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, filesystem.ErrNotADirectory), errors.Is(err, filesystem.ErrNotAFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
