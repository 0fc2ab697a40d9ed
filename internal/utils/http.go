package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/models"
)

// WriteJSON serializes data and writes it with statusCode and an
// "application/json" content type.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns the wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a [models.ErrorResponse] with the given messages.
func WriteError(w http.ResponseWriter, statusCode int, messages ...string) {
	if len(messages) == 0 {
		messages = []string{http.StatusText(statusCode)}
	}
	_, _ = WriteJSON(w, models.ErrorResponse{Errors: messages}, statusCode)
}
