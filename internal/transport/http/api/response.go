package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

// Message writes the {"message": ...} shape used for errors and
// status-only responses.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ValidationErrors writes the {"errors": {field: [msg,...]}} shape for
// field-level validation failures.
func ValidationErrors(w http.ResponseWriter, errs map[string][]string) {
	JSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}
