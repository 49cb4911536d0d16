package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// WriteError writes the JSON error envelope used by API routes.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := map[string]any{
		"error":   sanitize(code, 80),
		"message": sanitize(message, 512),
		"status":  status,
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		payload["request_id"] = sanitize(id, 80)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func sanitize(value string, limit int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
