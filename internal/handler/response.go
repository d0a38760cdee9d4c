package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Fixed client-facing messages.
const (
	errInvalidRequest  = "Invalid request data"
	errMessageNotFound = "Message not found"
	errDatabase        = "Database error"
	msgDeleted         = "Message deleted successfully"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil && !errors.Is(err, http.ErrBodyNotAllowed) {
		log.Printf("[response] ❌ Failed to encode body: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
