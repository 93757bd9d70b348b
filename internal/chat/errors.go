package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyHistory = errors.New("conversation history is required")
	ErrInvalidRole  = errors.New("invalid message role")
)

// Client-facing texts.
const (
	msgEmptyHistory  = "Conversation history is required."
	msgInvalidJSON   = "Invalid JSON body."
	msgNotConfigured = "OpenAI API key is not configured."
	msgProcessing    = "Failed to process chat request."
)

// RequestError — the caller's request shape was rejected.
type RequestError struct {
	Field   string
	Wrapped error
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%s: %s", e.Wrapped, e.Field)
}

func (e *RequestError) Unwrap() error { return e.Wrapped }

func (e *RequestError) message() string {
	if errors.Is(e, ErrEmptyHistory) {
		return msgEmptyHistory
	}
	return e.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
