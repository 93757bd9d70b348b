package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/openauto-assist/internal/ai"
	"github.com/Vovarama1992/openauto-assist/internal/assistant"
	"github.com/Vovarama1992/openauto-assist/internal/conversation"
)

type Handler struct {
	svc        assistant.Service
	configured func() bool
}

// NewHandler — configured reports whether provider credentials exist.
func NewHandler(svc assistant.Service, configured func() bool) *Handler {
	if configured == nil {
		configured = func() bool { return true }
	}
	return &Handler{svc: svc, configured: configured}
}

type incoming struct {
	Role    conversation.Role `json:"role"`
	Content string            `json:"content"`
}

type chatRequest struct {
	Messages []incoming        `json:"messages"`
	Vehicle  assistant.Vehicle `json:"vehicle"`
}

// HandleChat — stateless round trip over the history the UI sends.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	history, reqErr := req.history()
	if reqErr != nil {
		writeError(w, http.StatusBadRequest, reqErr.message())
		return
	}

	res, err := h.svc.Complete(r.Context(), history, req.Vehicle)
	if err != nil {
		log.Printf("[chat] %v", err)
		if errors.Is(err, ai.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError, msgNotConfigured)
			return
		}
		writeError(w, http.StatusInternalServerError, msgProcessing)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (req chatRequest) history() ([]ai.Message, *RequestError) {
	if len(req.Messages) == 0 {
		return nil, &RequestError{Wrapped: ErrEmptyHistory}
	}
	out := make([]ai.Message, 0, len(req.Messages))
	for i, m := range req.Messages {
		if !m.Role.Valid() {
			return nil, &RequestError{Field: fmt.Sprintf("messages[%d].role", i), Wrapped: ErrInvalidRole}
		}
		out = append(out, ai.Message{Role: string(m.Role), Content: m.Content})
	}
	return out, nil
}

func (h *Handler) CreateThread(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"threadId": h.svc.NewThread()})
}

type threadView struct {
	ThreadID string                 `json:"threadId"`
	Pending  bool                   `json:"pending"`
	Messages []conversation.Message `json:"messages"`
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "threadID")
	writeJSON(w, http.StatusOK, threadView{
		ThreadID: id,
		Pending:  h.svc.InFlight(id),
		Messages: h.svc.History(id),
	})
}

type submitRequest struct {
	Content string            `json:"content"`
	Vehicle assistant.Vehicle `json:"vehicle"`
}

// SubmitMessage appends the user turn and answers 202 right away; with
// ?wait=true it holds the response until the assistant reply lands.
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	id := chi.URLParam(r, "threadID")
	p, err := h.svc.Submit(r.Context(), id, req.Content, req.Vehicle)
	switch {
	case errors.Is(err, assistant.ErrThreadBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Printf("[chat] submit thread=%s: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgProcessing)
		return
	case p == nil:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		if reply, ok := p.Wait(r.Context()); ok {
			writeJSON(w, http.StatusOK, map[string]conversation.Message{"message": p.User, "reply": reply})
			return
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]conversation.Message{"message": p.User})
}
