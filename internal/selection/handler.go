package selection

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	reg *Registry
}

func NewHandler(reg *Registry) *Handler {
	return &Handler{reg: reg}
}

type selectionEvent struct {
	Text      string `json:"text"`
	Collapsed bool   `json:"collapsed"`
	Anchor    Point  `json:"anchor"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reg.Do(chi.URLParam(r, "session"), nil))
}

// Change receives browser selection-change signals.
func (h *Handler) Change(w http.ResponseWriter, r *http.Request) {
	var ev selectionEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	st := h.reg.Do(chi.URLParam(r, "session"), func(b *Bridge) {
		b.OnSelectionChange(ev.Text, ev.Collapsed, ev.Anchor)
	})
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reg.Do(chi.URLParam(r, "session"), (*Bridge).Clear))
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	applied := false
	st := h.reg.Do(chi.URLParam(r, "session"), func(b *Bridge) {
		_, applied = b.Apply()
	})
	if !applied {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no selection captured"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var q struct {
		Text    string `json:"text"`
		Focused *bool  `json:"focused"`
	}
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	st := h.reg.Do(chi.URLParam(r, "session"), func(b *Bridge) {
		b.SetQuery(q.Text)
		if q.Focused != nil && !*q.Focused {
			b.Blur()
		}
	})
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
