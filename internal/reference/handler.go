package reference

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	catalog *Catalog
	drawers Drawers
}

func NewHandler(c *Catalog, d Drawers) *Handler {
	return &Handler{catalog: c, drawers: d}
}

func (h *Handler) ListEntries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": h.catalog.Entries()})
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	v, ok := h.catalog.View(chi.URLParam(r, "viewID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": ErrUnknownView.Error()})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) GetDrawer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.drawers.State(chi.URLParam(r, "session")))
}

func (h *Handler) OpenDrawer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entry string `json:"entry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	st, err := h.drawers.Open(chi.URLParam(r, "session"), req.Entry)
	h.respond(w, st, err)
}

func (h *Handler) DrillDrawer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	st, err := h.drawers.Drill(chi.URLParam(r, "session"), req.Link)
	h.respond(w, st, err)
}

func (h *Handler) BackDrawer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.drawers.Back(chi.URLParam(r, "session")))
}

func (h *Handler) CloseDrawer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.drawers.Close(chi.URLParam(r, "session")))
}

func (h *Handler) respond(w http.ResponseWriter, st State, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, st)
	case errors.Is(err, ErrUnknownEntry), errors.Is(err, ErrUnknownView):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
