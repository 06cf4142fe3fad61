package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
)

// Handler exposes dashboard analytics endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)
		r.Use(guard.Require(auth.PermViewAnalytics))

		r.Get("/api/v1/analytics/summary", h.summary)
		r.Get("/api/v1/analytics/export", h.export)
	})
}

func windowParam(r *http.Request) Window {
	w := Window(r.URL.Query().Get("window"))
	if w == "" {
		w = WindowMonth
	}
	return w
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), windowParam(r))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownWindow) {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, summary)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	data, name, err := h.service.ExportXLSX(r.Context(), windowParam(r))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownWindow) {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
