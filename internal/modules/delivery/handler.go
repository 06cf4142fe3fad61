package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
)

// Handler exposes delivery schedule HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)
		r.Use(guard.Require(auth.PermManageDeliveries))

		r.Route("/api/v1/deliveries", func(r chi.Router) {
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Get("/{id}", h.get)
			r.Patch("/{id}/status", h.updateStatus)
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := h.service.Schedule(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, d)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.List(r.Context(),
		r.URL.Query().Get("status"), r.URL.Query().Get("date"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"deliveries": schedules})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, d)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrScheduleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
