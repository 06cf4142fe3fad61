package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	// Public browse: customers see the active catalog without logging in.
	router.Get("/api/v1/services", h.list)
	router.Get("/api/v1/services/{id}", h.get)

	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)
		r.Use(guard.Require(auth.PermManageJobs))
		r.Post("/api/v1/services", h.create)
		r.Put("/api/v1/services/{id}", h.update)
		r.Delete("/api/v1/services/{id}", h.deactivate)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req SaveServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := strings.EqualFold(r.URL.Query().Get("active"), "true")
	services, stale, err := h.service.List(r.Context(), r.URL.Query().Get("category"), activeOnly)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"services": services,
		"stale":    stale,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req SaveServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "service deactivated"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
