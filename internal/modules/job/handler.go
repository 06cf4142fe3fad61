package job

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
)

// Handler exposes job HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	// Public tracking lookup, no auth: the tracking code is the credential.
	router.Get("/api/v1/track/{code}", h.track)

	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)

		r.Route("/api/v1/jobs", func(r chi.Router) {
			r.With(guard.Require(auth.PermSubmitJobs)).Post("/", h.submit)
			r.With(guard.Require(auth.PermViewOwnJobs)).Get("/{id}", h.get)
			r.With(guard.Require(auth.PermManageJobs)).Get("/", h.list)
			r.With(guard.Require(auth.PermManageJobs)).Put("/{id}", h.update)
			r.With(guard.Require(auth.PermManageJobs)).Patch("/{id}/status", h.updateStatus)
			r.With(guard.Require(auth.PermDeleteJobs)).Delete("/{id}", h.remove)
		})
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	j, err := h.service.Submit(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
			strings.Contains(msg, "must be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, j)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	j, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, j)
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Track(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	jobs, stale, err := h.service.List(r.Context(),
		r.URL.Query().Get("status"), r.URL.Query().Get("customer_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"stale": stale,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	j, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, j)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	j, queued, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "unknown status") {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	if queued {
		respond(w, http.StatusAccepted, map[string]interface{}{
			"job":    j,
			"queued": true,
		})
		return
	}
	respond(w, http.StatusOK, j)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "job deleted"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
