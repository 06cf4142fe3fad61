package quote

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
)

// Handler exposes quote HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)

		r.Route("/api/v1/quotes", func(r chi.Router) {
			r.With(guard.Require(auth.PermRequestQuotes)).Post("/", h.request)
			r.With(guard.Require(auth.PermRequestQuotes)).Get("/{id}", h.get)
			r.With(guard.Require(auth.PermManageQuotes)).Get("/", h.list)
			r.With(guard.Require(auth.PermManageQuotes)).Patch("/{id}/review", h.review)
			r.With(guard.Require(auth.PermManageQuotes)).Patch("/{id}/approve", h.approve)
			r.With(guard.Require(auth.PermManageQuotes)).Patch("/{id}/reject", h.reject)
			r.With(guard.Require(auth.PermManageQuotes)).Patch("/{id}/convert", h.convert)
			r.With(guard.Require(auth.PermManageQuotes)).Post("/expire-stale", h.expireStale)
		})
	})
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) {
	var req RequestQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	q, err := h.service.Request(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, q)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.List(r.Context(),
		r.URL.Query().Get("status"), r.URL.Query().Get("customer_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, quotes)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	var req ReviewQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	q, err := h.service.Review(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondTransitionError(w, err)
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondTransitionError(w, err)
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondTransitionError(w, err)
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Convert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondTransitionError(w, err)
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) expireStale(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.ExpireStale(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]int64{"expired": n})
}

func respondTransitionError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if strings.Contains(err.Error(), "cannot move") {
		code = http.StatusUnprocessableEntity
	} else if strings.Contains(err.Error(), "not found") {
		code = http.StatusNotFound
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
