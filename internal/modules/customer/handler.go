package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
)

// Handler exposes customer HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)
		r.Use(guard.Require(auth.PermManageCustomers))

		r.Route("/api/v1/customers", func(r chi.Router) {
			r.Post("/", h.create)                          // POST  /api/v1/customers
			r.Get("/", h.list)                             // GET   /api/v1/customers?q=smith
			r.Get("/{id}", h.get)                          // GET   /api/v1/customers/{id}
			r.Get("/display/{display_id}", h.getByDisplay) // GET   /api/v1/customers/display/{display_id}
			r.Put("/{id}", h.update)                       // PUT   /api/v1/customers/{id}
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, stale, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"customers": customers,
		"stale":     stale,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) getByDisplay(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetByDisplayID(r.Context(), chi.URLParam(r, "display_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
