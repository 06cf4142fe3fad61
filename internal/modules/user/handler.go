package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user endpoints. The middleware values are
// supplied by the caller; this package cannot import the auth guard because
// auth itself depends on user.Repository for login.
func (h *Handler) RegisterRoutes(router *chi.Mux, authenticate, requireManageUsers func(http.Handler) http.Handler) {
	router.Post("/api/v1/users/register", h.registerUser)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/api/v1/users/{id}", h.getUser)
		r.With(requireManageUsers).Get("/api/v1/users", h.listUsers)
		r.With(requireManageUsers).Patch("/api/v1/users/{id}/role", h.changeRole)
	})
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Self-registration always yields a customer account; staff/admin roles
	// are granted through the role endpoint.
	u, err := h.service.RegisterUser(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, "customer")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.ChangeRole(r.Context(), id, req.Role); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "role updated"})
}
