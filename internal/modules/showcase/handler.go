package showcase

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// Handler exposes showcase slide HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	// Display screens poll this without credentials.
	router.Get("/api/v1/showcase", h.listActive)

	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)
		r.Use(guard.Require(auth.PermManageShowcase))

		r.Route("/api/v1/showcase/slides", func(r chi.Router) {
			r.Post("/", h.create)
			r.Get("/", h.listAll)
			r.Get("/{id}", h.get)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.remove)
		})
	})
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	slides, err := h.service.List(r.Context(), true)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"slides": slides})
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	slides, err := h.service.List(r.Context(), false)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"slides": slides})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	slide, err := h.service.Create(r.Context(),
		r.FormValue("title"), r.FormValue("description"), header.Filename, file)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, slide)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	slide, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, slide)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	slide, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrSlideNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, slide)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrSlideNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "slide deleted"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
