// Package document serves rendered PDF downloads for invoices and quotes.
package document

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printshophq/printshop-backend/internal/modules/auth"
	"github.com/printshophq/printshop-backend/internal/modules/catalog"
	"github.com/printshophq/printshop-backend/internal/modules/customer"
	"github.com/printshophq/printshop-backend/internal/modules/invoice"
	"github.com/printshophq/printshop-backend/internal/modules/quote"
	"github.com/printshophq/printshop-backend/internal/modules/settings"
	"github.com/printshophq/printshop-backend/internal/pdf"
)

// Handler composes document data and streams rendered PDFs.
type Handler struct {
	invoices  invoice.Service
	quotes    quote.Service
	customers customer.Service
	services  catalog.Service
	settings  settings.Service
}

func NewHandler(invoices invoice.Service, quotes quote.Service, customers customer.Service, services catalog.Service, settingsService settings.Service) *Handler {
	return &Handler{
		invoices:  invoices,
		quotes:    quotes,
		customers: customers,
		services:  services,
		settings:  settingsService,
	}
}

func (h *Handler) RegisterRoutes(router *chi.Mux, guard *auth.Guard) {
	router.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)
		r.With(guard.Require(auth.PermManageInvoices)).Get("/api/v1/invoices/{id}/pdf", h.invoicePDF)
		r.With(guard.Require(auth.PermManageQuotes)).Get("/api/v1/quotes/{id}/pdf", h.quotePDF)
	})
}

func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	customerName := ""
	if c, err := h.customers.Get(r.Context(), inv.CustomerID.String()); err == nil {
		customerName = c.Name
	}

	blob, err := pdf.RenderInvoice(inv, customerName, cfg)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	servePDF(w, fmt.Sprintf("%s.pdf", inv.InvoiceNumber), blob)
}

func (h *Handler) quotePDF(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	customerName := ""
	if c, err := h.customers.Get(r.Context(), q.CustomerID.String()); err == nil {
		customerName = c.Name
	}
	serviceName := ""
	if p, err := h.services.Get(r.Context(), q.ServiceID.String()); err == nil {
		serviceName = p.Name
	}

	blob, err := pdf.RenderQuote(q, customerName, serviceName, cfg)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	servePDF(w, fmt.Sprintf("quote-%s.pdf", q.ID.String()[:8]), blob)
}

func servePDF(w http.ResponseWriter, filename string, blob []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

func respondError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
