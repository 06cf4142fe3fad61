package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an invoice.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// validTransitions defines the allowed invoice state machine.
var validTransitions = map[Status][]Status{
	StatusDraft:     {StatusSent, StatusCancelled},
	StatusSent:      {StatusPaid, StatusOverdue, StatusCancelled},
	StatusOverdue:   {StatusPaid, StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {},
}

// CanTransition returns true if the invoice status change is valid.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// LineItem is a single line on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Invoice is a billing record for a customer, optionally tied to a job.
// Subtotal, tax, and total are computed from the line items at write time.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	JobID         *uuid.UUID `json:"job_id,omitempty"`
	LineItems     []LineItem `json:"line_items"`
	Subtotal      float64    `json:"subtotal"`
	TaxRate       float64    `json:"tax_rate"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	Status        Status     `json:"status"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateInvoiceRequest is the payload for creating a draft invoice.
type CreateInvoiceRequest struct {
	CustomerID string     `json:"customer_id"`
	JobID      string     `json:"job_id,omitempty"`
	LineItems  []LineItem `json:"line_items"`
	DueDate    string     `json:"due_date,omitempty"` // YYYY-MM-DD
	Notes      string     `json:"notes,omitempty"`
}

// UpdateStatusRequest advances an invoice's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
