package quote

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a quote.
type Status string

const (
	StatusRequested Status = "requested"
	StatusReviewed  Status = "reviewed"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusConverted Status = "converted"
	StatusExpired   Status = "expired"
)

// Quote is a priced proposal for a customer and service. An approved quote
// may be converted; conversion only flips the status — it does not create a
// job record.
type Quote struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	ServiceID   uuid.UUID  `json:"service_id"`
	Description string     `json:"description,omitempty"`
	Quantity    int        `json:"quantity"`
	QuotedPrice *float64   `json:"quoted_price,omitempty"`
	Status      Status     `json:"status"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RequestQuoteRequest is the payload for a customer quote request.
type RequestQuoteRequest struct {
	CustomerID  string `json:"customer_id"`
	ServiceID   string `json:"service_id"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
}

// ReviewQuoteRequest prices a requested quote.
type ReviewQuoteRequest struct {
	QuotedPrice float64 `json:"quoted_price"`
	ValidDays   int     `json:"valid_days,omitempty"` // default 30
}
