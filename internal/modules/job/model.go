package job

import (
	"time"

	"github.com/google/uuid"
)

// Job represents one print job from submission to handoff. TrackingCode is
// the customer-facing identifier used in public status URLs and is immutable
// once assigned. CompletedAt is stamped when the job reaches Completed and
// is never cleared by later status writes.
type Job struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Quantity        int        `json:"quantity"`
	ServiceID       uuid.UUID  `json:"service_id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	Status          Status     `json:"status"`
	Progress        float64    `json:"progress"`
	QuotedPrice     *float64   `json:"quoted_price,omitempty"`
	FinalPrice      *float64   `json:"final_price,omitempty"`
	TrackingCode    string     `json:"tracking_code"`
	DeliveryMethod  string     `json:"delivery_method,omitempty"`
	DeliveryAddress string     `json:"delivery_address,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SubmitJobRequest is the payload for creating a job, from the customer
// order form or staff entry.
type SubmitJobRequest struct {
	Title           string   `json:"title"`
	Quantity        int      `json:"quantity"`
	ServiceID       string   `json:"service_id"`
	CustomerID      string   `json:"customer_id"`
	QuotedPrice     *float64 `json:"quoted_price,omitempty"`
	DeliveryMethod  string   `json:"delivery_method,omitempty"`
	DeliveryAddress string   `json:"delivery_address,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	DueDate         string   `json:"due_date,omitempty"` // YYYY-MM-DD
}

// UpdateJobRequest edits job details. The tracking code is not part of this
// payload: it cannot be changed.
type UpdateJobRequest struct {
	Title           string   `json:"title"`
	Quantity        int      `json:"quantity"`
	QuotedPrice     *float64 `json:"quoted_price,omitempty"`
	FinalPrice      *float64 `json:"final_price,omitempty"`
	DeliveryMethod  string   `json:"delivery_method,omitempty"`
	DeliveryAddress string   `json:"delivery_address,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	DueDate         string   `json:"due_date,omitempty"`
}

// UpdateStatusRequest assigns a new lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TrackingView is the public snapshot returned for a tracking code lookup.
type TrackingView struct {
	TrackingCode string     `json:"tracking_code"`
	Title        string     `json:"title"`
	Status       Status     `json:"status"`
	Progress     float64    `json:"progress"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
