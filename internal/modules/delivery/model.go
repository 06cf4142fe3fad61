package delivery

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a delivery schedule.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusInTransit Status = "in_transit"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Schedule is a planned handoff of a completed job to its customer.
type Schedule struct {
	ID            uuid.UUID  `json:"id"`
	JobID         uuid.UUID  `json:"job_id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	StaffID       *uuid.UUID `json:"staff_id,omitempty"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	Address       string     `json:"address,omitempty"`
	Fee           float64    `json:"fee"`
	Status        Status     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateScheduleRequest is the payload for scheduling a delivery.
type CreateScheduleRequest struct {
	JobID         string  `json:"job_id"`
	StaffID       string  `json:"staff_id,omitempty"`
	ScheduledDate string  `json:"scheduled_date"` // YYYY-MM-DD
	Address       string  `json:"address,omitempty"`
	Fee           float64 `json:"fee,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// UpdateStatusRequest advances a delivery's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
