package notification

import (
	"time"

	"github.com/google/uuid"
)

// Channel selects which transports a dispatch attempts.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelBoth  Channel = "both"
)

// LogStatus is the outcome recorded for one send attempt.
type LogStatus string

const (
	LogPending LogStatus = "pending"
	LogSent    LogStatus = "sent"
	LogFailed  LogStatus = "failed"
)

// Log is an append-only record of one outbound email or SMS attempt. Rows
// are written once per attempt and never mutated after the attempt completes.
type Log struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Type        string    `json:"type"` // "email" | "sms"
	Event       string    `json:"event"`
	Recipient   string    `json:"recipient"`
	Subject     string    `json:"subject,omitempty"`
	Message     string    `json:"message"`
	Status      LogStatus `json:"status"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Intent is a notification to be delivered later by the outbox worker. Job
// and delivery state changes persist an Intent in the same transaction as
// the triggering write.
type Intent struct {
	CustomerID uuid.UUID
	Event      string
	Subject    string
	Message    string
	Channel    Channel
}

// OutboxStatus is the lifecycle of a queued intent.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxDispatched OutboxStatus = "dispatched"
	OutboxFailed     OutboxStatus = "failed"
)

// OutboxEntry is a persisted Intent awaiting dispatch.
type OutboxEntry struct {
	ID         uuid.UUID    `json:"id"`
	CustomerID uuid.UUID    `json:"customer_id"`
	Event      string       `json:"event"`
	Subject    string       `json:"subject,omitempty"`
	Message    string       `json:"message"`
	Channel    Channel      `json:"channel"`
	Status     OutboxStatus `json:"status"`
	Attempts   int          `json:"attempts"`
	LastError  string       `json:"last_error,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// DispatchRequest is the payload for a direct (synchronous) dispatch.
// Event is an open-ended tag: job_submitted, status_updated,
// delivery_scheduled, delivery_completed, test, or any string.
type DispatchRequest struct {
	CustomerID string  `json:"customer_id"`
	Event      string  `json:"event"`
	Subject    string  `json:"subject,omitempty"`
	Message    string  `json:"message"`
	Channel    Channel `json:"type"`
}

// DispatchResult reports which channels succeeded. Partial failure is data,
// not an error; callers decide how to surface it.
type DispatchResult struct {
	Success   bool     `json:"success"`
	EmailSent bool     `json:"email_sent"`
	SMSSent   bool     `json:"sms_sent"`
	Errors    []string `json:"errors"`
}
