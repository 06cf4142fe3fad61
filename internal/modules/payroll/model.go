package payroll

import (
	"time"

	"github.com/google/uuid"
)

// Record is a staff pay entry for one period.
type Record struct {
	ID         uuid.UUID  `json:"id"`
	StaffID    uuid.UUID  `json:"staff_id"`
	Period     string     `json:"period"` // YYYY-MM
	BasePay    float64    `json:"base_pay"`
	Bonus      float64    `json:"bonus"`
	Deductions float64    `json:"deductions"`
	NetPay     float64    `json:"net_pay"`
	Paid       bool       `json:"paid"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateRecordRequest is the payload for recording a pay entry.
type CreateRecordRequest struct {
	StaffID    string  `json:"staff_id"`
	Period     string  `json:"period"`
	BasePay    float64 `json:"base_pay"`
	Bonus      float64 `json:"bonus,omitempty"`
	Deductions float64 `json:"deductions,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// UpdateRecordRequest edits amounts on an unpaid record.
type UpdateRecordRequest struct {
	BasePay    *float64 `json:"base_pay,omitempty"`
	Bonus      *float64 `json:"bonus,omitempty"`
	Deductions *float64 `json:"deductions,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}
