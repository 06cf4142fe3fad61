package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a person or business the shop prints for. DisplayID is the
// human-shareable identifier, distinct from the internal UUID; customers may
// optionally be linked to an authenticated account.
type Customer struct {
	ID        uuid.UUID  `json:"id"`
	DisplayID string     `json:"display_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateCustomerRequest is the payload for registering a new customer.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}

// UpdateCustomerRequest is the payload for editing customer contact info.
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
