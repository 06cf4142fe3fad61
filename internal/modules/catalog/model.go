package catalog

import (
	"time"

	"github.com/google/uuid"
)

// PrintService is a catalog entry describing a printable product type and
// its configurable options.
type PrintService struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Category         string    `json:"category"`
	BasePrice        float64   `json:"base_price"`
	PaperTypes       []string  `json:"paper_types,omitempty"`
	PaperWeights     []string  `json:"paper_weights,omitempty"`
	FinishingOptions []string  `json:"finishing_options,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SaveServiceRequest is the payload for creating or updating a catalog entry.
type SaveServiceRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category"`
	BasePrice        float64  `json:"base_price"`
	PaperTypes       []string `json:"paper_types,omitempty"`
	PaperWeights     []string `json:"paper_weights,omitempty"`
	FinishingOptions []string `json:"finishing_options,omitempty"`
	ImageURL         string   `json:"image_url,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
}
