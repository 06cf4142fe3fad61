package showcase

import (
	"time"

	"github.com/google/uuid"
)

// Slide is one entry in the shop's display-screen rotation.
type Slide struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageName   string    `json:"-"`
	ImageURL    string    `json:"image_url"`
	SortOrder   int       `json:"sort_order"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateSlideRequest edits slide metadata. The image itself is replaced by
// re-uploading.
type UpdateSlideRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}
