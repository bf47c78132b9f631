package domain

import (
	"time"

	"github.com/google/uuid"
)

type Posting struct {
	ID          uuid.UUID `json:"id"`
	EmployerID  uuid.UUID `json:"employer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined field for employer views
	EmployerName string `json:"employer_name,omitempty"`
}

// AnnotatedPosting is the viewer-relative catalog view model. Entities are
// never mutated to carry these flags; the catalog service composes them.
type AnnotatedPosting struct {
	Posting
	IsOwner        bool `json:"is_owner"`
	AlreadyApplied bool `json:"already_applied"`
	ApplicantCount int  `json:"applicant_count"`
}
