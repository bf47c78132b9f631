package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

type Application struct {
	ID          uuid.UUID         `json:"id"`
	PostingID   uuid.UUID         `json:"posting_id"`
	ApplicantID uuid.UUID         `json:"applicant_id"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`

	// Joined applicant fields for employer views
	ApplicantName       string `json:"applicant_name,omitempty"`
	ApplicantSurname    string `json:"applicant_surname,omitempty"`
	ApplicantProfession string `json:"applicant_profession,omitempty"`
	ApplicantEmail      string `json:"applicant_email,omitempty"`
}

// ApplicationWithPosting is one row of the applicant's "my applications" view.
type ApplicationWithPosting struct {
	Application Application `json:"application"`
	Posting     Posting     `json:"posting"`
}

// PostingWithApplications is one row of the employer's applicants view:
// a posting plus every application against it, applicant profile attached.
type PostingWithApplications struct {
	Posting          Posting       `json:"posting"`
	Applications     []Application `json:"applications"`
	ApplicationCount int           `json:"application_count"`
}
