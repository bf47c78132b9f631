package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfileSummary is the "my profile" aggregate. The base fields are shared;
// exactly one variant section is populated, matching the principal's kind.
type ProfileSummary struct {
	ID          uuid.UUID  `json:"id"`
	Kind        Kind       `json:"kind"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	RoomsOwned    int `json:"rooms_owned"`
	RoomsJoined   int `json:"rooms_joined"`
	TotalRooms    int `json:"total_rooms"`
	TotalMessages int `json:"total_messages"`

	Applicant *ApplicantSummary `json:"applicant,omitempty"`
	Employer  *EmployerSummary  `json:"employer,omitempty"`
}

type ApplicantSummary struct {
	Surname        string            `json:"surname"`
	Profession     string            `json:"profession"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	CurrentCompany *CompanyInfo      `json:"current_company,omitempty"`

	TotalApplications    int           `json:"total_applications"`
	PendingApplications  int           `json:"pending_applications"`
	AcceptedApplications int           `json:"accepted_applications"`
	RecentApplications   []Application `json:"recent_applications"`
}

type EmployerSummary struct {
	Description string            `json:"description"`
	SocialLinks map[string]string `json:"social_links"`

	TotalPostings      int           `json:"total_postings"`
	ActivePostings     int           `json:"active_postings"`
	TotalApplicants    int           `json:"total_applicants"`
	RecentPostings     []Posting     `json:"recent_postings"`
	RecentApplications []Application `json:"recent_applications"`
}
