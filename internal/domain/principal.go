package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two principal variants. It is set at registration
// and never changes afterwards.
type Kind string

const (
	KindApplicant Kind = "applicant"
	KindEmployer  Kind = "employer"
)

func (k Kind) Valid() bool {
	return k == KindApplicant || k == KindEmployer
}

type Principal struct {
	ID           uuid.UUID  `json:"id"`
	Kind         Kind       `json:"kind"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Location     string     `json:"location"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Exactly one of these is non-nil, matching Kind.
	Applicant *ApplicantProfile `json:"applicant,omitempty"`
	Employer  *EmployerProfile  `json:"employer,omitempty"`
}

type ApplicantProfile struct {
	Surname        string            `json:"surname"`
	Profession     string            `json:"profession"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	CurrentCompany *CompanyInfo      `json:"current_company,omitempty"`
}

type ExperienceEntry struct {
	Company string `json:"company"`
	Title   string `json:"title"`
	From    string `json:"from"`
	To      string `json:"to,omitempty"`
}

type CompanyInfo struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Website  string `json:"website,omitempty"`
}

type EmployerProfile struct {
	Description string            `json:"description"`
	SocialLinks map[string]string `json:"social_links"`
}
