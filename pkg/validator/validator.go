package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/dmarkovic/jobster/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateLogin(email, password string, kind domain.Kind) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	if !kind.Valid() {
		errs.Add("kind", "Account type must be applicant or employer")
	}

	return errs
}

// ValidateRegister checks the shared fields first, then the fields required
// by the chosen variant.
func ValidateRegister(kind domain.Kind, email, name, password string, applicant *domain.ApplicantProfile, employer *domain.EmployerProfile) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) > 100 {
		errs.Add("name", "Name is too long")
	}

	validatePassword(password, errs)

	switch kind {
	case domain.KindApplicant:
		if applicant == nil {
			errs.Add("applicant", "Applicant details are required")
			break
		}
		if strings.TrimSpace(applicant.Surname) == "" {
			errs.Add("surname", "Surname is required")
		}
		if strings.TrimSpace(applicant.Profession) == "" {
			errs.Add("profession", "Profession is required")
		}
	case domain.KindEmployer:
		if employer == nil {
			errs.Add("employer", "Company details are required")
			break
		}
		if strings.TrimSpace(employer.Description) == "" {
			errs.Add("description", "Company description is required")
		}
	default:
		errs.Add("kind", "Account type must be applicant or employer")
	}

	return errs
}

func ValidatePosting(title string) ValidationErrors {
	errs := make(ValidationErrors)

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Job title is required")
	} else if len(title) > 200 {
		errs.Add("title", "Job title is too long")
	}

	return errs
}

func ValidateContact(name, email, subject, message string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Name is required")
	}

	validateEmail(email, errs)

	if strings.TrimSpace(subject) == "" {
		errs.Add("subject", "Subject is required")
	}

	if strings.TrimSpace(message) == "" {
		errs.Add("message", "Message is required")
	} else if len(message) > 5000 {
		errs.Add("message", "Message is too long")
	}

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
