package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/repository"
)

// ContactStatus is the tri-state outcome of a contact submission.
type ContactStatus string

const (
	ContactSuccess ContactStatus = "success"
	ContactWarning ContactStatus = "warning"
	ContactError   ContactStatus = "error"
)

const mailTimeout = 10 * time.Second

// Mailer delivers outbound notification email. Delivery failure is never
// fatal to the persisted message.
type Mailer interface {
	SendContactNotification(ctx context.Context, msg *domain.ContactMessage) error
}

type ContactService struct {
	contactRepo repository.ContactRepository
	mailer      Mailer
}

func NewContactService(contactRepo repository.ContactRepository, mailer Mailer) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		mailer:      mailer,
	}
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit persists the message first, then attempts the email notification.
// success: stored and emailed; warning: stored, email failed; error: not
// stored.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (ContactStatus, error) {
	msg := &domain.ContactMessage{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now(),
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return ContactError, fmt.Errorf("saving contact message: %w", err)
	}
	log.Printf("New contact form saved successfully")

	mailCtx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	if err := s.mailer.SendContactNotification(mailCtx, msg); err != nil {
		log.Printf("ERROR sending contact notification: %v", err)
		return ContactWarning, nil
	}

	return ContactSuccess, nil
}
