package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID `json:"id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContactMessage is an unauthenticated contact-form submission. It is
// persisted first; email notification is best-effort on top.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
