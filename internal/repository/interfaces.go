package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
)

type PrincipalRepository interface {
	// Create inserts the principal and its variant profile atomically.
	Create(ctx context.Context, p *domain.Principal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	GetByEmailKind(ctx context.Context, email string, kind domain.Kind) (*domain.Principal, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type PostingRepository interface {
	Create(ctx context.Context, p *domain.Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Posting, error)
	List(ctx context.Context, search string, limit, offset int) ([]domain.Posting, error)
	Count(ctx context.Context, search string) (int, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID, search string, limit, offset int) ([]domain.Posting, error)
	CountByEmployer(ctx context.Context, employerID uuid.UUID, search string) (int, error)
	CountActiveByEmployer(ctx context.Context, employerID uuid.UUID) (int, error)
	RecentByEmployer(ctx context.Context, employerID uuid.UUID, limit int) ([]domain.Posting, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	Exists(ctx context.Context, postingID, applicantID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error

	// Batched catalog annotations.
	CountsByPostings(ctx context.Context, postingIDs []uuid.UUID) (map[uuid.UUID]int, error)
	AppliedSet(ctx context.Context, applicantID uuid.UUID, postingIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	// Applicant view: applications joined to their postings.
	ListWithPostingByApplicant(ctx context.Context, applicantID uuid.UUID, search string, limit, offset int) ([]domain.ApplicationWithPosting, error)
	CountByApplicantSearch(ctx context.Context, applicantID uuid.UUID, search string) (int, error)

	// Employer view: all applications against one posting, applicant joined.
	ListByPostingWithApplicant(ctx context.Context, postingID uuid.UUID) ([]domain.Application, error)

	// Profile aggregates.
	CountByApplicant(ctx context.Context, applicantID uuid.UUID) (int, error)
	CountByApplicantStatus(ctx context.Context, applicantID uuid.UUID, status domain.ApplicationStatus) (int, error)
	RecentByApplicant(ctx context.Context, applicantID uuid.UUID, limit int) ([]domain.Application, error)
	CountForEmployer(ctx context.Context, employerID uuid.UUID) (int, error)
	RecentForEmployer(ctx context.Context, employerID uuid.UUID, limit int) ([]domain.Application, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	GetByMembers(ctx context.Context, a, b uuid.UUID) (*domain.Room, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, search string, limit, offset int) ([]domain.Room, error)
	CountByMember(ctx context.Context, memberID uuid.UUID, search string) (int, error)
	CountOwned(ctx context.Context, memberID uuid.UUID) (int, error)
	CountJoined(ctx context.Context, memberID uuid.UUID) (int, error)

	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, roomID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error)
	CountMessagesBySender(ctx context.Context, senderID uuid.UUID) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID, search string, limit, offset int) ([]domain.Notification, error)
	CountByReceiver(ctx context.Context, receiverID uuid.UUID, search string) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
}
