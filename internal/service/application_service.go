package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/repository"
)

var (
	ErrApplicantsOnly      = errors.New("only applicants can do this")
	ErrAlreadyApplied      = errors.New("you have already applied to this job")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotPostingOwner     = errors.New("only the posting owner can do this")
	ErrPostingInactive     = errors.New("this posting is no longer active")
)

const applicationsPageSize = 10

type ApplicationService struct {
	applicationRepo  repository.ApplicationRepository
	postingRepo      repository.PostingRepository
	notificationRepo repository.NotificationRepository
}

func NewApplicationService(
	applicationRepo repository.ApplicationRepository,
	postingRepo repository.PostingRepository,
	notificationRepo repository.NotificationRepository,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo:  applicationRepo,
		postingRepo:      postingRepo,
		notificationRepo: notificationRepo,
	}
}

// ListMine returns the viewer's own applications joined to their postings.
// The same filter, order and pagination pipeline runs regardless of result
// count, so metadata is consistent even for an empty page.
func (s *ApplicationService) ListMine(ctx context.Context, viewer *domain.Principal, page, perPage int, search string) (domain.Paged[domain.ApplicationWithPosting], error) {
	var empty domain.Paged[domain.ApplicationWithPosting]

	if viewer.Kind != domain.KindApplicant {
		return empty, ErrApplicantsOnly
	}

	page = domain.ClampPage(page)
	perPage = domain.NormalizePerPage(perPage, applicationsPageSize)
	search = strings.TrimSpace(search)

	total, err := s.applicationRepo.CountByApplicantSearch(ctx, viewer.ID, search)
	if err != nil {
		return empty, fmt.Errorf("counting applications: %w", err)
	}

	items, err := s.applicationRepo.ListWithPostingByApplicant(ctx, viewer.ID, search, perPage, (page-1)*perPage)
	if err != nil {
		return empty, fmt.Errorf("listing applications: %w", err)
	}

	log.Printf("Applications found: %d", total)

	return domain.NewPaged(items, total, page, perPage), nil
}

// ListApplicants returns the viewer's postings, each with every application
// against it joined to the applicant profile. Pagination is at the posting
// level; the per-posting application list is unbounded.
func (s *ApplicationService) ListApplicants(ctx context.Context, viewer *domain.Principal, page, perPage int, search string) (domain.Paged[domain.PostingWithApplications], error) {
	var empty domain.Paged[domain.PostingWithApplications]

	if viewer.Kind != domain.KindEmployer {
		return empty, ErrEmployersOnly
	}

	page = domain.ClampPage(page)
	perPage = domain.NormalizePerPage(perPage, applicationsPageSize)
	search = strings.TrimSpace(search)

	total, err := s.postingRepo.CountByEmployer(ctx, viewer.ID, search)
	if err != nil {
		return empty, fmt.Errorf("counting postings: %w", err)
	}

	postings, err := s.postingRepo.ListByEmployer(ctx, viewer.ID, search, perPage, (page-1)*perPage)
	if err != nil {
		return empty, fmt.Errorf("listing postings: %w", err)
	}

	items := make([]domain.PostingWithApplications, 0, len(postings))
	for _, posting := range postings {
		apps, err := s.applicationRepo.ListByPostingWithApplicant(ctx, posting.ID)
		if err != nil {
			return empty, fmt.Errorf("listing applications for posting %s: %w", posting.ID, err)
		}
		if apps == nil {
			apps = []domain.Application{}
		}
		items = append(items, domain.PostingWithApplications{
			Posting:          posting,
			Applications:     apps,
			ApplicationCount: len(apps),
		})
	}

	log.Printf("Jobs found: %d", total)

	return domain.NewPaged(items, total, page, perPage), nil
}

// Apply records the viewer's interest in a posting and notifies its owner.
// At most one application per (posting, applicant) pair; the database
// constraint backs the pre-check against races.
func (s *ApplicationService) Apply(ctx context.Context, viewer *domain.Principal, postingID uuid.UUID) (*domain.Application, error) {
	if viewer.Kind != domain.KindApplicant {
		return nil, ErrApplicantsOnly
	}

	posting, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, ErrPostingNotFound
	}
	if !posting.IsActive {
		return nil, ErrPostingInactive
	}

	exists, err := s.applicationRepo.Exists(ctx, postingID, viewer.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	app := &domain.Application{
		ID:          uuid.New(),
		PostingID:   postingID,
		ApplicantID: viewer.ID,
		Status:      domain.StatusPending,
		AppliedAt:   time.Now(),
	}

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("creating application: %w", err)
	}

	s.notify(ctx, posting.EmployerID,
		fmt.Sprintf("New application for %s", posting.Title),
		fmt.Sprintf("%s applied to your posting.", viewer.Name),
	)

	return app, nil
}

// Decide accepts or rejects an application. Only the owner of the posting
// the application targets may decide, and the applicant gets notified.
func (s *ApplicationService) Decide(ctx context.Context, viewer *domain.Principal, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	if viewer.Kind != domain.KindEmployer {
		return nil, ErrEmployersOnly
	}
	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return nil, fmt.Errorf("invalid decision %q", status)
	}

	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	posting, err := s.postingRepo.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, ErrPostingNotFound
	}
	if posting.EmployerID != viewer.ID {
		return nil, ErrNotPostingOwner
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("updating application status: %w", err)
	}
	app.Status = status

	s.notify(ctx, app.ApplicantID,
		fmt.Sprintf("Your application was %s", status),
		fmt.Sprintf("%s reviewed your application for %s.", viewer.Name, posting.Title),
	)

	return app, nil
}

// Get returns one application, visible only to the applicant who made it or
// the employer who owns the targeted posting.
func (s *ApplicationService) Get(ctx context.Context, viewer *domain.Principal, applicationID uuid.UUID) (*domain.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	if app.ApplicantID == viewer.ID {
		return app, nil
	}

	posting, err := s.postingRepo.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if posting == nil || posting.EmployerID != viewer.ID {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// notify is best-effort: a failed notification never fails the operation
// that produced it.
func (s *ApplicationService) notify(ctx context.Context, receiverID uuid.UUID, title, body string) {
	n := &domain.Notification{
		ID:         uuid.New(),
		ReceiverID: receiverID,
		Title:      title,
		Body:       body,
		CreatedAt:  time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("ERROR creating notification for %s: %v", receiverID, err)
	}
}
