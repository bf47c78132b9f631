package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/repository"
)

var (
	ErrEmployersOnly   = errors.New("only employers can do this")
	ErrPostingNotFound = errors.New("posting not found")
)

const catalogPageSize = 12

type CatalogService struct {
	postingRepo     repository.PostingRepository
	applicationRepo repository.ApplicationRepository
}

func NewCatalogService(postingRepo repository.PostingRepository, applicationRepo repository.ApplicationRepository) *CatalogService {
	return &CatalogService{
		postingRepo:     postingRepo,
		applicationRepo: applicationRepo,
	}
}

// List returns one page of the catalog with viewer-relative annotations.
// An out-of-range page yields an empty item list with the correct total.
func (s *CatalogService) List(ctx context.Context, viewer *domain.Principal, page int, search string) (domain.Paged[domain.AnnotatedPosting], error) {
	page = domain.ClampPage(page)
	search = strings.TrimSpace(search)

	var empty domain.Paged[domain.AnnotatedPosting]

	total, err := s.postingRepo.Count(ctx, search)
	if err != nil {
		return empty, fmt.Errorf("counting postings: %w", err)
	}

	postings, err := s.postingRepo.List(ctx, search, catalogPageSize, (page-1)*catalogPageSize)
	if err != nil {
		return empty, fmt.Errorf("listing postings: %w", err)
	}

	annotated, err := s.annotate(ctx, viewer, postings)
	if err != nil {
		return empty, err
	}

	log.Printf("Total jobs found: %d", total)

	return domain.NewPaged(annotated, total, page, catalogPageSize), nil
}

// Get returns a single posting with the same annotations as the catalog page.
func (s *CatalogService) Get(ctx context.Context, viewer *domain.Principal, id uuid.UUID) (*domain.AnnotatedPosting, error) {
	posting, err := s.postingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, ErrPostingNotFound
	}

	annotated, err := s.annotate(ctx, viewer, []domain.Posting{*posting})
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// Create publishes a new posting. Employer only.
func (s *CatalogService) Create(ctx context.Context, viewer *domain.Principal, title, description, location string) (*domain.Posting, error) {
	if viewer.Kind != domain.KindEmployer {
		return nil, ErrEmployersOnly
	}

	p := &domain.Posting{
		ID:           uuid.New(),
		EmployerID:   viewer.ID,
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		Location:     strings.TrimSpace(location),
		IsActive:     true,
		CreatedAt:    time.Now(),
		EmployerName: viewer.Name,
	}

	if err := s.postingRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating posting: %w", err)
	}
	return p, nil
}

// annotate composes the per-viewer view models. The applicant counts and the
// viewer's applied set are fetched in two batched queries run concurrently;
// results match what per-posting lookups would produce.
func (s *CatalogService) annotate(ctx context.Context, viewer *domain.Principal, postings []domain.Posting) ([]domain.AnnotatedPosting, error) {
	ids := make([]uuid.UUID, len(postings))
	for i, p := range postings {
		ids[i] = p.ID
	}

	var (
		counts  map[uuid.UUID]int
		applied map[uuid.UUID]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.applicationRepo.CountsByPostings(gctx, ids)
		return err
	})
	if viewer.Kind == domain.KindApplicant {
		g.Go(func() error {
			var err error
			applied, err = s.applicationRepo.AppliedSet(gctx, viewer.ID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("annotating postings: %w", err)
	}

	annotated := make([]domain.AnnotatedPosting, len(postings))
	for i, p := range postings {
		a := domain.AnnotatedPosting{
			Posting:        p,
			ApplicantCount: counts[p.ID],
		}
		switch viewer.Kind {
		case domain.KindEmployer:
			a.IsOwner = p.EmployerID == viewer.ID
		case domain.KindApplicant:
			a.AlreadyApplied = applied[p.ID]
		}
		annotated[i] = a
	}
	return annotated, nil
}
