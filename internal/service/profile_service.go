package service

import (
	"context"
	"fmt"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/repository"
)

const recentWindow = 5

type ProfileService struct {
	postingRepo     repository.PostingRepository
	applicationRepo repository.ApplicationRepository
	roomRepo        repository.RoomRepository
}

func NewProfileService(
	postingRepo repository.PostingRepository,
	applicationRepo repository.ApplicationRepository,
	roomRepo repository.RoomRepository,
) *ProfileService {
	return &ProfileService{
		postingRepo:     postingRepo,
		applicationRepo: applicationRepo,
		roomRepo:        roomRepo,
	}
}

// Summary assembles the viewer's profile page: shared identity and chat
// counters, plus the section matching the viewer's kind.
func (s *ProfileService) Summary(ctx context.Context, viewer *domain.Principal) (*domain.ProfileSummary, error) {
	summary := &domain.ProfileSummary{
		ID:          viewer.ID,
		Kind:        viewer.Kind,
		Email:       viewer.Email,
		Name:        viewer.Name,
		Location:    viewer.Location,
		CreatedAt:   viewer.CreatedAt,
		LastLoginAt: viewer.LastLoginAt,
	}

	owned, err := s.roomRepo.CountOwned(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("counting owned rooms: %w", err)
	}
	joined, err := s.roomRepo.CountJoined(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("counting joined rooms: %w", err)
	}
	messages, err := s.roomRepo.CountMessagesBySender(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}
	summary.RoomsOwned = owned
	summary.RoomsJoined = joined
	summary.TotalRooms = owned + joined
	summary.TotalMessages = messages

	switch viewer.Kind {
	case domain.KindApplicant:
		sec, err := s.applicantSection(ctx, viewer)
		if err != nil {
			return nil, err
		}
		summary.Applicant = sec
	case domain.KindEmployer:
		sec, err := s.employerSection(ctx, viewer)
		if err != nil {
			return nil, err
		}
		summary.Employer = sec
	default:
		return nil, fmt.Errorf("unknown principal kind %q", viewer.Kind)
	}

	return summary, nil
}

func (s *ProfileService) applicantSection(ctx context.Context, viewer *domain.Principal) (*domain.ApplicantSummary, error) {
	sec := &domain.ApplicantSummary{
		Surname:        viewer.Applicant.Surname,
		Profession:     viewer.Applicant.Profession,
		Skills:         viewer.Applicant.Skills,
		Experience:     viewer.Applicant.Experience,
		CurrentCompany: viewer.Applicant.CurrentCompany,
	}
	if sec.Skills == nil {
		sec.Skills = []string{}
	}
	if sec.Experience == nil {
		sec.Experience = []domain.ExperienceEntry{}
	}

	var err error
	if sec.TotalApplications, err = s.applicationRepo.CountByApplicant(ctx, viewer.ID); err != nil {
		return nil, fmt.Errorf("counting applications: %w", err)
	}
	if sec.PendingApplications, err = s.applicationRepo.CountByApplicantStatus(ctx, viewer.ID, domain.StatusPending); err != nil {
		return nil, fmt.Errorf("counting pending applications: %w", err)
	}
	if sec.AcceptedApplications, err = s.applicationRepo.CountByApplicantStatus(ctx, viewer.ID, domain.StatusAccepted); err != nil {
		return nil, fmt.Errorf("counting accepted applications: %w", err)
	}

	recent, err := s.applicationRepo.RecentByApplicant(ctx, viewer.ID, recentWindow)
	if err != nil {
		return nil, fmt.Errorf("loading recent applications: %w", err)
	}
	if recent == nil {
		recent = []domain.Application{}
	}
	sec.RecentApplications = recent

	return sec, nil
}

func (s *ProfileService) employerSection(ctx context.Context, viewer *domain.Principal) (*domain.EmployerSummary, error) {
	sec := &domain.EmployerSummary{
		Description: viewer.Employer.Description,
		SocialLinks: viewer.Employer.SocialLinks,
	}
	if sec.SocialLinks == nil {
		sec.SocialLinks = map[string]string{}
	}

	var err error
	if sec.TotalPostings, err = s.postingRepo.CountByEmployer(ctx, viewer.ID, ""); err != nil {
		return nil, fmt.Errorf("counting postings: %w", err)
	}
	if sec.ActivePostings, err = s.postingRepo.CountActiveByEmployer(ctx, viewer.ID); err != nil {
		return nil, fmt.Errorf("counting active postings: %w", err)
	}
	if sec.TotalApplicants, err = s.applicationRepo.CountForEmployer(ctx, viewer.ID); err != nil {
		return nil, fmt.Errorf("counting applicants: %w", err)
	}

	recentPostings, err := s.postingRepo.RecentByEmployer(ctx, viewer.ID, recentWindow)
	if err != nil {
		return nil, fmt.Errorf("loading recent postings: %w", err)
	}
	if recentPostings == nil {
		recentPostings = []domain.Posting{}
	}
	sec.RecentPostings = recentPostings

	recentApps, err := s.applicationRepo.RecentForEmployer(ctx, viewer.ID, recentWindow)
	if err != nil {
		return nil, fmt.Errorf("loading recent applications: %w", err)
	}
	if recentApps == nil {
		recentApps = []domain.Application{}
	}
	sec.RecentApplications = recentApps

	return sec, nil
}
