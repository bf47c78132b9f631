package service

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
)

// In-memory repositories backing the service tests. Ordering matches the
// SQL: newest first, id descending on timestamp ties.

func titleMatch(title, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(search))
}

func idLess(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakePrincipalRepo struct {
	principals map[uuid.UUID]*domain.Principal
}

func newFakePrincipalRepo() *fakePrincipalRepo {
	return &fakePrincipalRepo{principals: make(map[uuid.UUID]*domain.Principal)}
}

func (r *fakePrincipalRepo) Create(_ context.Context, p *domain.Principal) error {
	cp := *p
	r.principals[p.ID] = &cp
	return nil
}

func (r *fakePrincipalRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Principal, error) {
	p, ok := r.principals[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePrincipalRepo) GetByEmailKind(_ context.Context, email string, kind domain.Kind) (*domain.Principal, error) {
	for _, p := range r.principals {
		if p.Email == email && p.Kind == kind {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePrincipalRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if p, ok := r.principals[id]; ok {
		t := at
		p.LastLoginAt = &t
	}
	return nil
}

type fakePostingRepo struct {
	postings []domain.Posting
}

func (r *fakePostingRepo) sorted(filter func(domain.Posting) bool) []domain.Posting {
	var out []domain.Posting
	for _, p := range r.postings {
		if filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return idLess(out[j].ID, out[i].ID)
	})
	return out
}

func (r *fakePostingRepo) Create(_ context.Context, p *domain.Posting) error {
	r.postings = append(r.postings, *p)
	return nil
}

func (r *fakePostingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Posting, error) {
	for _, p := range r.postings {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePostingRepo) List(_ context.Context, search string, limit, offset int) ([]domain.Posting, error) {
	return paginate(r.sorted(func(p domain.Posting) bool { return titleMatch(p.Title, search) }), limit, offset), nil
}

func (r *fakePostingRepo) Count(_ context.Context, search string) (int, error) {
	return len(r.sorted(func(p domain.Posting) bool { return titleMatch(p.Title, search) })), nil
}

func (r *fakePostingRepo) ListByEmployer(_ context.Context, employerID uuid.UUID, search string, limit, offset int) ([]domain.Posting, error) {
	return paginate(r.sorted(func(p domain.Posting) bool {
		return p.EmployerID == employerID && titleMatch(p.Title, search)
	}), limit, offset), nil
}

func (r *fakePostingRepo) CountByEmployer(_ context.Context, employerID uuid.UUID, search string) (int, error) {
	return len(r.sorted(func(p domain.Posting) bool {
		return p.EmployerID == employerID && titleMatch(p.Title, search)
	})), nil
}

func (r *fakePostingRepo) CountActiveByEmployer(_ context.Context, employerID uuid.UUID) (int, error) {
	return len(r.sorted(func(p domain.Posting) bool {
		return p.EmployerID == employerID && p.IsActive
	})), nil
}

func (r *fakePostingRepo) RecentByEmployer(_ context.Context, employerID uuid.UUID, limit int) ([]domain.Posting, error) {
	return paginate(r.sorted(func(p domain.Posting) bool { return p.EmployerID == employerID }), limit, 0), nil
}

type fakeApplicationRepo struct {
	applications []domain.Application
	postings     *fakePostingRepo
}

func (r *fakeApplicationRepo) sorted(filter func(domain.Application) bool) []domain.Application {
	var out []domain.Application
	for _, a := range r.applications {
		if filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppliedAt.Equal(out[j].AppliedAt) {
			return out[i].AppliedAt.After(out[j].AppliedAt)
		}
		return idLess(out[j].ID, out[i].ID)
	})
	return out
}

func (r *fakeApplicationRepo) postingByID(id uuid.UUID) *domain.Posting {
	if r.postings == nil {
		return nil
	}
	p, _ := r.postings.GetByID(context.Background(), id)
	return p
}

func (r *fakeApplicationRepo) Create(_ context.Context, a *domain.Application) error {
	r.applications = append(r.applications, *a)
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Application, error) {
	for _, a := range r.applications {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) Exists(_ context.Context, postingID, applicantID uuid.UUID) (bool, error) {
	for _, a := range r.applications {
		if a.PostingID == postingID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	for i := range r.applications {
		if r.applications[i].ID == id {
			r.applications[i].Status = status
		}
	}
	return nil
}

func (r *fakeApplicationRepo) CountsByPostings(_ context.Context, postingIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(postingIDs))
	for _, id := range postingIDs {
		for _, a := range r.applications {
			if a.PostingID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r *fakeApplicationRepo) AppliedSet(_ context.Context, applicantID uuid.UUID, postingIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	applied := make(map[uuid.UUID]bool)
	for _, id := range postingIDs {
		for _, a := range r.applications {
			if a.PostingID == id && a.ApplicantID == applicantID {
				applied[id] = true
			}
		}
	}
	return applied, nil
}

func (r *fakeApplicationRepo) ListWithPostingByApplicant(_ context.Context, applicantID uuid.UUID, search string, limit, offset int) ([]domain.ApplicationWithPosting, error) {
	apps := r.sorted(func(a domain.Application) bool {
		if a.ApplicantID != applicantID {
			return false
		}
		p := r.postingByID(a.PostingID)
		return p != nil && titleMatch(p.Title, search)
	})
	var items []domain.ApplicationWithPosting
	for _, a := range apps {
		items = append(items, domain.ApplicationWithPosting{
			Application: a,
			Posting:     *r.postingByID(a.PostingID),
		})
	}
	return paginate(items, limit, offset), nil
}

func (r *fakeApplicationRepo) CountByApplicantSearch(_ context.Context, applicantID uuid.UUID, search string) (int, error) {
	return len(r.sorted(func(a domain.Application) bool {
		if a.ApplicantID != applicantID {
			return false
		}
		p := r.postingByID(a.PostingID)
		return p != nil && titleMatch(p.Title, search)
	})), nil
}

func (r *fakeApplicationRepo) ListByPostingWithApplicant(_ context.Context, postingID uuid.UUID) ([]domain.Application, error) {
	return r.sorted(func(a domain.Application) bool { return a.PostingID == postingID }), nil
}

func (r *fakeApplicationRepo) CountByApplicant(_ context.Context, applicantID uuid.UUID) (int, error) {
	return len(r.sorted(func(a domain.Application) bool { return a.ApplicantID == applicantID })), nil
}

func (r *fakeApplicationRepo) CountByApplicantStatus(_ context.Context, applicantID uuid.UUID, status domain.ApplicationStatus) (int, error) {
	return len(r.sorted(func(a domain.Application) bool {
		return a.ApplicantID == applicantID && a.Status == status
	})), nil
}

func (r *fakeApplicationRepo) RecentByApplicant(_ context.Context, applicantID uuid.UUID, limit int) ([]domain.Application, error) {
	return paginate(r.sorted(func(a domain.Application) bool { return a.ApplicantID == applicantID }), limit, 0), nil
}

func (r *fakeApplicationRepo) CountForEmployer(_ context.Context, employerID uuid.UUID) (int, error) {
	return len(r.sorted(func(a domain.Application) bool {
		p := r.postingByID(a.PostingID)
		return p != nil && p.EmployerID == employerID
	})), nil
}

func (r *fakeApplicationRepo) RecentForEmployer(_ context.Context, employerID uuid.UUID, limit int) ([]domain.Application, error) {
	return paginate(r.sorted(func(a domain.Application) bool {
		p := r.postingByID(a.PostingID)
		return p != nil && p.EmployerID == employerID
	}), limit, 0), nil
}

type fakeRoomRepo struct {
	rooms    []domain.Room
	messages []domain.Message
}

func (r *fakeRoomRepo) sorted(filter func(domain.Room) bool) []domain.Room {
	var out []domain.Room
	for _, room := range r.rooms {
		if filter(room) {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return idLess(out[j].ID, out[i].ID)
	})
	return out
}

func (r *fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	r.rooms = append(r.rooms, *room)
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Room, error) {
	for _, room := range r.rooms {
		if room.ID == id {
			cp := room
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) GetByMembers(_ context.Context, a, b uuid.UUID) (*domain.Room, error) {
	for _, room := range r.rooms {
		if (room.OwnerID == a && room.OtherUserID == b) || (room.OwnerID == b && room.OtherUserID == a) {
			cp := room
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) ListByMember(_ context.Context, memberID uuid.UUID, search string, limit, offset int) ([]domain.Room, error) {
	return paginate(r.sorted(func(room domain.Room) bool {
		return room.HasMember(memberID) && titleMatch(room.Name, search)
	}), limit, offset), nil
}

func (r *fakeRoomRepo) CountByMember(_ context.Context, memberID uuid.UUID, search string) (int, error) {
	return len(r.sorted(func(room domain.Room) bool {
		return room.HasMember(memberID) && titleMatch(room.Name, search)
	})), nil
}

func (r *fakeRoomRepo) CountOwned(_ context.Context, memberID uuid.UUID) (int, error) {
	return len(r.sorted(func(room domain.Room) bool { return room.OwnerID == memberID })), nil
}

func (r *fakeRoomRepo) CountJoined(_ context.Context, memberID uuid.UUID) (int, error) {
	return len(r.sorted(func(room domain.Room) bool { return room.OtherUserID == memberID })), nil
}

func (r *fakeRoomRepo) CreateMessage(_ context.Context, msg *domain.Message) error {
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeRoomRepo) ListMessages(_ context.Context, roomID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if before != nil {
		for i, m := range out {
			if m.ID == *before {
				out = out[:i]
				break
			}
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *fakeRoomRepo) CountMessagesBySender(_ context.Context, senderID uuid.UUID) (int, error) {
	n := 0
	for _, m := range r.messages {
		if m.SenderID == senderID {
			n++
		}
	}
	return n, nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
	createErr     error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) sorted(filter func(domain.Notification) bool) []domain.Notification {
	var out []domain.Notification
	for _, n := range r.notifications {
		if filter(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return idLess(out[j].ID, out[i].ID)
	})
	return out
}

func (r *fakeNotificationRepo) ListByReceiver(_ context.Context, receiverID uuid.UUID, search string, limit, offset int) ([]domain.Notification, error) {
	return paginate(r.sorted(func(n domain.Notification) bool {
		return n.ReceiverID == receiverID && titleMatch(n.Title, search)
	}), limit, offset), nil
}

func (r *fakeNotificationRepo) CountByReceiver(_ context.Context, receiverID uuid.UUID, search string) (int, error) {
	return len(r.sorted(func(n domain.Notification) bool {
		return n.ReceiverID == receiverID && titleMatch(n.Title, search)
	})), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteReadOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []domain.Notification
	var deleted int64
	for _, n := range r.notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return deleted, nil
}

type fakeContactRepo struct {
	messages  []domain.ContactMessage
	createErr error
}

func (r *fakeContactRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.messages = append(r.messages, *msg)
	return nil
}

// Test principal constructors.

func testApplicant(name string) *domain.Principal {
	return &domain.Principal{
		ID:        uuid.New(),
		Kind:      domain.KindApplicant,
		Email:     strings.ToLower(name) + "@example.com",
		Name:      name,
		CreatedAt: time.Now(),
		Applicant: &domain.ApplicantProfile{
			Surname:    "Tester",
			Profession: "Engineer",
			Skills:     []string{"go"},
		},
	}
}

func testEmployer(name string) *domain.Principal {
	return &domain.Principal{
		ID:        uuid.New(),
		Kind:      domain.KindEmployer,
		Email:     strings.ToLower(name) + "@example.com",
		Name:      name,
		CreatedAt: time.Now(),
		Employer: &domain.EmployerProfile{
			Description: "A company",
			SocialLinks: map[string]string{},
		},
	}
}
