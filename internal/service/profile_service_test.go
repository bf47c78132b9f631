package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkovic/jobster/internal/domain"
)

func TestApplicantSummary(t *testing.T) {
	postings := &fakePostingRepo{}
	apps := &fakeApplicationRepo{postings: postings}
	rooms := &fakeRoomRepo{}
	svc := NewProfileService(postings, apps, rooms)

	ana := testApplicant("Ana")
	corp := testEmployer("Corp")
	ctx := context.Background()

	posting := domain.Posting{ID: uuid.New(), EmployerID: corp.ID, Title: "Go Developer", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, postings.Create(ctx, &posting))

	now := time.Now()
	statuses := []domain.ApplicationStatus{domain.StatusPending, domain.StatusPending, domain.StatusAccepted, domain.StatusRejected}
	for i, st := range statuses {
		require.NoError(t, apps.Create(ctx, &domain.Application{
			ID: uuid.New(), PostingID: posting.ID, ApplicantID: ana.ID,
			Status: st, AppliedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	room := domain.Room{ID: uuid.New(), Name: "r", OwnerID: ana.ID, OtherUserID: corp.ID, CreatedAt: now}
	require.NoError(t, rooms.Create(ctx, &room))
	require.NoError(t, rooms.CreateMessage(ctx, &domain.Message{ID: uuid.New(), RoomID: room.ID, SenderID: ana.ID, Content: "hi", CreatedAt: now}))

	sum, err := svc.Summary(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, sum.ID)
	assert.Equal(t, 1, sum.RoomsOwned)
	assert.Equal(t, 0, sum.RoomsJoined)
	assert.Equal(t, 1, sum.TotalRooms)
	assert.Equal(t, 1, sum.TotalMessages)

	require.NotNil(t, sum.Applicant)
	assert.Nil(t, sum.Employer)
	assert.Equal(t, 4, sum.Applicant.TotalApplications)
	assert.Equal(t, 2, sum.Applicant.PendingApplications)
	assert.Equal(t, 1, sum.Applicant.AcceptedApplications)
	assert.Len(t, sum.Applicant.RecentApplications, 4)
	assert.NotNil(t, sum.Applicant.Skills)
}

func TestApplicantSummaryRecentWindow(t *testing.T) {
	postings := &fakePostingRepo{}
	apps := &fakeApplicationRepo{postings: postings}
	svc := NewProfileService(postings, apps, &fakeRoomRepo{})

	ana := testApplicant("Ana")
	corp := testEmployer("Corp")
	ctx := context.Background()

	posting := domain.Posting{ID: uuid.New(), EmployerID: corp.ID, Title: "Go Developer", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, postings.Create(ctx, &posting))

	now := time.Now()
	for i := 0; i < 8; i++ {
		require.NoError(t, apps.Create(ctx, &domain.Application{
			ID: uuid.New(), PostingID: posting.ID, ApplicantID: ana.ID,
			Status: domain.StatusPending, AppliedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	sum, err := svc.Summary(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 8, sum.Applicant.TotalApplications)
	require.Len(t, sum.Applicant.RecentApplications, 5)
	// Newest first.
	assert.True(t, sum.Applicant.RecentApplications[0].AppliedAt.After(sum.Applicant.RecentApplications[4].AppliedAt))
}

func TestEmployerSummary(t *testing.T) {
	postings := &fakePostingRepo{}
	apps := &fakeApplicationRepo{postings: postings}
	svc := NewProfileService(postings, apps, &fakeRoomRepo{})

	corp := testEmployer("Corp")
	ana := testApplicant("Ana")
	ctx := context.Background()

	now := time.Now()
	active := domain.Posting{ID: uuid.New(), EmployerID: corp.ID, Title: "Open", IsActive: true, CreatedAt: now}
	closed := domain.Posting{ID: uuid.New(), EmployerID: corp.ID, Title: "Closed", IsActive: false, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, postings.Create(ctx, &active))
	require.NoError(t, postings.Create(ctx, &closed))

	require.NoError(t, apps.Create(ctx, &domain.Application{
		ID: uuid.New(), PostingID: active.ID, ApplicantID: ana.ID,
		Status: domain.StatusPending, AppliedAt: now,
	}))

	sum, err := svc.Summary(ctx, corp)
	require.NoError(t, err)
	require.NotNil(t, sum.Employer)
	assert.Nil(t, sum.Applicant)
	assert.Equal(t, 2, sum.Employer.TotalPostings)
	assert.Equal(t, 1, sum.Employer.ActivePostings)
	assert.Equal(t, 1, sum.Employer.TotalApplicants)
	assert.Len(t, sum.Employer.RecentPostings, 2)
	assert.Len(t, sum.Employer.RecentApplications, 1)
	assert.NotNil(t, sum.Employer.SocialLinks)
}

func TestSummaryRejectsUnknownKind(t *testing.T) {
	svc := NewProfileService(&fakePostingRepo{}, &fakeApplicationRepo{}, &fakeRoomRepo{})
	bad := testApplicant("Ana")
	bad.Kind = domain.Kind("ghost")

	_, err := svc.Summary(context.Background(), bad)
	assert.Error(t, err)
}
