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

func seedNotification(repo *fakeNotificationRepo, receiverID uuid.UUID, title string, read bool, at time.Time) uuid.UUID {
	n := domain.Notification{
		ID:         uuid.New(),
		ReceiverID: receiverID,
		Title:      title,
		Read:       read,
		CreatedAt:  at,
	}
	repo.notifications = append(repo.notifications, n)
	return n.ID
}

func TestNotificationListMineScopedToReceiver(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	ana := testApplicant("Ana")
	ivo := testApplicant("Ivo")

	now := time.Now()
	for i := 0; i < 7; i++ {
		seedNotification(repo, ana.ID, "New application", false, now.Add(time.Duration(i)*time.Minute))
	}
	seedNotification(repo, ivo.ID, "Other inbox", false, now)

	page1, err := svc.ListMine(context.Background(), ana, 1, "")
	require.NoError(t, err)
	assert.Len(t, page1.Items, 6)
	assert.Equal(t, 7, page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	for _, n := range page1.Items {
		assert.Equal(t, ana.ID, n.ReceiverID)
	}

	page2, err := svc.ListMine(context.Background(), ana, 2, "")
	require.NoError(t, err)
	assert.Len(t, page2.Items, 1)
}

func TestNotificationMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	ana := testApplicant("Ana")
	ivo := testApplicant("Ivo")

	id := seedNotification(repo, ana.ID, "New application", false, time.Now())

	// Someone else's notification reads as missing, not forbidden.
	err := svc.MarkRead(context.Background(), ivo, id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.False(t, repo.notifications[0].Read)

	err = svc.MarkRead(context.Background(), ana, id)
	require.NoError(t, err)
	assert.True(t, repo.notifications[0].Read)

	err = svc.MarkRead(context.Background(), ana, uuid.New())
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestPruneNotifications(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewMaintenanceService(repo, 90)
	ana := testApplicant("Ana")

	now := time.Now()
	seedNotification(repo, ana.ID, "old read", true, now.AddDate(0, 0, -120))
	seedNotification(repo, ana.ID, "old unread", false, now.AddDate(0, 0, -120))
	seedNotification(repo, ana.ID, "fresh read", true, now.AddDate(0, 0, -10))

	require.NoError(t, svc.PruneNotifications(context.Background()))

	// Only read notifications past retention go; unread ones stay forever.
	require.Len(t, repo.notifications, 2)
	titles := []string{repo.notifications[0].Title, repo.notifications[1].Title}
	assert.Contains(t, titles, "old unread")
	assert.Contains(t, titles, "fresh read")
}
