package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkovic/jobster/internal/domain"
)

type stubMailer struct {
	sent []*domain.ContactMessage
	err  error
}

func (m *stubMailer) SendContactNotification(_ context.Context, msg *domain.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func contactInput() ContactInput {
	return ContactInput{
		Name:    "Ana",
		Email:   "ana@example.com",
		Subject: "Hello",
		Message: "I have a question.",
	}
}

func TestContactSubmitSuccess(t *testing.T) {
	repo := &fakeContactRepo{}
	mailer := &stubMailer{}
	svc := NewContactService(repo, mailer)

	status, err := svc.Submit(context.Background(), contactInput())
	require.NoError(t, err)
	assert.Equal(t, ContactSuccess, status)
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "Hello", repo.messages[0].Subject)
	require.Len(t, mailer.sent, 1)
}

func TestContactSubmitMailFailureStillPersists(t *testing.T) {
	repo := &fakeContactRepo{}
	mailer := &stubMailer{err: errors.New("smtp down")}
	svc := NewContactService(repo, mailer)

	status, err := svc.Submit(context.Background(), contactInput())
	require.NoError(t, err)
	assert.Equal(t, ContactWarning, status)
	// Stored exactly once despite the delivery failure.
	assert.Len(t, repo.messages, 1)
}

func TestContactSubmitStoreFailure(t *testing.T) {
	repo := &fakeContactRepo{createErr: errors.New("db down")}
	mailer := &stubMailer{}
	svc := NewContactService(repo, mailer)

	status, err := svc.Submit(context.Background(), contactInput())
	assert.Error(t, err)
	assert.Equal(t, ContactError, status)
	// Nothing stored, nothing mailed.
	assert.Empty(t, repo.messages)
	assert.Empty(t, mailer.sent)
}
