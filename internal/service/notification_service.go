package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

const notificationsPageSize = 6

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListMine returns one page of the viewer's notifications, newest first.
func (s *NotificationService) ListMine(ctx context.Context, viewer *domain.Principal, page int, search string) (domain.Paged[domain.Notification], error) {
	page = domain.ClampPage(page)
	search = strings.TrimSpace(search)

	var empty domain.Paged[domain.Notification]

	total, err := s.notificationRepo.CountByReceiver(ctx, viewer.ID, search)
	if err != nil {
		return empty, fmt.Errorf("counting notifications: %w", err)
	}

	items, err := s.notificationRepo.ListByReceiver(ctx, viewer.ID, search, notificationsPageSize, (page-1)*notificationsPageSize)
	if err != nil {
		return empty, fmt.Errorf("listing notifications: %w", err)
	}

	return domain.NewPaged(items, total, page, notificationsPageSize), nil
}

// MarkRead marks one of the viewer's own notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, viewer *domain.Principal, id uuid.UUID) error {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil || n.ReceiverID != viewer.ID {
		return ErrNotificationNotFound
	}
	return s.notificationRepo.MarkRead(ctx, id)
}
