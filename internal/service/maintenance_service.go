package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmarkovic/jobster/internal/repository"
)

// MaintenanceService runs scheduled housekeeping. Currently a single job:
// pruning read notifications past the retention window.
type MaintenanceService struct {
	notificationRepo repository.NotificationRepository
	retention        time.Duration
	cron             *cron.Cron
}

func NewMaintenanceService(notificationRepo repository.NotificationRepository, retentionDays int) *MaintenanceService {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &MaintenanceService{
		notificationRepo: notificationRepo,
		retention:        time.Duration(retentionDays) * 24 * time.Hour,
		cron:             cron.New(),
	}
}

// Start schedules the pruning job. An empty spec disables scheduling.
func (s *MaintenanceService) Start(spec string) error {
	if spec == "" {
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.PruneNotifications(context.Background()); err != nil {
			log.Printf("ERROR pruning notifications: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling prune job: %w", err)
	}
	s.cron.Start()
	return nil
}

func (s *MaintenanceService) Stop() {
	s.cron.Stop()
}

func (s *MaintenanceService) PruneNotifications(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.notificationRepo.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("Pruned %d read notifications older than %s", deleted, cutoff.Format(time.RFC3339))
	}
	return nil
}
