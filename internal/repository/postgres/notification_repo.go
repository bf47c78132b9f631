package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkovic/jobster/internal/domain"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, receiver_id, title, body, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, n.ID, n.ReceiverID, n.Title, n.Body, n.Read, n.CreatedAt)
	return err
}

func (r *NotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := `SELECT id, receiver_id, title, body, read, created_at FROM notifications WHERE id = $1`
	var n domain.Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.ReceiverID, &n.Title, &n.Body, &n.Read, &n.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &n, err
}

func (r *NotificationRepo) ListByReceiver(ctx context.Context, receiverID uuid.UUID, search string, limit, offset int) ([]domain.Notification, error) {
	query := `
		SELECT id, receiver_id, title, body, read, created_at
		FROM notifications
		WHERE receiver_id = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, receiverID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.ReceiverID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepo) CountByReceiver(ctx context.Context, receiverID uuid.UUID, search string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE receiver_id = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%')`,
		receiverID, search).Scan(&total)
	return total, err
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	return err
}

func (r *NotificationRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
