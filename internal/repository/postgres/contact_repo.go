package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkovic/jobster/internal/domain"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func (r *ContactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt)
	return err
}
