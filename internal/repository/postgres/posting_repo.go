package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkovic/jobster/internal/domain"
)

type PostingRepo struct {
	pool *pgxpool.Pool
}

func NewPostingRepo(pool *pgxpool.Pool) *PostingRepo {
	return &PostingRepo{pool: pool}
}

func (r *PostingRepo) Create(ctx context.Context, p *domain.Posting) error {
	query := `
		INSERT INTO postings (id, employer_id, title, description, location, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.EmployerID, p.Title, p.Description, p.Location, p.IsActive, p.CreatedAt,
	)
	return err
}

func (r *PostingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Posting, error) {
	query := `
		SELECT p.id, p.employer_id, p.title, p.description, p.location, p.is_active, p.created_at, e.name
		FROM postings p
		JOIN principals e ON p.employer_id = e.id
		WHERE p.id = $1`
	var p domain.Posting
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EmployerID, &p.Title, &p.Description, &p.Location,
		&p.IsActive, &p.CreatedAt, &p.EmployerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &p, err
}

// List returns one page of the catalog, newest first. The id tie-break keeps
// pagination deterministic when rows share a creation timestamp.
func (r *PostingRepo) List(ctx context.Context, search string, limit, offset int) ([]domain.Posting, error) {
	query := `
		SELECT p.id, p.employer_id, p.title, p.description, p.location, p.is_active, p.created_at, e.name
		FROM postings p
		JOIN principals e ON p.employer_id = e.id
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%')
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`
	return r.scanPostings(ctx, query, search, limit, offset)
}

func (r *PostingRepo) Count(ctx context.Context, search string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM postings
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')`, search).Scan(&total)
	return total, err
}

func (r *PostingRepo) ListByEmployer(ctx context.Context, employerID uuid.UUID, search string, limit, offset int) ([]domain.Posting, error) {
	query := `
		SELECT p.id, p.employer_id, p.title, p.description, p.location, p.is_active, p.created_at, e.name
		FROM postings p
		JOIN principals e ON p.employer_id = e.id
		WHERE p.employer_id = $1 AND ($2 = '' OR p.title ILIKE '%' || $2 || '%')
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4`
	return r.scanPostings(ctx, query, employerID, search, limit, offset)
}

func (r *PostingRepo) CountByEmployer(ctx context.Context, employerID uuid.UUID, search string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM postings
		WHERE employer_id = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%')`,
		employerID, search).Scan(&total)
	return total, err
}

func (r *PostingRepo) CountActiveByEmployer(ctx context.Context, employerID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM postings WHERE employer_id = $1 AND is_active`, employerID).Scan(&total)
	return total, err
}

func (r *PostingRepo) RecentByEmployer(ctx context.Context, employerID uuid.UUID, limit int) ([]domain.Posting, error) {
	query := `
		SELECT p.id, p.employer_id, p.title, p.description, p.location, p.is_active, p.created_at, e.name
		FROM postings p
		JOIN principals e ON p.employer_id = e.id
		WHERE p.employer_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2`
	return r.scanPostings(ctx, query, employerID, limit)
}

func (r *PostingRepo) scanPostings(ctx context.Context, query string, args ...any) ([]domain.Posting, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []domain.Posting
	for rows.Next() {
		var p domain.Posting
		if err := rows.Scan(
			&p.ID, &p.EmployerID, &p.Title, &p.Description, &p.Location,
			&p.IsActive, &p.CreatedAt, &p.EmployerName,
		); err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}
