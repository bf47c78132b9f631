package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkovic/jobster/internal/domain"
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	query := `
		INSERT INTO applications (id, posting_id, applicant_id, status, applied_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, a.ID, a.PostingID, a.ApplicantID, a.Status, a.AppliedAt)
	return err
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	query := `
		SELECT id, posting_id, applicant_id, status, applied_at
		FROM applications WHERE id = $1`
	var a domain.Application
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.PostingID, &a.ApplicantID, &a.Status, &a.AppliedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &a, err
}

func (r *ApplicationRepo) Exists(ctx context.Context, postingID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM applications WHERE posting_id = $1 AND applicant_id = $2)`,
		postingID, applicantID).Scan(&exists)
	return exists, err
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	return err
}

// CountsByPostings returns applicant counts for a page of postings in one
// query instead of one count per posting.
func (r *ApplicationRepo) CountsByPostings(ctx context.Context, postingIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(postingIDs))
	if len(postingIDs) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT posting_id, COUNT(*)
		FROM applications
		WHERE posting_id = ANY($1)
		GROUP BY posting_id`, postingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// AppliedSet reports which of the given postings the applicant has applied to.
func (r *ApplicationRepo) AppliedSet(ctx context.Context, applicantID uuid.UUID, postingIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	applied := make(map[uuid.UUID]bool, len(postingIDs))
	if len(postingIDs) == 0 {
		return applied, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT posting_id FROM applications
		WHERE applicant_id = $1 AND posting_id = ANY($2)`, applicantID, postingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		applied[id] = true
	}
	return applied, rows.Err()
}

func (r *ApplicationRepo) ListWithPostingByApplicant(ctx context.Context, applicantID uuid.UUID, search string, limit, offset int) ([]domain.ApplicationWithPosting, error) {
	query := `
		SELECT a.id, a.posting_id, a.applicant_id, a.status, a.applied_at,
			p.id, p.employer_id, p.title, p.description, p.location, p.is_active, p.created_at, e.name
		FROM applications a
		JOIN postings p ON a.posting_id = p.id
		JOIN principals e ON p.employer_id = e.id
		WHERE a.applicant_id = $1 AND ($2 = '' OR p.title ILIKE '%' || $2 || '%')
		ORDER BY a.applied_at DESC, a.id DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, applicantID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ApplicationWithPosting
	for rows.Next() {
		var item domain.ApplicationWithPosting
		if err := rows.Scan(
			&item.Application.ID, &item.Application.PostingID, &item.Application.ApplicantID,
			&item.Application.Status, &item.Application.AppliedAt,
			&item.Posting.ID, &item.Posting.EmployerID, &item.Posting.Title,
			&item.Posting.Description, &item.Posting.Location, &item.Posting.IsActive,
			&item.Posting.CreatedAt, &item.Posting.EmployerName,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ApplicationRepo) CountByApplicantSearch(ctx context.Context, applicantID uuid.UUID, search string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM applications a
		JOIN postings p ON a.posting_id = p.id
		WHERE a.applicant_id = $1 AND ($2 = '' OR p.title ILIKE '%' || $2 || '%')`,
		applicantID, search).Scan(&total)
	return total, err
}

func (r *ApplicationRepo) ListByPostingWithApplicant(ctx context.Context, postingID uuid.UUID) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.posting_id, a.applicant_id, a.status, a.applied_at,
			pr.name, ap.surname, ap.profession, pr.email
		FROM applications a
		JOIN principals pr ON a.applicant_id = pr.id
		JOIN applicant_profiles ap ON ap.principal_id = pr.id
		WHERE a.posting_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.pool.Query(ctx, query, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(
			&a.ID, &a.PostingID, &a.ApplicantID, &a.Status, &a.AppliedAt,
			&a.ApplicantName, &a.ApplicantSurname, &a.ApplicantProfession, &a.ApplicantEmail,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepo) CountByApplicant(ctx context.Context, applicantID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE applicant_id = $1`, applicantID).Scan(&total)
	return total, err
}

func (r *ApplicationRepo) CountByApplicantStatus(ctx context.Context, applicantID uuid.UUID, status domain.ApplicationStatus) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE applicant_id = $1 AND status = $2`,
		applicantID, status).Scan(&total)
	return total, err
}

func (r *ApplicationRepo) RecentByApplicant(ctx context.Context, applicantID uuid.UUID, limit int) ([]domain.Application, error) {
	query := `
		SELECT id, posting_id, applicant_id, status, applied_at
		FROM applications
		WHERE applicant_id = $1
		ORDER BY applied_at DESC, id DESC
		LIMIT $2`
	return r.scanApplications(ctx, query, applicantID, limit)
}

func (r *ApplicationRepo) CountForEmployer(ctx context.Context, employerID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM applications a
		JOIN postings p ON a.posting_id = p.id
		WHERE p.employer_id = $1`, employerID).Scan(&total)
	return total, err
}

func (r *ApplicationRepo) RecentForEmployer(ctx context.Context, employerID uuid.UUID, limit int) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.posting_id, a.applicant_id, a.status, a.applied_at
		FROM applications a
		JOIN postings p ON a.posting_id = p.id
		WHERE p.employer_id = $1
		ORDER BY a.applied_at DESC, a.id DESC
		LIMIT $2`
	return r.scanApplications(ctx, query, employerID, limit)
}

func (r *ApplicationRepo) scanApplications(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.PostingID, &a.ApplicantID, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
