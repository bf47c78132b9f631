package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkovic/jobster/internal/domain"
)

type PrincipalRepo struct {
	pool *pgxpool.Pool
}

func NewPrincipalRepo(pool *pgxpool.Pool) *PrincipalRepo {
	return &PrincipalRepo{pool: pool}
}

// Create inserts the principal row and its variant profile row in one
// transaction. A failure on either insert leaves no partial state behind.
func (r *PrincipalRepo) Create(ctx context.Context, p *domain.Principal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO principals (id, kind, email, name, location, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Kind, p.Email, p.Name, p.Location, p.PasswordHash, p.CreatedAt,
	)
	if err != nil {
		return err
	}

	switch p.Kind {
	case domain.KindApplicant:
		_, err = tx.Exec(ctx, `
			INSERT INTO applicant_profiles (principal_id, surname, profession, skills, experience, current_company)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.Applicant.Surname, p.Applicant.Profession,
			p.Applicant.Skills, p.Applicant.Experience, p.Applicant.CurrentCompany,
		)
	case domain.KindEmployer:
		_, err = tx.Exec(ctx, `
			INSERT INTO employer_profiles (principal_id, description, social_links)
			VALUES ($1, $2, $3)`,
			p.ID, p.Employer.Description, p.Employer.SocialLinks,
		)
	default:
		return fmt.Errorf("unknown principal kind %q", p.Kind)
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PrincipalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	return r.scanPrincipal(ctx, `
		SELECT id, kind, email, name, location, password_hash, created_at, last_login_at
		FROM principals WHERE id = $1`, id)
}

func (r *PrincipalRepo) GetByEmailKind(ctx context.Context, email string, kind domain.Kind) (*domain.Principal, error) {
	return r.scanPrincipal(ctx, `
		SELECT id, kind, email, name, location, password_hash, created_at, last_login_at
		FROM principals WHERE email = $1 AND kind = $2`, email, kind)
}

func (r *PrincipalRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE principals SET last_login_at = $1 WHERE id = $2`, at, id)
	return err
}

func (r *PrincipalRepo) scanPrincipal(ctx context.Context, query string, args ...any) (*domain.Principal, error) {
	var p domain.Principal
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Kind, &p.Email, &p.Name, &p.Location,
		&p.PasswordHash, &p.CreatedAt, &p.LastLoginAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadProfile(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrincipalRepo) loadProfile(ctx context.Context, p *domain.Principal) error {
	switch p.Kind {
	case domain.KindApplicant:
		var prof domain.ApplicantProfile
		err := r.pool.QueryRow(ctx, `
			SELECT surname, profession, skills, experience, current_company
			FROM applicant_profiles WHERE principal_id = $1`, p.ID).Scan(
			&prof.Surname, &prof.Profession, &prof.Skills,
			&prof.Experience, &prof.CurrentCompany,
		)
		if err != nil {
			return fmt.Errorf("loading applicant profile: %w", err)
		}
		p.Applicant = &prof
	case domain.KindEmployer:
		var prof domain.EmployerProfile
		err := r.pool.QueryRow(ctx, `
			SELECT description, social_links
			FROM employer_profiles WHERE principal_id = $1`, p.ID).Scan(
			&prof.Description, &prof.SocialLinks,
		)
		if err != nil {
			return fmt.Errorf("loading employer profile: %w", err)
		}
		p.Employer = &prof
	}
	return nil
}
