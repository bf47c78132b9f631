package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/argon2"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/repository"
)

var (
	ErrEmailTaken = errors.New("email already registered for this account type")
	// ErrInvalidCreds covers both "no such account" and "wrong password" so
	// login responses cannot be used to enumerate registered emails.
	ErrInvalidCreds = errors.New("invalid email or password")
)

const (
	sessionTTL  = 24 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

type AuthService struct {
	principalRepo repository.PrincipalRepository
	jwtSecret     []byte
}

func NewAuthService(principalRepo repository.PrincipalRepository, jwtSecret string) *AuthService {
	return &AuthService{
		principalRepo: principalRepo,
		jwtSecret:     []byte(jwtSecret),
	}
}

type RegisterInput struct {
	Kind     domain.Kind `json:"kind"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Location string      `json:"location"`
	Password string      `json:"password"`

	Applicant *domain.ApplicantProfile `json:"applicant,omitempty"`
	Employer  *domain.EmployerProfile  `json:"employer,omitempty"`
}

type LoginInput struct {
	Kind     domain.Kind `json:"kind"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Remember bool        `json:"remember"`
}

type AuthResponse struct {
	Principal   *domain.Principal `json:"principal"`
	AccessToken string            `json:"access_token"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	existing, err := s.principalRepo.GetByEmailKind(ctx, input.Email, input.Kind)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p := &domain.Principal{
		ID:           uuid.New(),
		Kind:         input.Kind,
		Email:        strings.TrimSpace(input.Email),
		Name:         strings.TrimSpace(input.Name),
		Location:     strings.TrimSpace(input.Location),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	switch input.Kind {
	case domain.KindApplicant:
		prof := *input.Applicant
		if prof.Skills == nil {
			prof.Skills = []string{}
		}
		if prof.Experience == nil {
			prof.Experience = []domain.ExperienceEntry{}
		}
		p.Applicant = &prof
	case domain.KindEmployer:
		prof := *input.Employer
		if prof.SocialLinks == nil {
			prof.SocialLinks = map[string]string{}
		}
		p.Employer = &prof
	default:
		return nil, fmt.Errorf("unknown principal kind %q", input.Kind)
	}

	if err := s.principalRepo.Create(ctx, p); err != nil {
		// The unique constraint catches the race the pre-check above misses.
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating principal: %w", err)
	}

	log.Printf("Registered %s %s", p.Kind, p.Name)

	token, err := s.generateToken(p.ID, p.Kind, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{Principal: p, AccessToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	p, err := s.principalRepo.GetByEmailKind(ctx, input.Email, input.Kind)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrInvalidCreds
	}

	if !verifyPassword(input.Password, p.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	now := time.Now()
	if err := s.principalRepo.UpdateLastLogin(ctx, p.ID, now); err != nil {
		return nil, fmt.Errorf("updating last login: %w", err)
	}
	p.LastLoginAt = &now

	ttl := sessionTTL
	if input.Remember {
		ttl = rememberTTL
	}
	token, err := s.generateToken(p.ID, p.Kind, ttl)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	log.Printf("Logging in %s %s", p.Kind, p.Name)

	return &AuthResponse{Principal: p, AccessToken: token}, nil
}

func (s *AuthService) GetPrincipal(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	return s.principalRepo.GetByID(ctx, id)
}

func (s *AuthService) generateToken(id uuid.UUID, kind domain.Kind, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  id.String(),
		"kind": string(kind),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
