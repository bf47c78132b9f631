package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkovic/jobster/internal/domain"
)

func registerInput(kind domain.Kind, email string) RegisterInput {
	in := RegisterInput{
		Kind:     kind,
		Email:    email,
		Name:     "Ana",
		Location: "Zagreb",
		Password: "Str0ngPass",
	}
	switch kind {
	case domain.KindApplicant:
		in.Applicant = &domain.ApplicantProfile{Surname: "Anic", Profession: "Engineer"}
	case domain.KindEmployer:
		in.Employer = &domain.EmployerProfile{Description: "A company"}
	}
	return in
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := NewAuthService(repo, "test-secret")

	resp, err := svc.Register(context.Background(), registerInput(domain.KindApplicant, "ana@example.com"))
	require.NoError(t, err)
	require.NotNil(t, resp.Principal)
	assert.NotEmpty(t, resp.AccessToken)

	stored := repo.principals[resp.Principal.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Str0ngPass", stored.PasswordHash)
	assert.True(t, verifyPassword("Str0ngPass", stored.PasswordHash))
	assert.False(t, verifyPassword("WrongPass1", stored.PasswordHash))
}

func TestRegisterDuplicateEmailSameKind(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput(domain.KindApplicant, "ana@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput(domain.KindApplicant, "ana@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Same email under the other kind is a distinct account.
	_, err = svc.Register(ctx, registerInput(domain.KindEmployer, "ana@example.com"))
	assert.NoError(t, err)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerInput(domain.KindApplicant, "ana@example.com"))
	require.NoError(t, err)
	require.Nil(t, repo.principals[resp.Principal.ID].LastLoginAt)

	logged, err := svc.Login(ctx, LoginInput{
		Kind:     domain.KindApplicant,
		Email:    "ana@example.com",
		Password: "Str0ngPass",
	})
	require.NoError(t, err)
	assert.NotNil(t, logged.Principal.LastLoginAt)
	assert.NotNil(t, repo.principals[resp.Principal.ID].LastLoginAt)
}

func TestLoginInvalidCredsIndistinguishable(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerInput(domain.KindApplicant, "ana@example.com"))
	require.NoError(t, err)

	// Wrong password and unknown email map to the same error.
	_, errBadPass := svc.Login(ctx, LoginInput{
		Kind: domain.KindApplicant, Email: "ana@example.com", Password: "WrongPass1",
	})
	_, errNoUser := svc.Login(ctx, LoginInput{
		Kind: domain.KindApplicant, Email: "nobody@example.com", Password: "Str0ngPass",
	})
	assert.ErrorIs(t, errBadPass, ErrInvalidCreds)
	assert.ErrorIs(t, errNoUser, ErrInvalidCreds)

	// Wrong kind is also just invalid credentials.
	_, errWrongKind := svc.Login(ctx, LoginInput{
		Kind: domain.KindEmployer, Email: "ana@example.com", Password: "Str0ngPass",
	})
	assert.ErrorIs(t, errWrongKind, ErrInvalidCreds)

	// A failed login never touches last_login_at.
	assert.Nil(t, repo.principals[resp.Principal.ID].LastLoginAt)
}

func TestLoginTokenClaims(t *testing.T) {
	repo := newFakePrincipalRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput(domain.KindEmployer, "corp@example.com"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginInput{
		Kind: domain.KindEmployer, Email: "corp@example.com", Password: "Str0ngPass",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, reg.Principal.ID.String(), claims["sub"])
	assert.Equal(t, "employer", claims["kind"])
}
