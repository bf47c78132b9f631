package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalLoader resolves a token subject to the full principal, so every
// handler receives the authenticated identity explicitly instead of looking
// it up ambiently.
type PrincipalLoader func(ctx context.Context, id uuid.UUID) (*domain.Principal, error)

func Auth(jwtSecret string, load PrincipalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Missing or invalid token")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, "Invalid token claims")
				return
			}

			sub, _ := claims.GetSubject()
			id, err := uuid.Parse(sub)
			if err != nil {
				unauthorized(w, "Invalid subject in token")
				return
			}

			principal, err := load(r.Context(), id)
			if err != nil {
				http.Error(w, `{"error":{"code":"INTERNAL","message":"Something went wrong"}}`, http.StatusInternalServerError)
				return
			}
			if principal == nil {
				unauthorized(w, "Unknown principal")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"`+message+`"}}`, http.StatusUnauthorized)
}

// GetPrincipal extracts the authenticated principal from request context.
func GetPrincipal(ctx context.Context) *domain.Principal {
	return ctx.Value(principalKey).(*domain.Principal)
}
