package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/models"
)

type ctxKey string

const accountCtxKey = ctxKey("account")

// AccountResolver maps a token subject (username) to a live account. Set it
// during app bootstrap; a token whose subject no longer resolves is treated
// exactly like a bad signature.
type AccountResolver func(ctx context.Context, username string) (*models.Account, bool)

// Manager issues and validates the stateless HS256 bearer tokens. Expiry is
// the only lifetime control; there is no revocation list.
type Manager struct {
	secret   []byte
	resolver AccountResolver
}

func NewManager(secret string, resolver AccountResolver) *Manager {
	return &Manager{secret: []byte(secret), resolver: resolver}
}

// GenerateToken signs a token with subject = username valid for ttl.
func (m *Manager) GenerateToken(username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseSubject validates signature and expiry and returns the subject.
// Every failure mode collapses to a single error so callers cannot build an
// oracle out of the responses.
func (m *Manager) ParseSubject(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

// WithAccount stores the authenticated account in context.
func WithAccount(ctx context.Context, account *models.Account) context.Context {
	return context.WithValue(ctx, accountCtxKey, account)
}

// AccountFromContext extracts the authenticated account.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(accountCtxKey).(*models.Account)
	return account, ok && account != nil
}

// Middleware attaches the account to the request context when a valid bearer
// token is presented. It never rejects by itself; RequireAccount does that.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if username, err := m.ParseSubject(token); err == nil {
				if account, found := m.resolver(r.Context(), username); found {
					r = r.WithContext(WithAccount(r.Context(), account))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAccount rejects requests that carry no resolved account with the
// generic 401.
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AccountFromContext(r.Context()); !ok {
			httpx.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects authenticated non-admin accounts with 403. Must be
// wrapped inside RequireAccount (or tolerate the 401 it emits itself).
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}
		if !account.IsAdmin() {
			httpx.JSONError(w, http.StatusForbidden, httpx.CodeForbidden, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
