package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diewo77/go-quotations/internal/models"
)

func testResolver(accounts map[string]*models.Account) AccountResolver {
	return func(ctx context.Context, username string) (*models.Account, bool) {
		a, ok := accounts[username]
		return a, ok
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", nil)
	token, err := m.GenerateToken("owner", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	subject, err := m.ParseSubject(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if subject != "owner" {
		t.Fatalf("expected subject owner, got %q", subject)
	}
}

func TestParseSubjectRejections(t *testing.T) {
	m := NewManager("test-secret", nil)

	if _, err := m.ParseSubject("not-a-token"); err == nil {
		t.Fatalf("expected garbage token to fail")
	}

	expired, err := m.GenerateToken("owner", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseSubject(expired); err == nil {
		t.Fatalf("expected expired token to fail")
	}

	other := NewManager("other-secret", nil)
	foreign, err := other.GenerateToken("owner", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseSubject(foreign); err == nil {
		t.Fatalf("expected token signed with another secret to fail")
	}

	empty, err := m.GenerateToken("", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseSubject(empty); err == nil {
		t.Fatalf("expected empty subject to fail")
	}
}

func TestMiddlewareAttachesAccount(t *testing.T) {
	owner := &models.Account{ID: 1, Username: "owner", Role: models.RoleAdmin}
	m := NewManager("test-secret", testResolver(map[string]*models.Account{"owner": owner}))

	var got *models.Account
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = AccountFromContext(r.Context())
	}))

	token, err := m.GenerateToken("owner", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if got == nil || got.ID != owner.ID {
		t.Fatalf("expected account attached to context")
	}

	// Stale subject: token is valid but the account is gone.
	gone, err := m.GenerateToken("deleted", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+gone)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if got != nil {
		t.Fatalf("expected no account for unresolvable subject")
	}
}

func TestRequireAccount(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	RequireAccount(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without account, got %d", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected WWW-Authenticate header")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithAccount(req.Context(), &models.Account{ID: 1}))
	w = httptest.NewRecorder()
	RequireAccount(next).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with account, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithAccount(req.Context(), &models.Account{ID: 2, Role: models.RoleUser}))
	w := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithAccount(req.Context(), &models.Account{ID: 1, Role: models.RoleAdmin}))
	w = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without account, got %d", w.Code)
	}
}
