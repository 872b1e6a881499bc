package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/services"
)

func newTokenHandler(t *testing.T) (*TokenHandler, *auth.Manager) {
	t.Helper()
	db := setupTestDB(t)
	accounts := services.NewAccountService(db)
	if _, err := accounts.Create("owner", "", "secret"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	manager := auth.NewManager("test-secret", accounts.ByUsername)
	return NewTokenHandler(accounts, manager, 30*time.Minute), manager
}

func TestTokenCreateJSON(t *testing.T) {
	h, manager := newTokenHandler(t)

	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/token", `{"username":"owner","password":"secret"}`, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected bearer, got %q", resp.TokenType)
	}
	subject, err := manager.ParseSubject(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if subject != "owner" {
		t.Fatalf("expected subject owner, got %q", subject)
	}
}

func TestTokenCreateForm(t *testing.T) {
	h, _ := newTokenHandler(t)

	form := url.Values{"username": {"owner"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestTokenCreateBadCredentials(t *testing.T) {
	h, _ := newTokenHandler(t)

	badPassword := httptest.NewRecorder()
	h.Create(badPassword, jsonRequest(http.MethodPost, "/token", `{"username":"owner","password":"nope"}`, nil))
	badUser := httptest.NewRecorder()
	h.Create(badUser, jsonRequest(http.MethodPost, "/token", `{"username":"ghost","password":"secret"}`, nil))

	if badPassword.Code != http.StatusUnauthorized || badUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", badPassword.Code, badUser.Code)
	}
	// Unknown username and wrong password must be indistinguishable.
	if badPassword.Body.String() != badUser.Body.String() {
		t.Fatalf("responses differ: %q vs %q", badPassword.Body.String(), badUser.Body.String())
	}
}
