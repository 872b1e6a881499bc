package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/services"
)

// TokenHandler exchanges username+password for a bearer token.
type TokenHandler struct {
	Accounts *services.AccountService
	Manager  *auth.Manager
	TokenTTL time.Duration
}

func NewTokenHandler(accounts *services.AccountService, manager *auth.Manager, ttl time.Duration) *TokenHandler {
	return &TokenHandler{Accounts: accounts, Manager: manager, TokenTTL: ttl}
}

// Create: POST /token. Accepts the form encoding used by OAuth2 password
// flows as well as a JSON body. Bad username and bad password produce the
// same response.
func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	var username, password string
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if !httpx.Decode(w, r, &req) {
			return
		}
		username, password = req.Username, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, nil)
			return
		}
		username = r.Form.Get("username")
		password = r.Form.Get("password")
	}

	account, ok := h.Accounts.Authenticate(r.Context(), username, password)
	if !ok {
		httpx.Unauthorized(w)
		return
	}
	token, err := h.Manager.GenerateToken(account.Username, h.TokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "token_generation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
