package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/diewo77/go-quotations/internal/validation"
)

type AccountHandler struct {
	Svc *services.AccountService
}

func NewAccountHandler(svc *services.AccountService) *AccountHandler {
	return &AccountHandler{Svc: svc}
}

// Create: POST /accounts/ — open registration. The first account registered
// in the deployment becomes the admin.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("username", req.Username, v)
	validation.Required("password", req.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	account, err := h.Svc.Create(req.Username, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, httpx.CodeConflict, nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "account_creation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, account)
}

// Me: GET /accounts/me — the caller's own account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, account)
}

// List: GET /accounts/ — admin only.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	accounts, err := h.Svc.List(offset, limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_accounts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, accounts)
}

// Update: PUT /accounts/{id} — admin only.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var req struct {
		FullName *string `json:"full_name"`
		Password *string `json:"password"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	account, err := h.Svc.Update(id, services.UpdateInput{FullName: req.FullName, Password: req.Password})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "account_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

// Delete: POST /accounts/{id}/delete — admin only, re-confirms the admin's
// own password. Wrong password and unknown target share one response so the
// caller cannot probe which accounts exist.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	admin, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	if id == admin.ID {
		httpx.JSONError(w, http.StatusBadRequest, "cannot_delete_own_account", nil)
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	if !h.Svc.DeleteWithPassword(id, admin, req.Password) {
		httpx.Unauthorized(w)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "account and all associated data deleted"})
}
