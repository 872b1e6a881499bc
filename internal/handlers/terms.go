package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/diewo77/go-quotations/internal/validation"
)

// TermsHandler serves the per-account terms text printed on quotations.
type TermsHandler struct {
	DB *gorm.DB
}

func NewTermsHandler(db *gorm.DB) *TermsHandler {
	return &TermsHandler{DB: db}
}

// Get: GET /terms-conditions/ — creates the default boilerplate on first
// read if the account never had a row.
func (h *TermsHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	terms, err := services.EnsureTerms(h.DB, account.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "terms_load_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, terms)
}

// Update: PUT /terms-conditions/
func (h *TermsHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	var req struct {
		Content string `json:"content"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("content", req.Content, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	terms, err := services.UpdateTerms(h.DB, account.ID, req.Content)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "terms_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, terms)
}
