package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/validation"
)

// UserHandler manages the advisors of the caller's account.
type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// Create: POST /users/ — the advisor's password is generated server-side;
// accounts never choose it.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	hash, err := generatedPasswordHash()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "user_creation_failed", nil)
		return
	}
	user := models.User{
		AccountID: account.ID,
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Password:  hash,
		IsActive:  true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, httpx.CodeConflict, nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "user_creation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

// List: GET /users/
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	offset, limit := pagination(r)
	var users []models.User
	if err := h.DB.Where("account_id = ?", account.ID).
		Order("id").Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_users", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

// Update: PUT /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var req struct {
		Email    *string `json:"email"`
		FullName *string `json:"full_name"`
		Phone    *string `json:"phone"`
		IsActive *bool   `json:"is_active"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	var user models.User
	if err := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		First(&user).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := h.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusConflict, httpx.CodeConflict, nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "user_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Delete: DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	res := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		Delete(&models.User{})
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "user_delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.NotFound(w)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// generatedPasswordHash makes a random url-safe password and returns its
// bcrypt hash. The plaintext is discarded; advisors cannot log in today.
func generatedPasswordHash() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	password := base64.RawURLEncoding.EncodeToString(raw)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
