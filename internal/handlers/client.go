package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/validation"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

type clientRequest struct {
	ClientIDNumber string `json:"client_id_number"`
	Name           string `json:"name"`
	ContactPerson  string `json:"contact_person"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// Create: POST /clients/
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	var req clientRequest
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	client := models.Client{
		AccountID:      account.ID,
		ClientIDNumber: req.ClientIDNumber,
		Name:           req.Name,
		ContactPerson:  req.ContactPerson,
		Email:          req.Email,
		Phone:          req.Phone,
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client_creation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// List: GET /clients/
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	offset, limit := pagination(r)
	var clients []models.Client
	if err := h.DB.Where("account_id = ?", account.ID).
		Order("id").Offset(offset).Limit(limit).
		Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Get: GET /clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var client models.Client
	if err := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		First(&client).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Update: PUT /clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var req clientRequest
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	var client models.Client
	if err := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		First(&client).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	client.ClientIDNumber = req.ClientIDNumber
	client.Name = req.Name
	client.ContactPerson = req.ContactPerson
	client.Email = req.Email
	client.Phone = req.Phone
	if err := h.DB.Save(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: DELETE /clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	res := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		Delete(&models.Client{})
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client_delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.NotFound(w)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "client deleted"})
}
