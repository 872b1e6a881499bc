package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/validation"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (pr productRequest) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", pr.Name, v)
	validation.NonNegativeFloat("price", pr.Price, v)
	return v
}

// Create: POST /products/
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	var req productRequest
	if !httpx.Decode(w, r, &req) {
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	product := models.Product{
		AccountID:   account.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_creation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

// List: GET /products/
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	offset, limit := pagination(r)
	var products []models.Product
	if err := h.DB.Where("account_id = ?", account.ID).
		Order("id").Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

// Get: GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var product models.Product
	if err := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		First(&product).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Update: PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var req productRequest
	if !httpx.Decode(w, r, &req) {
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	var product models.Product
	if err := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		First(&product).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	if err := h.DB.Save(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Delete: DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	res := h.DB.Where("id = ? AND account_id = ?", id, account.ID).
		Delete(&models.Product{})
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.NotFound(w)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
