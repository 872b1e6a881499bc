package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/pdf"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/diewo77/go-quotations/internal/validation"
)

type QuotationHandler struct {
	DB        *gorm.DB
	Svc       *services.QuotationService
	UploadDir string
}

func NewQuotationHandler(db *gorm.DB, svc *services.QuotationService, uploadDir string) *QuotationHandler {
	return &QuotationHandler{DB: db, Svc: svc, UploadDir: uploadDir}
}

// Create: POST /quotations/ — tax percentage and other charges are accepted
// as-is, including negative or >100 values; ranging them is an open product
// question, not a server rule.
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	var req struct {
		ClientID       uint      `json:"client_id"`
		UserID         uint      `json:"user_id"`
		ValidUntilDate time.Time `json:"valid_until_date"`
		TaxPercentage  float64   `json:"tax_percentage"`
		OtherCharges   float64   `json:"other_charges"`
		Status         string    `json:"status"`
		Items          []struct {
			ProductID   uint    `json:"product_id"`
			Description string  `json:"description"`
			UnitPrice   float64 `json:"unit_price"`
			Quantity    int     `json:"quantity"`
			IsTaxable   bool    `json:"is_taxable"`
		} `json:"items"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	if req.ClientID == 0 {
		v["client_id"] = "required"
	}
	if req.UserID == 0 {
		v["user_id"] = "required"
	}
	for _, it := range req.Items {
		if it.ProductID == 0 {
			v["items"] = "product_required"
		}
		validation.NonNegativeInt("quantity", it.Quantity, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}

	in := services.CreateInput{
		ClientID:       req.ClientID,
		UserID:         req.UserID,
		ValidUntilDate: req.ValidUntilDate,
		TaxPercentage:  req.TaxPercentage,
		OtherCharges:   req.OtherCharges,
		Status:         req.Status,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, services.ItemInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			IsTaxable:   it.IsTaxable,
		})
	}

	quotation, err := h.Svc.Create(account.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// advisor, client, or product outside the caller's account
			httpx.NotFound(w)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// concurrent creation raced on the quotation number
			httpx.JSONError(w, http.StatusConflict, httpx.CodeConflict, nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "quotation_creation_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, quotation)
}

// List: GET /quotations/
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	offset, limit := pagination(r)
	quotations, total, err := h.Svc.List(account.ID, offset, limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotations", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":  quotations,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get: GET /quotations/{id}
func (h *QuotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	quotation, err := h.Svc.Get(account.ID, id)
	if err != nil {
		httpx.NotFound(w)
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

// Update: PUT /quotations/{id} — header fields only; items and the stored
// totals are immutable after creation.
func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var req struct {
		Status         *string    `json:"status"`
		ValidUntilDate *time.Time `json:"valid_until_date"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	quotation, err := h.Svc.UpdateHeader(account.ID, id, services.HeaderUpdate{
		Status:         req.Status,
		ValidUntilDate: req.ValidUntilDate,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "quotation_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

// Delete: DELETE /quotations/{id}
func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	if err := h.Svc.Delete(account.ID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "quotation_delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "quotation deleted"})
}

// PDF: GET /quotations/{id}/pdf — renders the stored aggregate with the
// shared company profile and the account's terms.
func (h *QuotationHandler) PDF(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.AccountFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	quotation, err := h.Svc.Get(account.ID, id)
	if err != nil {
		httpx.NotFound(w)
		return
	}
	profile, err := ensureCompanyProfile(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	terms, err := services.EnsureTerms(h.DB, account.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}

	data := pdf.QuotationData{
		Number:         quotation.QuotationNumber,
		CreatedDate:    quotation.CreatedDate,
		ValidUntilDate: quotation.ValidUntilDate,
		Status:         quotation.Status,
		Subtotal:       quotation.Subtotal,
		TaxPercentage:  quotation.TaxPercentage,
		TotalTax:       quotation.TotalTax,
		OtherCharges:   quotation.OtherCharges,
		Total:          quotation.Total,
		Terms:          terms.Content,
		Company: pdf.CompanyData{
			Name:     profile.CompanyName,
			Address:  profile.Address,
			Phone:    profile.Phone,
			Website:  profile.Website,
			LogoPath: logoFilePath(h.UploadDir, profile.LogoPath),
		},
	}
	if quotation.User != nil {
		data.AdvisorName = quotation.User.FullName
	}
	if quotation.Client != nil {
		data.Client = pdf.ClientData{
			Name:          quotation.Client.Name,
			ContactPerson: quotation.Client.ContactPerson,
			Email:         quotation.Client.Email,
			Phone:         quotation.Client.Phone,
		}
	}
	for _, it := range quotation.Items {
		data.Items = append(data.Items, pdf.ItemData{
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Total:       it.Total,
		})
	}

	bytes, err := pdf.QuotationPDF(data)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=cotizacion_%s.pdf", quotation.QuotationNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bytes)
}
