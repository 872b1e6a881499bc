package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/httpx"
	"github.com/diewo77/go-quotations/internal/models"
)

// CompanyHandler manages the deployment-wide issuer profile. The profile is
// not tenant-scoped: one company, many accounts.
type CompanyHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewCompanyHandler(db *gorm.DB, uploadDir string) *CompanyHandler {
	return &CompanyHandler{DB: db, UploadDir: uploadDir}
}

// ensureCompanyProfile returns the singleton row, creating an empty one on
// first read (read-repair).
func ensureCompanyProfile(conn *gorm.DB) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := conn.First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	profile = models.CompanyProfile{}
	if err := conn.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// logoFilePath maps the stored /uploads/... URL path back to a file on disk.
func logoFilePath(uploadDir, logoPath string) string {
	if logoPath == "" {
		return ""
	}
	return filepath.Join(uploadDir, filepath.Base(logoPath))
}

// Get: GET /company-profile/
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := ensureCompanyProfile(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "profile_load_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

// Update: PUT /company-profile/
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyName string `json:"company_name"`
		Address     string `json:"address"`
		Phone       string `json:"phone"`
		Website     string `json:"website"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}
	profile, err := ensureCompanyProfile(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "profile_update_failed", nil)
		return
	}
	profile.CompanyName = req.CompanyName
	profile.Address = req.Address
	profile.Phone = req.Phone
	profile.Website = req.Website
	if err := h.DB.Save(profile).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "profile_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

// UploadLogo: POST /company-profile/logo — multipart upload stored under the
// client-supplied filename; a second upload with the same name overwrites
// the first.
func (h *CompanyHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed,
			map[string]string{"file": "required"})
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "logo_upload_failed", nil)
		return
	}
	// Base strips any path segments a hostile filename may carry.
	name := filepath.Base(header.Filename)
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "logo_upload_failed", nil)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "logo_upload_failed", nil)
		return
	}

	profile, err := ensureCompanyProfile(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "logo_upload_failed", nil)
		return
	}
	profile.LogoPath = "/uploads/" + name
	if err := h.DB.Save(profile).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "logo_upload_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}
