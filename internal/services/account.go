package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/models"
)

// ErrUsernameTaken is returned when registration hits an existing username
// (comparison is case-insensitive).
var ErrUsernameTaken = errors.New("username already registered")

// AccountService owns the account lifecycle: registration with the
// first-account-becomes-admin bootstrap, credential checks, and the
// password-confirmed cascade delete.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Create registers an account. The admin role is decided by counting
// existing accounts inside the same transaction that inserts the new row, so
// two concurrent first registrations cannot both become admin. The default
// terms row is created atomically with the account.
func (s *AccountService) Create(username, fullName, password string) (*models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := models.Account{
		Username: username,
		FullName: fullName,
		Password: string(hash),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Account{}).
			Where("lower(username) = lower(?)", username).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrUsernameTaken
		}
		var total int64
		if err := tx.Model(&models.Account{}).Count(&total).Error; err != nil {
			return err
		}
		account.Role = models.RoleUser
		if total == 0 {
			account.Role = models.RoleAdmin
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		_, err := EnsureTerms(tx, account.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ByUsername resolves an account case-insensitively.
func (s *AccountService) ByUsername(ctx context.Context, username string) (*models.Account, bool) {
	var account models.Account
	err := s.db.WithContext(ctx).
		Where("lower(username) = lower(?)", username).First(&account).Error
	if err != nil {
		return nil, false
	}
	return &account, true
}

// Authenticate checks username+password and returns the account on success.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, bool) {
	account, ok := s.ByUsername(ctx, username)
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return nil, false
	}
	return account, true
}

func (s *AccountService) Get(id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) List(offset, limit int) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.Order("id").Offset(offset).Limit(limit).Find(&accounts).Error
	return accounts, err
}

// UpdateInput carries the mutable account fields; nil means keep.
type UpdateInput struct {
	FullName *string
	Password *string
}

func (s *AccountService) Update(id uint, in UpdateInput) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	if in.FullName != nil {
		account.FullName = *in.FullName
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.Password = string(hash)
	}
	if err := s.db.Save(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteWithPassword re-verifies the admin's own password and then removes
// the target account with everything it owns, children before parents, in
// one transaction. Wrong password and missing target both return false; the
// caller must not distinguish them.
func (s *AccountService) DeleteWithPassword(targetID uint, admin *models.Account, password string) bool {
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return false
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var target models.Account
		if err := tx.First(&target, targetID).Error; err != nil {
			return err
		}
		var quotationIDs []uint
		if err := tx.Model(&models.Quotation{}).
			Where("account_id = ?", targetID).
			Pluck("id", &quotationIDs).Error; err != nil {
			return err
		}
		if len(quotationIDs) > 0 {
			if err := tx.Where("quotation_id IN ?", quotationIDs).
				Delete(&models.QuotationItem{}).Error; err != nil {
				return err
			}
		}
		ownedByAccount := []interface{}{
			&models.Quotation{},
			&models.Client{},
			&models.Product{},
			&models.User{},
			&models.TermsConditions{},
		}
		for _, m := range ownedByAccount {
			if err := tx.Where("account_id = ?", targetID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Account{}, targetID).Error
	})
	return err == nil
}
