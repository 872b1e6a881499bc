package services

import (
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/models"
)

// QuotationService owns the quotation aggregate: totals, per-account
// sequential numbering, and atomic create/delete of header plus items.
type QuotationService struct {
	db *gorm.DB
}

func NewQuotationService(db *gorm.DB) *QuotationService {
	return &QuotationService{db: db}
}

// ItemInput is one requested line. Quantity may be zero; the line then
// contributes nothing to the totals but is still stored.
type ItemInput struct {
	ProductID   uint
	Description string
	UnitPrice   float64
	Quantity    int
	IsTaxable   bool
}

// CreateInput carries everything needed to build a quotation. Tax percentage
// and other charges are taken as-is; no range validation is performed.
type CreateInput struct {
	ClientID       uint
	UserID         uint // advisor
	ValidUntilDate time.Time
	TaxPercentage  float64
	OtherCharges   float64
	Status         string
	Items          []ItemInput
}

// ComputeTotals applies the quotation formulas: subtotal over all lines,
// tax over the taxable lines only, grand total with the flat other charges.
func ComputeTotals(items []ItemInput, taxPercentage, otherCharges float64) (subtotal, totalTax, total float64) {
	var taxable float64
	for _, it := range items {
		line := it.UnitPrice * float64(it.Quantity)
		subtotal += line
		if it.IsTaxable {
			taxable += line
		}
	}
	totalTax = taxable * (taxPercentage / 100)
	total = subtotal + totalTax + otherCharges
	return subtotal, totalTax, total
}

// nextQuotationNumber looks at the most recently inserted quotation for the
// account (by insertion order, not by number) and increments it, starting at
// "1" when there is none or the last number is not numeric.
//
// This read-then-write has no lock: two concurrent creations for the same
// account can observe the same last number. The (account_id,
// quotation_number) unique index turns that into a write conflict instead of
// a stored duplicate; whether to replace the scan with a counter row is
// still an open product decision.
func nextQuotationNumber(tx *gorm.DB, accountID uint) string {
	var last models.Quotation
	err := tx.Where("account_id = ?", accountID).Order("id DESC").First(&last).Error
	if err != nil {
		return "1"
	}
	n, ok := parseNumber(last.QuotationNumber)
	if !ok {
		return "1"
	}
	return strconv.Itoa(n + 1)
}

// parseNumber accepts plain digit strings only, like the original number
// scheme. Signs, spaces, and empty strings all mean "start over at 1".
func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func uniqueIDs(items []ItemInput) []uint {
	seen := make(map[uint]struct{}, len(items))
	out := make([]uint, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it.ProductID)
	}
	return out
}

// Create validates that advisor, client, and every referenced product belong
// to the account (a foreign
// reference reads as not-found, never as a permission error), computes the
// stored totals, allocates the next number, and writes header plus items in
// one transaction. A failure anywhere rolls the whole quotation back.
func (s *QuotationService) Create(accountID uint, in CreateInput) (*models.Quotation, error) {
	var created models.Quotation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var advisor models.User
		if err := tx.Where("id = ? AND account_id = ?", in.UserID, accountID).
			First(&advisor).Error; err != nil {
			return err
		}
		var client models.Client
		if err := tx.Where("id = ? AND account_id = ?", in.ClientID, accountID).
			First(&client).Error; err != nil {
			return err
		}
		if len(in.Items) > 0 {
			ids := uniqueIDs(in.Items)
			var owned int64
			if err := tx.Model(&models.Product{}).
				Where("id IN ? AND account_id = ?", ids, accountID).
				Distinct("id").Count(&owned).Error; err != nil {
				return err
			}
			if owned != int64(len(ids)) {
				return gorm.ErrRecordNotFound
			}
		}

		subtotal, totalTax, total := ComputeTotals(in.Items, in.TaxPercentage, in.OtherCharges)
		status := in.Status
		if status == "" {
			status = models.QuotationStatusDraft
		}
		created = models.Quotation{
			AccountID:       accountID,
			QuotationNumber: nextQuotationNumber(tx, accountID),
			ClientID:        in.ClientID,
			UserID:          in.UserID,
			CreatedDate:     time.Now().UTC(),
			ValidUntilDate:  in.ValidUntilDate,
			Subtotal:        subtotal,
			TaxPercentage:   in.TaxPercentage,
			TotalTax:        totalTax,
			OtherCharges:    in.OtherCharges,
			Total:           total,
			Status:          status,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		if len(in.Items) == 0 {
			return nil
		}
		items := make([]models.QuotationItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.QuotationItem{
				QuotationID: created.ID,
				ProductID:   it.ProductID,
				Description: it.Description,
				UnitPrice:   it.UnitPrice,
				Quantity:    it.Quantity,
				IsTaxable:   it.IsTaxable,
				Total:       it.UnitPrice * float64(it.Quantity),
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(accountID, created.ID)
}

// Get loads one quotation with items, client, and advisor, scoped to the
// account. Foreign or absent ids surface as gorm.ErrRecordNotFound.
func (s *QuotationService) Get(accountID, id uint) (*models.Quotation, error) {
	var q models.Quotation
	err := s.db.Where("id = ? AND account_id = ?", id, accountID).
		Preload("Client").
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("quotation_items.id") }).
		Preload("Items.Product").
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns the account's quotations newest first.
func (s *QuotationService) List(accountID uint, offset, limit int) ([]models.Quotation, int64, error) {
	var total int64
	if err := s.db.Model(&models.Quotation{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var quotations []models.Quotation
	err := s.db.Where("account_id = ?", accountID).
		Preload("Client").
		Preload("User").
		Order("id desc").
		Offset(offset).Limit(limit).
		Find(&quotations).Error
	return quotations, total, err
}

// HeaderUpdate carries the only fields that stay mutable after creation.
// Items and the stored totals are frozen; nil means keep.
type HeaderUpdate struct {
	Status         *string
	ValidUntilDate *time.Time
}

func (s *QuotationService) UpdateHeader(accountID, id uint, in HeaderUpdate) (*models.Quotation, error) {
	var q models.Quotation
	if err := s.db.Where("id = ? AND account_id = ?", id, accountID).
		First(&q).Error; err != nil {
		return nil, err
	}
	if in.Status != nil {
		q.Status = *in.Status
	}
	if in.ValidUntilDate != nil {
		q.ValidUntilDate = *in.ValidUntilDate
	}
	if err := s.db.Save(&q).Error; err != nil {
		return nil, err
	}
	return s.Get(accountID, id)
}

// Delete removes items then header in one transaction, so a failure can
// never leave orphaned lines behind.
func (s *QuotationService) Delete(accountID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var q models.Quotation
		if err := tx.Where("id = ? AND account_id = ?", id, accountID).
			First(&q).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", q.ID).
			Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&q).Error
	})
}
