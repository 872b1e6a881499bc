package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/models"
)

// EnsureTerms returns the account's terms row, creating the default Spanish
// boilerplate if none exists yet (read-repair, not an error path). It runs
// against whatever handle it is given so account creation can call it inside
// its own transaction.
func EnsureTerms(conn *gorm.DB, accountID uint) (*models.TermsConditions, error) {
	var terms models.TermsConditions
	err := conn.Where("account_id = ?", accountID).First(&terms).Error
	if err == nil {
		return &terms, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	terms = models.TermsConditions{
		AccountID: accountID,
		Content:   models.DefaultTermsContent,
	}
	if err := conn.Create(&terms).Error; err != nil {
		return nil, err
	}
	return &terms, nil
}

// UpdateTerms replaces the terms content, creating the row first if the
// account never touched it.
func UpdateTerms(conn *gorm.DB, accountID uint, content string) (*models.TermsConditions, error) {
	terms, err := EnsureTerms(conn, accountID)
	if err != nil {
		return nil, err
	}
	terms.Content = content
	if err := conn.Save(terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}
