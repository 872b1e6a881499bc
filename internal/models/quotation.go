package models

import "time"

// Quotation statuses. The column is an open string; these are the values
// the application writes by itself.
const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
)

// Quotation is a priced proposal ("cotización") for a client, carried by an
// advisor of the same account. Totals are computed once at creation and
// stored; they are never derived again on read.
//
// QuotationNumber is sequential per account and unique only within
// (account_id, quotation_number) — two accounts both have a quotation "1".
type Quotation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AccountID       uint   `gorm:"not null;uniqueIndex:uq_account_quotation_number" json:"account_id"`
	QuotationNumber string `gorm:"size:50;not null;uniqueIndex:uq_account_quotation_number" json:"quotation_number"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	UserID   uint    `gorm:"index;not null" json:"user_id"` // the advisor
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedDate    time.Time `gorm:"not null" json:"created_date"`
	ValidUntilDate time.Time `json:"valid_until_date"`

	Subtotal      float64 `gorm:"not null" json:"subtotal"`
	TaxPercentage float64 `gorm:"not null" json:"tax_percentage"`
	TotalTax      float64 `gorm:"not null" json:"total_tax"`
	OtherCharges  float64 `gorm:"not null;default:0" json:"other_charges"`
	Total         float64 `gorm:"not null" json:"total"`

	Status string `gorm:"size:50;not null;default:'draft'" json:"status"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
}

// QuotationItem is one line of a quotation. Items are immutable after
// creation; Total is fixed at unit_price * quantity when the line is written.
type QuotationItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	QuotationID uint   `gorm:"index;not null" json:"quotation_id"`
	ProductID   uint   `gorm:"not null" json:"product_id"`
	Product     *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Description string  `gorm:"size:500" json:"description"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	IsTaxable   bool    `gorm:"not null;default:true" json:"is_taxable"`
	Total       float64 `gorm:"not null" json:"total"`
}
