package models

// DefaultTermsContent is the boilerplate seeded for every new account. The
// product ships to Spanish-speaking customers; the text is data, not UI.
const DefaultTermsContent = "1. Al cliente se le cobrará 70 % después de aceptada esta cotización.\n" +
	"2. El pago será debitado antes de la entrega de bienes y servicios.\n" +
	"3. Por favor enviar la cotización firmada al email indicado anteriormente.\n" +
	"4. Esta cotización no incluye IVA si requiere Factura Favor de indicar."

// TermsConditions holds the terms text printed at the bottom of an account's
// quotations. One row per account, created on account registration and
// re-created on first read if missing.
type TermsConditions struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID uint   `gorm:"uniqueIndex;not null" json:"account_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
}
