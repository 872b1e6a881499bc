package models

// CompanyProfile is the deployment-wide issuer profile printed on every PDF.
// There is exactly one row; reads create it empty if it is missing.
type CompanyProfile struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyName string `gorm:"size:255" json:"company_name"`
	Address     string `gorm:"size:500" json:"address"`
	Phone       string `gorm:"size:50" json:"phone"`
	Website     string `gorm:"size:255" json:"website"`
	LogoPath    string `gorm:"size:500" json:"logo_path"`
}
