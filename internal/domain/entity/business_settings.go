package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BusinessSettings holds the single-row business profile: identity shown on
// documents, the estimate numbering sequence, document defaults, and SMTP
// credentials for sending estimates.
type BusinessSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Business identity
	BusinessName    string  `gorm:"size:255;default:'Your Business'" json:"business_name"`
	BusinessAddress *string `gorm:"type:text" json:"business_address,omitempty"`
	BusinessPhone   *string `gorm:"size:50" json:"business_phone,omitempty"`
	BusinessEmail   *string `gorm:"size:255" json:"business_email,omitempty"`
	BusinessGSTIN   *string `gorm:"size:50;column:business_gstin" json:"business_gstin,omitempty"`
	LogoPath        *string `gorm:"size:255" json:"logo_path,omitempty"`

	// Document numbering and defaults
	EstimatePrefix  string          `gorm:"size:20;default:'EST'" json:"estimate_prefix"`
	EstimateCounter int             `gorm:"default:1" json:"estimate_counter"`
	CurrencySymbol  string          `gorm:"size:10;default:'₹'" json:"currency_symbol"`
	DefaultTaxRate  decimal.Decimal `gorm:"type:decimal(5,2);default:18" json:"default_tax_rate"`

	// Email settings
	SMTPServer   *string `gorm:"size:255;column:smtp_server" json:"smtp_server,omitempty"`
	SMTPPort     int     `gorm:"column:smtp_port;default:587" json:"smtp_port"`
	SMTPUsername *string `gorm:"size:255;column:smtp_username" json:"smtp_username,omitempty"`
	SMTPPassword *string `gorm:"size:255;column:smtp_password" json:"-"`

	// Document footer text
	TermsAndConditions *string `gorm:"type:text" json:"terms_and_conditions,omitempty"`
	NotesFooter        *string `gorm:"type:text" json:"notes_footer,omitempty"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *BusinessSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BusinessSettings model
func (BusinessSettings) TableName() string {
	return "business_settings"
}

// EmailConfigured reports whether the SMTP settings are complete enough to
// send mail.
func (s *BusinessSettings) EmailConfigured() bool {
	return s.SMTPServer != nil && *s.SMTPServer != "" &&
		s.SMTPUsername != nil && *s.SMTPUsername != "" &&
		s.SMTPPassword != nil && *s.SMTPPassword != ""
}
