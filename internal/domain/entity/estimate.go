package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estimate represents a billing document (estimate or invoice) for a customer.
//
// Customer fields and the totals block are snapshots frozen at save time:
// they are denormalized copies so that historical documents keep displaying
// the values they were issued with, even after the customer record or the
// default tax rate changes. Edits go through a full re-save with freshly
// recomputed totals.
type Estimate struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Number     string     `gorm:"size:100;unique;not null" json:"number"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	// Customer snapshot
	CustomerName    string  `gorm:"size:255" json:"customer_name"`
	CustomerEmail   *string `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerAddress *string `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerGSTIN   *string `gorm:"size:50;column:customer_gstin" json:"customer_gstin,omitempty"`

	Date    time.Time  `gorm:"type:date;not null" json:"date"`
	DueDate *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	Notes   *string    `gorm:"type:text" json:"notes,omitempty"`
	Terms   *string    `gorm:"type:text" json:"terms,omitempty"`

	// Totals snapshot
	Subtotal             decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	GlobalDiscountRate   decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"global_discount_rate"`
	GlobalDiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"global_discount_amount"`
	GlobalTaxRate        decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"global_tax_rate"`
	TotalTax             decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_tax"`
	GrandTotal           decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"grand_total"`

	Status    enum.EstimateStatus `gorm:"size:20;default:'draft'" json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []EstimateItem `gorm:"foreignKey:EstimateID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new estimate
func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Estimate model
func (Estimate) TableName() string {
	return "estimates"
}

// EstimateItem represents a line item in an estimate. SKU, name, description,
// and price are snapshots of the inventory item at save time. TaxRate is kept
// per line for display only; the aggregate tax uses the document's global rate.
type EstimateItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EstimateID uuid.UUID  `gorm:"type:uuid;not null;index" json:"estimate_id"`
	ItemID     *uuid.UUID `gorm:"type:uuid;index" json:"item_id,omitempty"`

	SKU         string          `gorm:"size:100" json:"sku"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Quantity    decimal.Decimal `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	// Line-level discount applied before document-level adjustments.
	DiscountRate decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount_rate"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"line_total"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Estimate Estimate `gorm:"foreignKey:EstimateID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new estimate item
func (ei *EstimateItem) BeforeCreate(tx *gorm.DB) error {
	if ei.ID == uuid.Nil {
		ei.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EstimateItem model
func (EstimateItem) TableName() string {
	return "estimate_items"
}
