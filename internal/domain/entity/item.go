package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item represents an item in the inventory catalog. Price, rates, and the
// physical attributes are defaults copied onto estimate lines when the item is
// picked; editing an item never touches documents already written.
type Item struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SKU                 string          `gorm:"size:100;unique;not null" json:"sku"`
	Name                string          `gorm:"size:255;not null" json:"name"`
	Description         *string         `gorm:"type:text" json:"description,omitempty"`
	Price               decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	TaxRate             decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	DefaultDiscountRate decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"default_discount_rate"`
	Category            *string         `gorm:"size:100" json:"category,omitempty"`
	Unit                string          `gorm:"size:50;default:'nos'" json:"unit"`
	StockQuantity       int             `gorm:"default:0" json:"stock_quantity"`
	LowStockAlert       int             `gorm:"default:10" json:"low_stock_alert"`

	// Physical attributes
	SizeMMLength     *float64 `gorm:"column:size_mm_length" json:"size_mm_length,omitempty"`
	SizeMMWidth      *float64 `gorm:"column:size_mm_width" json:"size_mm_width,omitempty"`
	SizeMMHeight     *float64 `gorm:"column:size_mm_height" json:"size_mm_height,omitempty"`
	SizeInchesLength *float64 `gorm:"column:size_inches_length" json:"size_inches_length,omitempty"`
	SizeInchesWidth  *float64 `gorm:"column:size_inches_width" json:"size_inches_width,omitempty"`
	SizeInchesHeight *float64 `gorm:"column:size_inches_height" json:"size_inches_height,omitempty"`
	Material         *string  `gorm:"size:100" json:"material,omitempty"`
	Finish           *string  `gorm:"size:100" json:"finish,omitempty"`
	Color            *string  `gorm:"size:100" json:"color,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether the item has reached its low-stock threshold.
func (i *Item) IsLowStock() bool {
	return i.StockQuantity <= i.LowStockAlert
}
