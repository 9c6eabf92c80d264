package pdf

import (
	"testing"
	"time"

	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestRender(t *testing.T) {
	settings := &entity.BusinessSettings{
		BusinessName:    "Test Business",
		BusinessAddress: strptr("12 Market Road"),
		BusinessGSTIN:   strptr("29ABCDE1234F1Z5"),
		CurrencySymbol:  "₹",
	}

	estimate := &entity.Estimate{
		Number:               "EST-0001",
		CustomerName:         "Alex Traders",
		CustomerAddress:      strptr("45 Industrial Estate"),
		Date:                 time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:               enum.EstimateStatusDraft,
		Subtotal:             decimal.NewFromInt(300),
		GlobalDiscountRate:   decimal.NewFromInt(10),
		GlobalDiscountAmount: decimal.NewFromInt(30),
		GlobalTaxRate:        decimal.NewFromInt(18),
		TotalTax:             decimal.NewFromFloat(48.6),
		GrandTotal:           decimal.NewFromFloat(318.6),
		Items: []entity.EstimateItem{
			{
				SKU:       "WID-01",
				Name:      "Widget",
				Quantity:  decimal.NewFromInt(2),
				UnitPrice: decimal.NewFromInt(50),
				LineTotal: decimal.NewFromInt(100),
			},
			{
				SKU:          "GAD-01",
				Name:         "Gadget",
				Quantity:     decimal.NewFromInt(4),
				UnitPrice:    decimal.NewFromInt(50),
				DiscountRate: decimal.NewFromInt(0),
				LineTotal:    decimal.NewFromInt(200),
			},
		},
	}

	data, err := NewGenerator(settings).Render(estimate)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderEmptyEstimate(t *testing.T) {
	settings := &entity.BusinessSettings{
		BusinessName:   "Test Business",
		CurrencySymbol: "₹",
	}
	estimate := &entity.Estimate{
		Number:       "EST-0002",
		CustomerName: "Walk-in",
		Date:         time.Now(),
		Status:       enum.EstimateStatusDraft,
	}

	data, err := NewGenerator(settings).Render(estimate)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
