// Package billing implements the document totals calculation: per-line
// amounts with line-level discounts, then document-level discount and tax
// applied to the aggregate.
//
// The pipeline is fixed: line discounts first, then the global discount on
// the subtotal, then tax on the discounted base. Per-line tax rates are
// carried on line items for display but never enter the aggregate; the
// document's single global tax rate does.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when a quantity, price, or rate is outside its
// valid range.
var ErrInvalidInput = fmt.Errorf("invalid input")

var hundred = decimal.NewFromInt(100)

// LineInput is one line of a document before computation.
type LineInput struct {
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DiscountRate decimal.Decimal
	TaxRate      decimal.Decimal
}

// DocumentTotals is the computed aggregate for a document. Once persisted on
// an estimate it is a frozen snapshot; it is only ever recomputed on a full
// re-save.
type DocumentTotals struct {
	Subtotal             decimal.Decimal `json:"subtotal"`
	GlobalDiscountRate   decimal.Decimal `json:"global_discount_rate"`
	GlobalDiscountAmount decimal.Decimal `json:"global_discount_amount"`
	TaxableBase          decimal.Decimal `json:"taxable_base"`
	GlobalTaxRate        decimal.Decimal `json:"global_tax_rate"`
	TotalTax             decimal.Decimal `json:"total_tax"`
	GrandTotal           decimal.Decimal `json:"grand_total"`
}

// LineAmount computes the amount for a single line:
// quantity * unitPrice * (1 - discountRate/100).
//
// Quantity and unitPrice must be non-negative, and discountRate must be
// within [0, 100]; anything else returns ErrInvalidInput.
func LineAmount(quantity, unitPrice, discountRate decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: unit price must not be negative", ErrInvalidInput)
	}
	if discountRate.IsNegative() || discountRate.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("%w: discount rate must be between 0 and 100", ErrInvalidInput)
	}

	gross := quantity.Mul(unitPrice)
	return gross.Mul(hundred.Sub(discountRate)).Div(hundred), nil
}

// ComputeTotals aggregates pre-computed line amounts into document totals.
//
// The global discount applies to the subtotal; tax applies to the discounted
// base. A global discount rate above 100 is accepted and yields a negative
// base, which flows through to a negative grand total. The global tax rate
// must be within [0, 100] and the discount rate must be non-negative.
//
// An empty lineAmounts slice produces all-zero totals with the rates echoed
// back.
func ComputeTotals(lineAmounts []decimal.Decimal, globalDiscountRate, globalTaxRate decimal.Decimal) (DocumentTotals, error) {
	if globalDiscountRate.IsNegative() {
		return DocumentTotals{}, fmt.Errorf("%w: global discount rate must not be negative", ErrInvalidInput)
	}
	if globalTaxRate.IsNegative() || globalTaxRate.GreaterThan(hundred) {
		return DocumentTotals{}, fmt.Errorf("%w: global tax rate must be between 0 and 100", ErrInvalidInput)
	}

	subtotal := decimal.Zero
	for _, amount := range lineAmounts {
		subtotal = subtotal.Add(amount)
	}

	discountAmount := subtotal.Mul(globalDiscountRate).Div(hundred)
	taxableBase := subtotal.Sub(discountAmount)
	totalTax := taxableBase.Mul(globalTaxRate).Div(hundred)

	return DocumentTotals{
		Subtotal:             subtotal,
		GlobalDiscountRate:   globalDiscountRate,
		GlobalDiscountAmount: discountAmount,
		TaxableBase:          taxableBase,
		GlobalTaxRate:        globalTaxRate,
		TotalTax:             totalTax,
		GrandTotal:           taxableBase.Add(totalTax),
	}, nil
}

// ComputeLines computes each line's amount and the document totals in one
// pass. Validation failures report the offending line by its 1-based index.
func ComputeLines(lines []LineInput, globalDiscountRate, globalTaxRate decimal.Decimal) ([]decimal.Decimal, DocumentTotals, error) {
	amounts := make([]decimal.Decimal, 0, len(lines))
	for i, ln := range lines {
		amount, err := LineAmount(ln.Quantity, ln.UnitPrice, ln.DiscountRate)
		if err != nil {
			return nil, DocumentTotals{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		amounts = append(amounts, amount)
	}

	totals, err := ComputeTotals(amounts, globalDiscountRate, globalTaxRate)
	if err != nil {
		return nil, DocumentTotals{}, err
	}
	return amounts, totals, nil
}
