package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Generator renders estimates to PDF. It is a pure function of the document
// passed in: the frozen totals snapshot is printed as-is, never recomputed.
type Generator struct {
	settings *entity.BusinessSettings
}

// NewGenerator creates a PDF generator using the business profile for the
// document header and footer.
func NewGenerator(settings *entity.BusinessSettings) *Generator {
	return &Generator{settings: settings}
}

// Render produces the PDF bytes for a fully populated estimate.
func (g *Generator) Render(estimate *entity.Estimate) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	g.addHeader(m, estimate)
	g.addParties(m, estimate)
	g.addItemsTable(m, estimate)
	g.addTotals(m, estimate)
	g.addFooter(m, estimate)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *Generator) money(amount decimal.Decimal) string {
	return g.settings.CurrencySymbol + amount.StringFixed(2)
}

func (g *Generator) addHeader(m core.Maroto, estimate *entity.Estimate) {
	if g.settings.LogoPath != nil && *g.settings.LogoPath != "" {
		m.AddRow(30,
			image.NewFromFileCol(3, *g.settings.LogoPath, props.Rect{Percent: 80}),
			col.New(9),
		)
	}

	m.AddRow(12,
		text.NewCol(8, g.settings.BusinessName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "ESTIMATE", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	meta := []string{"Number: " + estimate.Number, "Date: " + estimate.Date.Format("2006-01-02")}
	if estimate.DueDate != nil {
		meta = append(meta, "Due: "+estimate.DueDate.Format("2006-01-02"))
	}
	meta = append(meta, "Status: "+estimate.Status.String())

	metaCol := col.New(4)
	for i, entry := range meta {
		metaCol.Add(text.New(entry, props.Text{Size: 9, Top: float64(i * 4), Align: align.Right}))
	}

	businessCol := col.New(8)
	businessLines := []string{}
	if g.settings.BusinessAddress != nil {
		businessLines = append(businessLines, *g.settings.BusinessAddress)
	}
	if g.settings.BusinessPhone != nil {
		businessLines = append(businessLines, *g.settings.BusinessPhone)
	}
	if g.settings.BusinessEmail != nil {
		businessLines = append(businessLines, *g.settings.BusinessEmail)
	}
	if g.settings.BusinessGSTIN != nil {
		businessLines = append(businessLines, "GSTIN: "+*g.settings.BusinessGSTIN)
	}
	for i, entry := range businessLines {
		businessCol.Add(text.New(entry, props.Text{Size: 9, Top: float64(i * 4)}))
	}

	m.AddRow(22, businessCol, metaCol)
}

func (g *Generator) addParties(m core.Maroto, estimate *entity.Estimate) {
	billTo := col.New(6).Add(
		text.New("Bill to", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.New(estimate.CustomerName, props.Text{Size: 9, Top: 5}),
	)
	top := 9.0
	if estimate.CustomerAddress != nil {
		billTo.Add(text.New(*estimate.CustomerAddress, props.Text{Size: 9, Top: top}))
		top += 4
	}
	if estimate.CustomerEmail != nil {
		billTo.Add(text.New(*estimate.CustomerEmail, props.Text{Size: 9, Top: top}))
		top += 4
	}
	if estimate.CustomerGSTIN != nil {
		billTo.Add(text.New("GSTIN: "+*estimate.CustomerGSTIN, props.Text{Size: 9, Top: top}))
	}

	m.AddRow(28, billTo, col.New(6))
}

func (g *Generator) addItemsTable(m core.Maroto, estimate *entity.Estimate) {
	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Disc %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range estimate.Items {
		description := item.Name
		if item.SKU != "" {
			description = item.SKU + " - " + item.Name
		}
		m.AddRow(8,
			text.NewCol(5, description, props.Text{Size: 9}),
			text.NewCol(2, item.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, g.money(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.DiscountRate.StringFixed(0), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, g.money(item.LineTotal), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(2, line.NewCol(12))
}

func (g *Generator) addTotals(m core.Maroto, estimate *entity.Estimate) {
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, g.money(estimate.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)

	if !estimate.GlobalDiscountAmount.IsZero() {
		label := fmt.Sprintf("Discount (%s%%)", estimate.GlobalDiscountRate.StringFixed(0))
		m.AddRow(7,
			col.New(8),
			text.NewCol(2, label, props.Text{Size: 9}),
			text.NewCol(2, "-"+g.money(estimate.GlobalDiscountAmount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	taxLabel := fmt.Sprintf("Tax (%s%%)", estimate.GlobalTaxRate.StringFixed(0))
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, taxLabel, props.Text{Size: 9}),
		text.NewCol(2, g.money(estimate.TotalTax), props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(9,
		col.New(8),
		text.NewCol(2, "Grand total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, g.money(estimate.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
}

func (g *Generator) addFooter(m core.Maroto, estimate *entity.Estimate) {
	if estimate.Notes != nil && *estimate.Notes != "" {
		m.AddRow(10, text.NewCol(12, "Notes: "+*estimate.Notes, props.Text{Size: 8, Top: 4}))
	}

	terms := ""
	if estimate.Terms != nil && *estimate.Terms != "" {
		terms = *estimate.Terms
	} else if g.settings.TermsAndConditions != nil {
		terms = *g.settings.TermsAndConditions
	}
	if terms != "" {
		m.AddRow(12, text.NewCol(12, "Terms: "+terms, props.Text{Size: 8, Top: 4}))
	}

	if g.settings.NotesFooter != nil && *g.settings.NotesFooter != "" {
		m.AddRow(8, text.NewCol(12, *g.settings.NotesFooter, props.Text{Size: 8, Top: 4}))
	}
}
