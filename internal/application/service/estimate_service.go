package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/domain/billing"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/enum"
	"github.com/sahilrao/billforge/internal/domain/repository"
	"github.com/sahilrao/billforge/pkg/apperror"
	"github.com/sahilrao/billforge/pkg/email"
	"github.com/sahilrao/billforge/pkg/pagination"
	"github.com/sahilrao/billforge/pkg/pdf"
	"github.com/shopspring/decimal"
)

// EstimateService handles estimate lifecycle operations. Saving recomputes
// the totals snapshot from scratch; the persisted record is what the PDF and
// email paths print, without any recomputation.
type EstimateService struct {
	estimateRepo repository.EstimateRepository
	itemRepo     repository.EstimateItemRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	mailer       *email.Mailer
}

// NewEstimateService creates a new estimate service
func NewEstimateService(
	estimateRepo repository.EstimateRepository,
	itemRepo repository.EstimateItemRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	mailer *email.Mailer,
) *EstimateService {
	return &EstimateService{
		estimateRepo: estimateRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		mailer:       mailer,
	}
}

// EstimateLineInput represents one line item on an incoming estimate
type EstimateLineInput struct {
	ItemID       *uuid.UUID
	SKU          string
	Name         string
	Description  *string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DiscountRate decimal.Decimal
	TaxRate      decimal.Decimal
}

// CreateEstimateInput represents the input for creating an estimate
type CreateEstimateInput struct {
	CustomerID         *uuid.UUID
	Date               time.Time
	DueDate            *time.Time
	Notes              *string
	Terms              *string
	GlobalDiscountRate decimal.Decimal
	GlobalTaxRate      *decimal.Decimal
	Lines              []EstimateLineInput
}

// CreateEstimate creates a new estimate. The document number comes from the
// atomic settings counter, customer fields are snapshotted from the customer
// record, and totals are computed and frozen onto the document.
func (s *EstimateService) CreateEstimate(ctx context.Context, input *CreateEstimateInput) (*entity.Estimate, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Business settings")
	}

	taxRate := settings.DefaultTaxRate
	if input.GlobalTaxRate != nil {
		taxRate = *input.GlobalTaxRate
	}

	amounts, totals, err := computeEstimateTotals(input.Lines, input.GlobalDiscountRate, taxRate)
	if err != nil {
		return nil, err
	}

	estimate := &entity.Estimate{
		CustomerID:           input.CustomerID,
		Date:                 input.Date,
		DueDate:              input.DueDate,
		Notes:                input.Notes,
		Terms:                input.Terms,
		Subtotal:             totals.Subtotal,
		GlobalDiscountRate:   totals.GlobalDiscountRate,
		GlobalDiscountAmount: totals.GlobalDiscountAmount,
		GlobalTaxRate:        totals.GlobalTaxRate,
		TotalTax:             totals.TotalTax,
		GrandTotal:           totals.GrandTotal,
		Status:               enum.EstimateStatusDraft,
	}
	if estimate.Date.IsZero() {
		estimate.Date = time.Now()
	}

	if err := s.snapshotCustomer(ctx, estimate); err != nil {
		return nil, err
	}

	number, err := s.settingsRepo.NextEstimateNumber(ctx)
	if err != nil {
		return nil, err
	}
	estimate.Number = number

	if err := s.estimateRepo.Create(ctx, estimate); err != nil {
		return nil, err
	}

	items := buildEstimateItems(estimate.ID, input.Lines, amounts)
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}
	estimate.Items = items

	return estimate, nil
}

// GetEstimate retrieves an estimate with its line items and customer
func (s *EstimateService) GetEstimate(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	estimate, err := s.estimateRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, apperror.NewNotFoundError("Estimate")
	}
	return estimate, nil
}

// ListEstimatesInput represents the input for listing estimates
type ListEstimatesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.EstimateStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListEstimates lists estimates with filtering
func (s *EstimateService) ListEstimates(ctx context.Context, input *ListEstimatesInput) (*pagination.PaginatedResult[entity.Estimate], error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid status filter")
	}

	params := &repository.EstimateFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	estimates, total, err := s.estimateRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(estimates, pag), nil
}

// UpdateEstimateInput represents the input for updating an estimate. Updates
// are full re-saves: the complete set of lines replaces the stored ones and
// the totals snapshot is recomputed.
type UpdateEstimateInput struct {
	ID                 uuid.UUID
	CustomerID         *uuid.UUID
	Date               *time.Time
	DueDate            *time.Time
	Notes              *string
	Terms              *string
	GlobalDiscountRate *decimal.Decimal
	GlobalTaxRate      *decimal.Decimal
	Lines              []EstimateLineInput
}

// UpdateEstimate replaces an estimate's content and recomputes its totals.
// The document number never changes.
func (s *EstimateService) UpdateEstimate(ctx context.Context, input *UpdateEstimateInput) (*entity.Estimate, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, apperror.NewNotFoundError("Estimate")
	}

	if input.CustomerID != nil {
		estimate.CustomerID = input.CustomerID
		if err := s.snapshotCustomer(ctx, estimate); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		estimate.Date = *input.Date
	}
	if input.DueDate != nil {
		estimate.DueDate = input.DueDate
	}
	if input.Notes != nil {
		estimate.Notes = input.Notes
	}
	if input.Terms != nil {
		estimate.Terms = input.Terms
	}

	discountRate := estimate.GlobalDiscountRate
	if input.GlobalDiscountRate != nil {
		discountRate = *input.GlobalDiscountRate
	}
	taxRate := estimate.GlobalTaxRate
	if input.GlobalTaxRate != nil {
		taxRate = *input.GlobalTaxRate
	}

	amounts, totals, err := computeEstimateTotals(input.Lines, discountRate, taxRate)
	if err != nil {
		return nil, err
	}

	estimate.Subtotal = totals.Subtotal
	estimate.GlobalDiscountRate = totals.GlobalDiscountRate
	estimate.GlobalDiscountAmount = totals.GlobalDiscountAmount
	estimate.GlobalTaxRate = totals.GlobalTaxRate
	estimate.TotalTax = totals.TotalTax
	estimate.GrandTotal = totals.GrandTotal

	if err := s.estimateRepo.Update(ctx, estimate); err != nil {
		return nil, err
	}

	if err := s.itemRepo.DeleteByEstimateID(ctx, estimate.ID); err != nil {
		return nil, err
	}
	items := buildEstimateItems(estimate.ID, input.Lines, amounts)
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}
	estimate.Items = items

	return estimate, nil
}

// DeleteEstimate deletes an estimate and its line items
func (s *EstimateService) DeleteEstimate(ctx context.Context, id uuid.UUID) error {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if estimate == nil {
		return apperror.NewNotFoundError("Estimate")
	}

	if err := s.itemRepo.DeleteByEstimateID(ctx, id); err != nil {
		return err
	}
	return s.estimateRepo.Delete(ctx, id)
}

// UpdateEstimateStatus moves an estimate to a new lifecycle status
func (s *EstimateService) UpdateEstimateStatus(ctx context.Context, id uuid.UUID, status enum.EstimateStatus) (*entity.Estimate, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid status")
	}

	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, apperror.NewNotFoundError("Estimate")
	}

	if err := s.estimateRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	estimate.Status = status
	return estimate, nil
}

// RenderPDF renders an estimate to PDF bytes using the stored totals snapshot
func (s *EstimateService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, *entity.Estimate, error) {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	if settings == nil {
		return nil, nil, apperror.NewNotFoundError("Business settings")
	}

	data, err := pdf.NewGenerator(settings).Render(estimate)
	if err != nil {
		return nil, nil, err
	}
	return data, estimate, nil
}

// SendEstimateInput represents the input for emailing an estimate
type SendEstimateInput struct {
	ID      uuid.UUID
	ToEmail string
	Subject string
	Body    string
}

// SendEstimate renders the estimate to PDF, emails it, and marks draft
// estimates as sent. The recipient defaults to the customer email snapshot.
func (s *EstimateService) SendEstimate(ctx context.Context, input *SendEstimateInput) (*entity.Estimate, error) {
	estimate, err := s.GetEstimate(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Business settings")
	}
	if !settings.EmailConfigured() {
		return nil, apperror.NewBadRequestError("Email settings are not configured")
	}

	toEmail := input.ToEmail
	if toEmail == "" && estimate.CustomerEmail != nil {
		toEmail = *estimate.CustomerEmail
	}
	if toEmail == "" {
		return nil, apperror.NewBadRequestError("No recipient email address")
	}

	pdfData, err := pdf.NewGenerator(settings).Render(estimate)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendEstimate(settings, estimate, pdfData, toEmail, input.Subject, input.Body); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	if estimate.Status == enum.EstimateStatusDraft {
		if err := s.estimateRepo.UpdateStatus(ctx, estimate.ID, enum.EstimateStatusSent); err != nil {
			return nil, err
		}
		estimate.Status = enum.EstimateStatusSent
	}

	return estimate, nil
}

// snapshotCustomer copies the current customer record onto the estimate. A
// nil customer ID clears the snapshot for a walk-in customer.
func (s *EstimateService) snapshotCustomer(ctx context.Context, estimate *entity.Estimate) error {
	if estimate.CustomerID == nil {
		return nil
	}

	customer, err := s.customerRepo.GetByID(ctx, *estimate.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	estimate.CustomerName = customer.Name
	estimate.CustomerEmail = customer.Email
	estimate.CustomerAddress = customer.Address
	estimate.CustomerGSTIN = customer.GSTIN
	return nil
}

// computeEstimateTotals runs the totals calculation over incoming lines,
// translating calculator rejections into client errors.
func computeEstimateTotals(lines []EstimateLineInput, discountRate, taxRate decimal.Decimal) ([]decimal.Decimal, billing.DocumentTotals, error) {
	billingLines := make([]billing.LineInput, 0, len(lines))
	for _, ln := range lines {
		billingLines = append(billingLines, billing.LineInput{
			Description:  ln.Name,
			Quantity:     ln.Quantity,
			UnitPrice:    ln.UnitPrice,
			DiscountRate: ln.DiscountRate,
			TaxRate:      ln.TaxRate,
		})
	}

	amounts, totals, err := billing.ComputeLines(billingLines, discountRate, taxRate)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidInput) {
			return nil, billing.DocumentTotals{}, apperror.NewInvalidInputError(err.Error())
		}
		return nil, billing.DocumentTotals{}, err
	}
	return amounts, totals, nil
}

func buildEstimateItems(estimateID uuid.UUID, lines []EstimateLineInput, amounts []decimal.Decimal) []entity.EstimateItem {
	items := make([]entity.EstimateItem, 0, len(lines))
	for i, ln := range lines {
		items = append(items, entity.EstimateItem{
			EstimateID:   estimateID,
			ItemID:       ln.ItemID,
			SKU:          ln.SKU,
			Name:         ln.Name,
			Description:  ln.Description,
			Quantity:     ln.Quantity,
			UnitPrice:    ln.UnitPrice,
			DiscountRate: ln.DiscountRate,
			TaxRate:      ln.TaxRate,
			LineTotal:    amounts[i],
		})
	}
	return items
}
