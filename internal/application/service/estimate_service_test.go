package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/enum"
	"github.com/sahilrao/billforge/internal/domain/repository"
	"github.com/sahilrao/billforge/pkg/apperror"
	"github.com/sahilrao/billforge/pkg/email"
	"github.com/sahilrao/billforge/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEstimateRepo struct {
	estimates map[uuid.UUID]*entity.Estimate
}

func newFakeEstimateRepo() *fakeEstimateRepo {
	return &fakeEstimateRepo{estimates: make(map[uuid.UUID]*entity.Estimate)}
}

func (f *fakeEstimateRepo) Create(ctx context.Context, e *entity.Estimate) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	f.estimates[e.ID] = &cp
	return nil
}

func (f *fakeEstimateRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	e, ok := f.estimates[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEstimateRepo) GetByNumber(ctx context.Context, number string) (*entity.Estimate, error) {
	for _, e := range f.estimates {
		if e.Number == number {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEstimateRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeEstimateRepo) Update(ctx context.Context, e *entity.Estimate) error {
	cp := *e
	f.estimates[e.ID] = &cp
	return nil
}

func (f *fakeEstimateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.estimates, id)
	return nil
}

func (f *fakeEstimateRepo) List(ctx context.Context, params *repository.EstimateFilterParams) ([]entity.Estimate, int64, error) {
	var out []entity.Estimate
	for _, e := range f.estimates {
		if params.Status != nil && e.Status != *params.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEstimateRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.EstimateStatus) error {
	e, ok := f.estimates[id]
	if !ok {
		return fmt.Errorf("estimate not found")
	}
	e.Status = status
	return nil
}

func (f *fakeEstimateRepo) CountByStatus(ctx context.Context) (map[enum.EstimateStatus]int64, error) {
	counts := make(map[enum.EstimateStatus]int64)
	for _, e := range f.estimates {
		counts[e.Status]++
	}
	return counts, nil
}

func (f *fakeEstimateRepo) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.estimates {
		if e.Status == enum.EstimateStatusPaid && !e.Date.Before(since) {
			total = total.Add(e.GrandTotal)
		}
	}
	return total, nil
}

type fakeEstimateItemRepo struct {
	items map[uuid.UUID][]entity.EstimateItem
}

func newFakeEstimateItemRepo() *fakeEstimateItemRepo {
	return &fakeEstimateItemRepo{items: make(map[uuid.UUID][]entity.EstimateItem)}
}

func (f *fakeEstimateItemRepo) CreateBatch(ctx context.Context, items []entity.EstimateItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	if len(items) > 0 {
		f.items[items[0].EstimateID] = append(f.items[items[0].EstimateID], items...)
	}
	return nil
}

func (f *fakeEstimateItemRepo) GetByEstimateID(ctx context.Context, estimateID uuid.UUID) ([]entity.EstimateItem, error) {
	return f.items[estimateID], nil
}

func (f *fakeEstimateItemRepo) DeleteByEstimateID(ctx context.Context, estimateID uuid.UUID) error {
	delete(f.items, estimateID)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeSettingsRepo struct {
	settings *entity.BusinessSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: &entity.BusinessSettings{
			ID:              uuid.New(),
			BusinessName:    "Test Business",
			EstimatePrefix:  "EST",
			EstimateCounter: 1,
			CurrencySymbol:  "₹",
			DefaultTaxRate:  decimal.NewFromInt(18),
		},
	}
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.BusinessSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s *entity.BusinessSettings) error {
	f.settings = s
	return nil
}

func (f *fakeSettingsRepo) NextEstimateNumber(ctx context.Context) (string, error) {
	number := fmt.Sprintf("%s-%04d", f.settings.EstimatePrefix, f.settings.EstimateCounter)
	f.settings.EstimateCounter++
	return number, nil
}

func newTestEstimateService() (*EstimateService, *fakeEstimateRepo, *fakeEstimateItemRepo, *fakeCustomerRepo, *fakeSettingsRepo) {
	estimateRepo := newFakeEstimateRepo()
	itemRepo := newFakeEstimateItemRepo()
	customerRepo := newFakeCustomerRepo()
	settingsRepo := newFakeSettingsRepo()
	svc := NewEstimateService(estimateRepo, itemRepo, customerRepo, settingsRepo, email.NewMailer())
	return svc, estimateRepo, itemRepo, customerRepo, settingsRepo
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCreateEstimate(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and freezes totals", func(t *testing.T) {
		svc, _, itemRepo, _, _ := newTestEstimateService()

		estimate, err := svc.CreateEstimate(ctx, &CreateEstimateInput{
			Date:               time.Now(),
			GlobalDiscountRate: d("10"),
			Lines: []EstimateLineInput{
				{Name: "Widget", Quantity: d("2"), UnitPrice: d("50")},
				{Name: "Gadget", Quantity: d("4"), UnitPrice: d("50")},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "EST-0001", estimate.Number)
		assert.Equal(t, enum.EstimateStatusDraft, estimate.Status)
		assert.True(t, estimate.Subtotal.Equal(d("300")), "subtotal %s", estimate.Subtotal)
		assert.True(t, estimate.GlobalDiscountAmount.Equal(d("30")))
		assert.True(t, estimate.TotalTax.Equal(d("48.6")), "tax %s", estimate.TotalTax)
		assert.True(t, estimate.GrandTotal.Equal(d("318.6")), "grand %s", estimate.GrandTotal)

		stored, err := itemRepo.GetByEstimateID(ctx, estimate.ID)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.True(t, stored[0].LineTotal.Equal(d("100")))
		assert.True(t, stored[1].LineTotal.Equal(d("200")))
	})

	t.Run("numbers are sequential", func(t *testing.T) {
		svc, _, _, _, _ := newTestEstimateService()

		first, err := svc.CreateEstimate(ctx, &CreateEstimateInput{Date: time.Now()})
		require.NoError(t, err)
		second, err := svc.CreateEstimate(ctx, &CreateEstimateInput{Date: time.Now()})
		require.NoError(t, err)

		assert.Equal(t, "EST-0001", first.Number)
		assert.Equal(t, "EST-0002", second.Number)
	})

	t.Run("uses default tax rate from settings", func(t *testing.T) {
		svc, _, _, _, _ := newTestEstimateService()

		estimate, err := svc.CreateEstimate(ctx, &CreateEstimateInput{
			Date:  time.Now(),
			Lines: []EstimateLineInput{{Name: "Widget", Quantity: d("1"), UnitPrice: d("100")}},
		})
		require.NoError(t, err)

		assert.True(t, estimate.GlobalTaxRate.Equal(d("18")))
		assert.True(t, estimate.GrandTotal.Equal(d("118")))
	})

	t.Run("snapshots the customer", func(t *testing.T) {
		svc, _, _, customerRepo, _ := newTestEstimateService()

		addr := "alex@example.com"
		customer := &entity.Customer{Name: "Alex Traders", Email: &addr}
		require.NoError(t, customerRepo.Create(ctx, customer))

		estimate, err := svc.CreateEstimate(ctx, &CreateEstimateInput{
			CustomerID: &customer.ID,
			Date:       time.Now(),
		})
		require.NoError(t, err)

		assert.Equal(t, "Alex Traders", estimate.CustomerName)
		require.NotNil(t, estimate.CustomerEmail)
		assert.Equal(t, "alex@example.com", *estimate.CustomerEmail)
	})

	t.Run("empty document saves with zero totals", func(t *testing.T) {
		svc, _, _, _, _ := newTestEstimateService()

		estimate, err := svc.CreateEstimate(ctx, &CreateEstimateInput{Date: time.Now()})
		require.NoError(t, err)

		assert.True(t, estimate.Subtotal.IsZero())
		assert.True(t, estimate.GrandTotal.IsZero())
	})

	t.Run("rejects invalid line input", func(t *testing.T) {
		svc, _, _, _, _ := newTestEstimateService()

		_, err := svc.CreateEstimate(ctx, &CreateEstimateInput{
			Date:  time.Now(),
			Lines: []EstimateLineInput{{Name: "Bad", Quantity: d("-1"), UnitPrice: d("10")}},
		})
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 422, appErr.Code)
	})

	t.Run("unknown customer rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestEstimateService()

		missing := uuid.New()
		_, err := svc.CreateEstimate(ctx, &CreateEstimateInput{
			CustomerID: &missing,
			Date:       time.Now(),
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestUpdateEstimate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces lines and recomputes totals", func(t *testing.T) {
		svc, _, itemRepo, _, _ := newTestEstimateService()

		created, err := svc.CreateEstimate(ctx, &CreateEstimateInput{
			Date:  time.Now(),
			Lines: []EstimateLineInput{{Name: "Widget", Quantity: d("1"), UnitPrice: d("100")}},
		})
		require.NoError(t, err)

		zero := d("0")
		updated, err := svc.UpdateEstimate(ctx, &UpdateEstimateInput{
			ID:                 created.ID,
			GlobalDiscountRate: &zero,
			GlobalTaxRate:      &zero,
			Lines: []EstimateLineInput{
				{Name: "Gadget", Quantity: d("3"), UnitPrice: d("200")},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, created.Number, updated.Number)
		assert.True(t, updated.Subtotal.Equal(d("600")), "subtotal %s", updated.Subtotal)
		assert.True(t, updated.GrandTotal.Equal(d("600")))

		stored, err := itemRepo.GetByEstimateID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Gadget", stored[0].Name)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _, _, _ := newTestEstimateService()

		_, err := svc.UpdateEstimate(ctx, &UpdateEstimateInput{ID: uuid.New()})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestUpdateEstimateStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newTestEstimateService()

	created, err := svc.CreateEstimate(ctx, &CreateEstimateInput{Date: time.Now()})
	require.NoError(t, err)

	updated, err := svc.UpdateEstimateStatus(ctx, created.ID, enum.EstimateStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, enum.EstimateStatusPaid, updated.Status)

	_, err = svc.UpdateEstimateStatus(ctx, created.ID, enum.EstimateStatus("archived"))
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestDeleteEstimate(t *testing.T) {
	ctx := context.Background()
	svc, estimateRepo, itemRepo, _, _ := newTestEstimateService()

	created, err := svc.CreateEstimate(ctx, &CreateEstimateInput{
		Date:  time.Now(),
		Lines: []EstimateLineInput{{Name: "Widget", Quantity: d("1"), UnitPrice: d("10")}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEstimate(ctx, created.ID))

	gone, err := estimateRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	items, err := itemRepo.GetByEstimateID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.DeleteEstimate(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSendEstimateRequiresEmailConfig(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newTestEstimateService()

	created, err := svc.CreateEstimate(ctx, &CreateEstimateInput{Date: time.Now()})
	require.NoError(t, err)

	_, err = svc.SendEstimate(ctx, &SendEstimateInput{ID: created.ID, ToEmail: "someone@example.com"})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestListEstimates(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newTestEstimateService()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateEstimate(ctx, &CreateEstimateInput{Date: time.Now()})
		require.NoError(t, err)
	}

	result, err := svc.ListEstimates(ctx, &ListEstimatesInput{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, int64(3), result.Pagination.Total)

	bad := enum.EstimateStatus("archived")
	_, err = svc.ListEstimates(ctx, &ListEstimatesInput{
		Pagination: pagination.DefaultPagination(),
		Status:     &bad,
	})
	require.Error(t, err)
}
