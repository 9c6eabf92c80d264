package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/enum"
	domainRepo "github.com/sahilrao/billforge/internal/domain/repository"
	"github.com/sahilrao/billforge/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Customer{},
		&entity.Item{},
		&entity.Estimate{},
		&entity.EstimateItem{},
		&entity.BusinessSettings{},
	))

	return db
}

func seedSettings(t *testing.T, db *gorm.DB) *entity.BusinessSettings {
	t.Helper()

	settings := &entity.BusinessSettings{
		BusinessName:    "Test Business",
		EstimatePrefix:  "EST",
		EstimateCounter: 1,
		CurrencySymbol:  "₹",
		DefaultTaxRate:  decimal.NewFromInt(18),
	}
	require.NoError(t, db.Create(settings).Error)
	return settings
}

func TestNextEstimateNumber(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedSettings(t, db)

	repo := NewSettingsRepository(db)

	first, err := repo.NextEstimateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EST-0001", first)

	second, err := repo.NextEstimateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EST-0002", second)

	// Counter survives a prefix change; only the prefix moves.
	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	settings.EstimatePrefix = "INV"
	require.NoError(t, repo.Update(ctx, settings))

	third, err := repo.NextEstimateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0003", third)
}

func TestEstimateRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	estimateRepo := NewEstimateRepository(db)
	itemRepo := NewEstimateItemRepository(db)

	notes := "Deliver by Friday"
	estimate := &entity.Estimate{
		Number:               "EST-0001",
		CustomerName:         "Alex Traders",
		Date:                 time.Now(),
		Notes:                &notes,
		Subtotal:             decimal.NewFromInt(300),
		GlobalDiscountRate:   decimal.NewFromInt(10),
		GlobalDiscountAmount: decimal.NewFromInt(30),
		GlobalTaxRate:        decimal.NewFromInt(18),
		TotalTax:             decimal.NewFromFloat(48.6),
		GrandTotal:           decimal.NewFromFloat(318.6),
		Status:               enum.EstimateStatusDraft,
	}
	require.NoError(t, estimateRepo.Create(ctx, estimate))

	items := []entity.EstimateItem{
		{
			EstimateID: estimate.ID,
			SKU:        "WID-01",
			Name:       "Widget",
			Quantity:   decimal.NewFromInt(2),
			UnitPrice:  decimal.NewFromInt(50),
			LineTotal:  decimal.NewFromInt(100),
		},
		{
			EstimateID: estimate.ID,
			SKU:        "GAD-01",
			Name:       "Gadget",
			Quantity:   decimal.NewFromInt(4),
			UnitPrice:  decimal.NewFromInt(50),
			LineTotal:  decimal.NewFromInt(200),
		},
	}
	require.NoError(t, itemRepo.CreateBatch(ctx, items))

	loaded, err := estimateRepo.GetWithItems(ctx, estimate.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "EST-0001", loaded.Number)
	assert.True(t, loaded.GrandTotal.Equal(decimal.NewFromFloat(318.6)), "grand %s", loaded.GrandTotal)
	require.Len(t, loaded.Items, 2)

	byNumber, err := estimateRepo.GetByNumber(ctx, "EST-0001")
	require.NoError(t, err)
	require.NotNil(t, byNumber)
	assert.Equal(t, estimate.ID, byNumber.ID)

	byID, err := estimateRepo.GetByID(ctx, estimate.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	require.NoError(t, itemRepo.DeleteByEstimateID(ctx, estimate.ID))
	remaining, err := itemRepo.GetByEstimateID(ctx, estimate.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	require.NoError(t, estimateRepo.Delete(ctx, estimate.ID))
	gone, err := estimateRepo.GetByID(ctx, estimate.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestEstimateListFilters(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewEstimateRepository(db)

	statuses := []enum.EstimateStatus{
		enum.EstimateStatusDraft,
		enum.EstimateStatusSent,
		enum.EstimateStatusPaid,
	}
	for i, status := range statuses {
		est := &entity.Estimate{
			Number:       "EST-000" + string(rune('1'+i)),
			CustomerName: "Customer",
			Date:         time.Now(),
			Status:       status,
			GrandTotal:   decimal.NewFromInt(100),
		}
		require.NoError(t, repo.Create(ctx, est))
	}

	sent := enum.EstimateStatusSent
	results, total, err := repo.List(ctx, &domainRepo.EstimateFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &sent,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, enum.EstimateStatusSent, results[0].Status)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[enum.EstimateStatusDraft])
	assert.Equal(t, int64(1), counts[enum.EstimateStatusSent])
	assert.Equal(t, int64(1), counts[enum.EstimateStatusPaid])

	revenue, err := repo.RevenueSince(ctx, time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromInt(100)), "revenue %s", revenue)
}

func TestItemRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	item := &entity.Item{
		SKU:           "WID-01",
		Name:          "Widget",
		Price:         decimal.NewFromInt(50),
		Unit:          "nos",
		StockQuantity: 5,
		LowStockAlert: 10,
		IsActive:      true,
	}
	require.NoError(t, repo.Create(ctx, item))

	bySKU, err := repo.GetBySKU(ctx, "WID-01")
	require.NoError(t, err)
	require.NotNil(t, bySKU)
	assert.Equal(t, item.ID, bySKU.ID)

	low, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "WID-01", low[0].SKU)

	item.StockQuantity = 50
	require.NoError(t, repo.Update(ctx, item))

	low, err = repo.ListLowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)

	results, total, err := repo.List(ctx, &domainRepo.ItemFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     "Wid",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
}
