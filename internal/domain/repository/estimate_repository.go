package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/enum"
	"github.com/sahilrao/billforge/pkg/pagination"
	"github.com/shopspring/decimal"
)

// EstimateRepository defines the interface for estimate data operations. The
// persisted record always carries the frozen totals snapshot alongside the raw
// line items.
type EstimateRepository interface {
	Create(ctx context.Context, estimate *entity.Estimate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Estimate, error)
	GetByNumber(ctx context.Context, number string) (*entity.Estimate, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Estimate, error)
	Update(ctx context.Context, estimate *entity.Estimate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *EstimateFilterParams) ([]entity.Estimate, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.EstimateStatus) error
	CountByStatus(ctx context.Context) (map[enum.EstimateStatus]int64, error)

	// RevenueSince sums the grand totals of paid estimates dated on or
	// after the given time.
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}

// EstimateFilterParams contains filtering parameters for estimate queries
type EstimateFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.EstimateStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// EstimateItemRepository defines the interface for estimate line item data
// operations
type EstimateItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.EstimateItem) error
	GetByEstimateID(ctx context.Context, estimateID uuid.UUID) ([]entity.EstimateItem, error)
	DeleteByEstimateID(ctx context.Context, estimateID uuid.UUID) error
}
