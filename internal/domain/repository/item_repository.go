package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/pkg/pagination"
)

// ItemRepository defines the interface for inventory item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
	ListLowStock(ctx context.Context) ([]entity.Item, error)
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
