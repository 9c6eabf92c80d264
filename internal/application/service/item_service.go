package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/repository"
	"github.com/sahilrao/billforge/pkg/apperror"
	"github.com/sahilrao/billforge/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ItemService handles inventory catalog operations
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new inventory item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemInput represents the input for creating an inventory item
type CreateItemInput struct {
	SKU                 string
	Name                string
	Description         *string
	Price               decimal.Decimal
	TaxRate             decimal.Decimal
	DefaultDiscountRate decimal.Decimal
	Category            *string
	Unit                string
	StockQuantity       int
	LowStockAlert       int
	SizeMMLength        *float64
	SizeMMWidth         *float64
	SizeMMHeight        *float64
	SizeInchesLength    *float64
	SizeInchesWidth     *float64
	SizeInchesHeight    *float64
	Material            *string
	Finish              *string
	Color               *string
	Weight              *float64
}

// CreateItem creates a new inventory item. SKUs are unique across the catalog.
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	existing, err := s.itemRepo.GetBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An item with this SKU already exists")
	}

	if input.Price.IsNegative() {
		return nil, apperror.NewInvalidInputError("Price must not be negative")
	}

	unit := input.Unit
	if unit == "" {
		unit = "nos"
	}

	item := &entity.Item{
		SKU:                 input.SKU,
		Name:                input.Name,
		Description:         input.Description,
		Price:               input.Price,
		TaxRate:             input.TaxRate,
		DefaultDiscountRate: input.DefaultDiscountRate,
		Category:            input.Category,
		Unit:                unit,
		StockQuantity:       input.StockQuantity,
		LowStockAlert:       input.LowStockAlert,
		SizeMMLength:        input.SizeMMLength,
		SizeMMWidth:         input.SizeMMWidth,
		SizeMMHeight:        input.SizeMMHeight,
		SizeInchesLength:    input.SizeInchesLength,
		SizeInchesWidth:     input.SizeInchesWidth,
		SizeInchesHeight:    input.SizeInchesHeight,
		Material:            input.Material,
		Finish:              input.Finish,
		Color:               input.Color,
		Weight:              input.Weight,
		IsActive:            true,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an inventory item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItemsInput represents the input for listing inventory items
type ListItemsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
}

// ListItems lists inventory items with filtering
func (s *ItemService) ListItems(ctx context.Context, input *ListItemsInput) (*pagination.PaginatedResult[entity.Item], error) {
	params := &repository.ItemFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Category:   input.Category,
		ActiveOnly: input.ActiveOnly,
	}

	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListLowStockItems returns active items at or below their low-stock threshold
func (s *ItemService) ListLowStockItems(ctx context.Context) ([]entity.Item, error) {
	return s.itemRepo.ListLowStock(ctx)
}

// UpdateItemInput represents the input for updating an inventory item
type UpdateItemInput struct {
	ID                  uuid.UUID
	SKU                 *string
	Name                *string
	Description         *string
	Price               *decimal.Decimal
	TaxRate             *decimal.Decimal
	DefaultDiscountRate *decimal.Decimal
	Category            *string
	Unit                *string
	StockQuantity       *int
	LowStockAlert       *int
	IsActive            *bool
}

// UpdateItem updates an existing inventory item
func (s *ItemService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.SKU != nil && *input.SKU != item.SKU {
		existing, err := s.itemRepo.GetBySKU(ctx, *input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("An item with this SKU already exists")
		}
		item.SKU = *input.SKU
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewInvalidInputError("Price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.TaxRate != nil {
		item.TaxRate = *input.TaxRate
	}
	if input.DefaultDiscountRate != nil {
		item.DefaultDiscountRate = *input.DefaultDiscountRate
	}
	if input.Category != nil {
		item.Category = input.Category
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.StockQuantity != nil {
		item.StockQuantity = *input.StockQuantity
	}
	if input.LowStockAlert != nil {
		item.LowStockAlert = *input.LowStockAlert
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes an inventory item
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}
