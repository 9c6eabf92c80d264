package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/enum"
	domainRepo "github.com/sahilrao/billforge/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type estimateRepository struct {
	db *gorm.DB
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *gorm.DB) domainRepo.EstimateRepository {
	return &estimateRepository{db: db}
}

func (r *estimateRepository) Create(ctx context.Context, estimate *entity.Estimate) error {
	return r.db.WithContext(ctx).Create(estimate).Error
}

func (r *estimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := r.db.WithContext(ctx).First(&estimate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &estimate, err
}

func (r *estimateRepository) GetByNumber(ctx context.Context, number string) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := r.db.WithContext(ctx).First(&estimate, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &estimate, err
}

func (r *estimateRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&estimate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &estimate, err
}

func (r *estimateRepository) Update(ctx context.Context, estimate *entity.Estimate) error {
	return r.db.WithContext(ctx).Save(estimate).Error
}

func (r *estimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Estimate{}, "id = ?", id).Error
}

func (r *estimateRepository) List(ctx context.Context, params *domainRepo.EstimateFilterParams) ([]entity.Estimate, int64, error) {
	var estimates []entity.Estimate
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Estimate{})

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("number LIKE ? OR customer_name LIKE ?", term, term)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Order("created_at DESC").
		Find(&estimates).Error

	return estimates, total, err
}

func (r *estimateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.EstimateStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Estimate{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *estimateRepository) CountByStatus(ctx context.Context) (map[enum.EstimateStatus]int64, error) {
	type row struct {
		Status enum.EstimateStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.Estimate{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.EstimateStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *estimateRepository) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&entity.Estimate{}).
		Select("COALESCE(SUM(grand_total), 0) as total").
		Where("status = ?", enum.EstimateStatusPaid).
		Where("date >= ?", since).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

type estimateItemRepository struct {
	db *gorm.DB
}

// NewEstimateItemRepository creates a new estimate item repository
func NewEstimateItemRepository(db *gorm.DB) domainRepo.EstimateItemRepository {
	return &estimateItemRepository{db: db}
}

func (r *estimateItemRepository) CreateBatch(ctx context.Context, items []entity.EstimateItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *estimateItemRepository) GetByEstimateID(ctx context.Context, estimateID uuid.UUID) ([]entity.EstimateItem, error) {
	var items []entity.EstimateItem
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *estimateItemRepository) DeleteByEstimateID(ctx context.Context, estimateID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.EstimateItem{}, "estimate_id = ?", estimateID).Error
}
