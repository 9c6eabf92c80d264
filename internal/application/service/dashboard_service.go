package service

import (
	"context"
	"time"

	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/enum"
	"github.com/sahilrao/billforge/internal/domain/repository"
	"github.com/sahilrao/billforge/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DashboardService aggregates the numbers shown on the home screen
type DashboardService struct {
	estimateRepo repository.EstimateRepository
	itemRepo     repository.ItemRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(estimateRepo repository.EstimateRepository, itemRepo repository.ItemRepository) *DashboardService {
	return &DashboardService{estimateRepo: estimateRepo, itemRepo: itemRepo}
}

// DashboardSummary is the aggregate view for the dashboard
type DashboardSummary struct {
	StatusCounts    map[enum.EstimateStatus]int64 `json:"status_counts"`
	TotalEstimates  int64                         `json:"total_estimates"`
	Revenue30Days   decimal.Decimal               `json:"revenue_30_days"`
	LowStockItems   []entity.Item                 `json:"low_stock_items"`
	RecentEstimates []entity.Estimate             `json:"recent_estimates"`
}

// GetSummary builds the dashboard summary: estimate counts by status, paid
// revenue over the last 30 days, low-stock inventory, and the five most
// recent estimates.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	counts, err := s.estimateRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	revenue, err := s.estimateRepo.RevenueSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	lowStock, err := s.itemRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.estimateRepo.List(ctx, &repository.EstimateFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 5},
		SortBy:     "created_at",
		SortOrder:  "DESC",
	})
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		StatusCounts:    counts,
		TotalEstimates:  total,
		Revenue30Days:   revenue,
		LowStockItems:   lowStock,
		RecentEstimates: recent,
	}, nil
}
