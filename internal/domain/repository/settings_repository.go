package repository

import (
	"context"

	"github.com/sahilrao/billforge/internal/domain/entity"
)

// SettingsRepository defines the interface for business settings operations.
// Settings live in a single row created at migration time.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.BusinessSettings, error)
	Update(ctx context.Context, settings *entity.BusinessSettings) error

	// NextEstimateNumber atomically increments the estimate counter and
	// returns the formatted document number ({prefix}-{counter:04d}). Safe
	// under concurrent document creation.
	NextEstimateNumber(ctx context.Context) (string, error)
}
