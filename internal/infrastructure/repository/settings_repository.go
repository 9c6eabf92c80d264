package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilrao/billforge/internal/domain/entity"
	domainRepo "github.com/sahilrao/billforge/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.BusinessSettings, error) {
	var settings entity.BusinessSettings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.BusinessSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

// NextEstimateNumber increments the counter with a single UPDATE inside a
// transaction, then reads the row back. The increment is a one-statement
// read-modify-write at the database, so concurrent callers cannot be handed
// the same number.
func (r *settingsRepository) NextEstimateNumber(ctx context.Context) (string, error) {
	var number string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var settings entity.BusinessSettings
		if err := tx.Order("created_at ASC").First(&settings).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.BusinessSettings{}).
			Where("id = ?", settings.ID).
			Update("estimate_counter", gorm.Expr("estimate_counter + 1"))
		if result.Error != nil {
			return result.Error
		}

		var updated entity.BusinessSettings
		if err := tx.First(&updated, "id = ?", settings.ID).Error; err != nil {
			return err
		}

		// The issued number is the pre-increment counter value.
		number = fmt.Sprintf("%s-%04d", updated.EstimatePrefix, updated.EstimateCounter-1)
		return nil
	})

	return number, err
}
