// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/integration/persistence/model"
)

// payScheduleRepository implements the adapter.PayScheduleRepository interface.
type payScheduleRepository struct {
	db *gorm.DB
}

// NewPayScheduleRepository creates a new pay schedule repository instance.
func NewPayScheduleRepository(db *gorm.DB) adapter.PayScheduleRepository {
	return &payScheduleRepository{
		db: db,
	}
}

// FindByUser retrieves the user's pay schedule, or nil when none is configured.
func (r *payScheduleRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.PaySchedule, error) {
	var scheduleModel model.PayScheduleModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&scheduleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return scheduleModel.ToEntity(), nil
}

// Upsert creates the user's pay schedule or replaces the existing one.
// Callers keep the schedule ID stable across replacements, so Save updates
// in place for an existing schedule and inserts for a new one.
func (r *payScheduleRepository) Upsert(ctx context.Context, schedule *entity.PaySchedule) error {
	scheduleModel := model.PayScheduleFromEntity(schedule)
	result := r.db.WithContext(ctx).Save(scheduleModel)
	return result.Error
}
