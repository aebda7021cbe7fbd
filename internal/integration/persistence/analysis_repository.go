// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/application/usecase/analysis"
	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/integration/persistence/model"
)

// analysisRepository implements the analysis.AnalysisRepository interface.
// It is the read model for the overspending engine and runs one query per
// lookup rather than preloading relationships the engine does not need.
type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository instance.
func NewAnalysisRepository(db *gorm.DB) analysis.AnalysisRepository {
	return &analysisRepository{
		db: db,
	}
}

// GetPaySchedule returns the user's pay schedule, or nil when none is configured.
func (r *analysisRepository) GetPaySchedule(ctx context.Context, userID uuid.UUID) (*entity.PaySchedule, error) {
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

// GetActiveBudgetCategories returns the user's active budget categories.
func (r *analysisRepository) GetActiveBudgetCategories(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetCategory, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.BudgetCategory, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// GetTransactionsInRange returns the user's transactions with dates in
// [startDate, endDate], both endpoints inclusive, ordered by date descending.
// Uncategorized transactions are included.
func (r *analysisRepository) GetTransactionsInRange(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
