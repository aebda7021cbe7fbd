// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/integration/persistence/model"
)

// reportSnapshotRepository implements the adapter.ReportSnapshotRepository interface.
type reportSnapshotRepository struct {
	db *gorm.DB
}

// NewReportSnapshotRepository creates a new report snapshot repository instance.
func NewReportSnapshotRepository(db *gorm.DB) adapter.ReportSnapshotRepository {
	return &reportSnapshotRepository{
		db: db,
	}
}

// Create stores a snapshot of one completed analysis run.
func (r *reportSnapshotRepository) Create(ctx context.Context, snapshot *entity.ReportSnapshot) error {
	snapshotModel := model.ReportSnapshotFromEntity(snapshot)
	result := r.db.WithContext(ctx).Create(snapshotModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves the user's snapshots, newest first, up to limit.
func (r *reportSnapshotRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReportSnapshot, error) {
	var snapshotModels []model.ReportSnapshotModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshots := make([]*entity.ReportSnapshot, len(snapshotModels))
	for i, sm := range snapshotModels {
		snapshots[i] = sm.ToEntity()
	}
	return snapshots, nil
}
