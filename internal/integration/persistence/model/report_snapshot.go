// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/domain/entity"
)

// ReportSnapshotModel represents the report_snapshots table in the database.
type ReportSnapshotModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	AsOf               time.Time       `gorm:"type:date;not null"`
	PeriodsAnalyzed    int             `gorm:"not null"`
	PayFrequency       string          `gorm:"type:varchar(10);not null"`
	TotalOverspent     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AverageOverspent   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ProblemCategoryIDs pq.StringArray  `gorm:"type:uuid[]"`
	CreatedAt          time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the ReportSnapshotModel.
func (ReportSnapshotModel) TableName() string {
	return "report_snapshots"
}

// ToEntity converts a ReportSnapshotModel to a domain ReportSnapshot entity.
func (m *ReportSnapshotModel) ToEntity() *entity.ReportSnapshot {
	snapshot := &entity.ReportSnapshot{
		ID:               m.ID,
		UserID:           m.UserID,
		AsOf:             m.AsOf,
		PeriodsAnalyzed:  m.PeriodsAnalyzed,
		PayFrequency:     m.PayFrequency,
		TotalOverspent:   m.TotalOverspent,
		AverageOverspent: m.AverageOverspent,
		CreatedAt:        m.CreatedAt,
	}

	// Convert problem category IDs
	snapshot.ProblemCategoryIDs = make([]uuid.UUID, 0, len(m.ProblemCategoryIDs))
	for _, idStr := range m.ProblemCategoryIDs {
		if id, err := uuid.Parse(idStr); err == nil {
			snapshot.ProblemCategoryIDs = append(snapshot.ProblemCategoryIDs, id)
		}
	}

	return snapshot
}

// ReportSnapshotFromEntity creates a ReportSnapshotModel from a domain ReportSnapshot entity.
func ReportSnapshotFromEntity(snapshot *entity.ReportSnapshot) *ReportSnapshotModel {
	model := &ReportSnapshotModel{
		ID:               snapshot.ID,
		UserID:           snapshot.UserID,
		AsOf:             snapshot.AsOf,
		PeriodsAnalyzed:  snapshot.PeriodsAnalyzed,
		PayFrequency:     snapshot.PayFrequency,
		TotalOverspent:   snapshot.TotalOverspent,
		AverageOverspent: snapshot.AverageOverspent,
		CreatedAt:        snapshot.CreatedAt,
	}

	// Convert problem category IDs
	model.ProblemCategoryIDs = make(pq.StringArray, len(snapshot.ProblemCategoryIDs))
	for i, id := range snapshot.ProblemCategoryIDs {
		model.ProblemCategoryIDs[i] = id.String()
	}

	return model
}
