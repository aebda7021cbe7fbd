// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportSnapshot is a persisted record of one completed overspending analysis,
// kept so users can review past digests and compare runs over time.
type ReportSnapshot struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	AsOf               time.Time
	PeriodsAnalyzed    int
	PayFrequency       string
	TotalOverspent     decimal.Decimal
	AverageOverspent   decimal.Decimal
	ProblemCategoryIDs []uuid.UUID
	CreatedAt          time.Time
}

// NewReportSnapshot creates a new ReportSnapshot entity.
func NewReportSnapshot(
	userID uuid.UUID,
	asOf time.Time,
	periodsAnalyzed int,
	payFrequency string,
	totalOverspent, averageOverspent decimal.Decimal,
	problemCategoryIDs []uuid.UUID,
) *ReportSnapshot {
	return &ReportSnapshot{
		ID:                 uuid.New(),
		UserID:             userID,
		AsOf:               asOf,
		PeriodsAnalyzed:    periodsAnalyzed,
		PayFrequency:       payFrequency,
		TotalOverspent:     totalOverspent,
		AverageOverspent:   averageOverspent,
		ProblemCategoryIDs: problemCategoryIDs,
		CreatedAt:          time.Now().UTC(),
	}
}
