// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/entity"
)

// AnalysisRepository defines the read-only queries the analysis engine needs.
// All three queries are snapshots: the engine never writes through this
// interface and never retries a failed fetch.
type AnalysisRepository interface {
	// GetPaySchedule returns the user's pay schedule, or nil when none is configured.
	GetPaySchedule(ctx context.Context, userID uuid.UUID) (*entity.PaySchedule, error)

	// GetActiveBudgetCategories returns the user's active budget categories.
	// Inactive categories are excluded here, before any aggregation.
	GetActiveBudgetCategories(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetCategory, error)

	// GetTransactionsInRange returns the user's transactions with dates in
	// [startDate, endDate], inclusive of both endpoints, ordered by date
	// descending. Uncategorized transactions are included.
	GetTransactionsInRange(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*entity.Transaction, error)
}
