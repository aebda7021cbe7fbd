// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
)

// ListHistoryInput represents the input for listing past analysis snapshots.
type ListHistoryInput struct {
	UserID uuid.UUID
	Limit  int
}

// ListHistoryOutput represents the output of listing past analysis snapshots.
type ListHistoryOutput struct {
	Snapshots []*entity.ReportSnapshot
}

// ListHistoryUseCase handles listing a user's persisted analysis snapshots.
type ListHistoryUseCase struct {
	snapshotRepo adapter.ReportSnapshotRepository
}

// NewListHistoryUseCase creates a new ListHistoryUseCase instance.
func NewListHistoryUseCase(snapshotRepo adapter.ReportSnapshotRepository) *ListHistoryUseCase {
	return &ListHistoryUseCase{
		snapshotRepo: snapshotRepo,
	}
}

// Execute retrieves the user's snapshots, newest first.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, input ListHistoryInput) (*ListHistoryOutput, error) {
	// Set default limit
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	snapshots, err := uc.snapshotRepo.FindByUser(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list report snapshots: %w", err)
	}

	return &ListHistoryOutput{Snapshots: snapshots}, nil
}
