// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/entity"
)

// ReportSnapshotRepository defines the interface for persisted analysis snapshots.
type ReportSnapshotRepository interface {
	// Create stores a snapshot of one completed analysis run.
	Create(ctx context.Context, snapshot *entity.ReportSnapshot) error

	// FindByUser retrieves the user's snapshots, newest first, up to limit.
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReportSnapshot, error)
}
