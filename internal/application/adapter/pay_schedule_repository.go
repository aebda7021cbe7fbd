// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/entity"
)

// PayScheduleRepository defines the interface for pay schedule persistence operations.
// Each user has at most one schedule.
type PayScheduleRepository interface {
	// FindByUser retrieves the user's pay schedule, or nil when none is configured.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.PaySchedule, error)

	// Upsert creates the user's pay schedule or replaces the existing one.
	Upsert(ctx context.Context, schedule *entity.PaySchedule) error
}
