// Package payschedule contains pay schedule-related use cases.
package payschedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

// UpsertPayScheduleInput represents the input for creating or replacing the
// user's pay schedule.
type UpsertPayScheduleInput struct {
	UserID      uuid.UUID
	Frequency   string
	LastPayDate time.Time
}

// UpsertPayScheduleOutput represents the output of creating or replacing the
// user's pay schedule.
type UpsertPayScheduleOutput struct {
	Schedule *entity.PaySchedule
	Created  bool
}

// UpsertPayScheduleUseCase handles creating or replacing the user's pay
// schedule. A user has at most one schedule.
type UpsertPayScheduleUseCase struct {
	scheduleRepo adapter.PayScheduleRepository
	reportCache  adapter.ReportCache
}

// NewUpsertPayScheduleUseCase creates a new UpsertPayScheduleUseCase instance.
// reportCache may be nil.
func NewUpsertPayScheduleUseCase(
	scheduleRepo adapter.PayScheduleRepository,
	reportCache adapter.ReportCache,
) *UpsertPayScheduleUseCase {
	return &UpsertPayScheduleUseCase{
		scheduleRepo: scheduleRepo,
		reportCache:  reportCache,
	}
}

// Execute creates or replaces the user's pay schedule. Changing the schedule
// changes every derived period, so the user's cached reports are invalidated.
func (uc *UpsertPayScheduleUseCase) Execute(ctx context.Context, input UpsertPayScheduleInput) (*UpsertPayScheduleOutput, error) {
	// Parse and validate the frequency
	frequency, err := valueobject.ParsePayFrequency(input.Frequency)
	if err != nil {
		return nil, err
	}

	if input.LastPayDate.IsZero() {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidLastPayDate,
			"last_pay_date is required",
			domainerror.ErrInvalidLastPayDate,
		)
	}

	// Find the existing schedule, if any
	existing, err := uc.scheduleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find pay schedule: %w", err)
	}

	var schedule *entity.PaySchedule
	created := false

	if existing == nil {
		schedule, err = entity.NewPaySchedule(input.UserID, frequency, input.LastPayDate)
		if err != nil {
			return nil, err
		}
		created = true
	} else {
		existing.Frequency = frequency
		existing.LastPayDate = valueobject.NormalizeToMidnightUTC(input.LastPayDate)
		existing.UpdatedAt = time.Now().UTC()
		schedule = existing
	}

	// Save the schedule
	if err := uc.scheduleRepo.Upsert(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save pay schedule: %w", err)
	}

	// Every derived period may have moved
	if uc.reportCache != nil {
		if err := uc.reportCache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("Failed to invalidate cached reports", "userID", input.UserID, "error", err)
		}
	}

	return &UpsertPayScheduleOutput{
		Schedule: schedule,
		Created:  created,
	}, nil
}
