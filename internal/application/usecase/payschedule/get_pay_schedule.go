// Package payschedule contains pay schedule-related use cases.
package payschedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// GetPayScheduleInput represents the input for getting the user's pay schedule.
type GetPayScheduleInput struct {
	UserID uuid.UUID
}

// GetPayScheduleOutput represents the output of getting the user's pay schedule.
type GetPayScheduleOutput struct {
	Schedule *entity.PaySchedule
}

// GetPayScheduleUseCase handles retrieving the user's pay schedule.
type GetPayScheduleUseCase struct {
	scheduleRepo adapter.PayScheduleRepository
}

// NewGetPayScheduleUseCase creates a new GetPayScheduleUseCase instance.
func NewGetPayScheduleUseCase(scheduleRepo adapter.PayScheduleRepository) *GetPayScheduleUseCase {
	return &GetPayScheduleUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute retrieves the user's pay schedule.
func (uc *GetPayScheduleUseCase) Execute(ctx context.Context, input GetPayScheduleInput) (*GetPayScheduleOutput, error) {
	schedule, err := uc.scheduleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find pay schedule: %w", err)
	}
	if schedule == nil {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodePayScheduleNotFound,
			"pay schedule not configured",
			domainerror.ErrPayScheduleNotFound,
		)
	}

	return &GetPayScheduleOutput{Schedule: schedule}, nil
}
