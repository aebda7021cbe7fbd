// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

// PaySchedule is the recurring anchor from which pay periods are derived.
// LastPayDate is a calendar date; time-of-day is never significant.
type PaySchedule struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Frequency   valueobject.PayFrequency
	LastPayDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPaySchedule creates a new PaySchedule entity.
func NewPaySchedule(userID uuid.UUID, frequency valueobject.PayFrequency, lastPayDate time.Time) (*PaySchedule, error) {
	if !frequency.IsValid() {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPayFrequency,
			"pay frequency must be 'weekly' or 'biweekly'",
			domainerror.ErrInvalidPayFrequency,
		)
	}
	if lastPayDate.IsZero() {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidLastPayDate,
			"last pay date is required",
			domainerror.ErrInvalidLastPayDate,
		)
	}

	now := time.Now().UTC()
	return &PaySchedule{
		ID:          uuid.New(),
		UserID:      userID,
		Frequency:   frequency,
		LastPayDate: valueobject.NormalizeToMidnightUTC(lastPayDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
