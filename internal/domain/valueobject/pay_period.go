// Package valueobject contains domain value objects for the PayTrack system.
package valueobject

import (
	"time"

	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// PayPeriod is a derived [start, end] date interval, inclusive on both ends.
// Dates carry no time-of-day component; they are normalized to midnight UTC.
type PayPeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewPayPeriod creates a PayPeriod after normalizing both dates to midnight UTC.
func NewPayPeriod(start, end time.Time) (PayPeriod, error) {
	start = NormalizeToMidnightUTC(start)
	end = NormalizeToMidnightUTC(end)
	if end.Before(start) {
		return PayPeriod{}, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPeriodBounds,
			"period end date must not be before start date",
			domainerror.ErrInvalidPeriodBounds,
		)
	}
	return PayPeriod{StartDate: start, EndDate: end}, nil
}

// Days returns the number of calendar days the period covers, inclusive of
// both endpoints.
func (p PayPeriod) Days() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// Contains reports whether the given date falls within the period.
func (p PayPeriod) Contains(date time.Time) bool {
	d := NormalizeToMidnightUTC(date)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// NormalizeToMidnightUTC strips the time-of-day component from a date.
func NormalizeToMidnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
