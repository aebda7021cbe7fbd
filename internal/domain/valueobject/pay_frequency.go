// Package valueobject contains domain value objects for the PayTrack system.
package valueobject

import (
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// PayFrequency represents how often a user is paid.
type PayFrequency string

const (
	PayFrequencyWeekly   PayFrequency = "weekly"
	PayFrequencyBiweekly PayFrequency = "biweekly"
)

const (
	weeklyDays   = 7
	biweeklyDays = 14
)

// ParsePayFrequency parses a frequency string into a PayFrequency.
func ParsePayFrequency(s string) (PayFrequency, error) {
	f := PayFrequency(s)
	if !f.IsValid() {
		return "", domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPayFrequency,
			"pay frequency must be 'weekly' or 'biweekly'",
			domainerror.ErrInvalidPayFrequency,
		)
	}
	return f, nil
}

// IsValid reports whether the frequency is one of the recognized values.
func (f PayFrequency) IsValid() bool {
	return f == PayFrequencyWeekly || f == PayFrequencyBiweekly
}

// Days returns the length of a pay period in days.
func (f PayFrequency) Days() int {
	switch f {
	case PayFrequencyWeekly:
		return weeklyDays
	case PayFrequencyBiweekly:
		return biweeklyDays
	default:
		return 0
	}
}

// String returns the frequency as a string.
func (f PayFrequency) String() string {
	return string(f)
}
