// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"time"

	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

// DefaultPeriodsRequested is the number of periods analyzed when the caller
// does not specify a count.
const DefaultPeriodsRequested = 6

// maxAnchorSteps bounds the anchor walk so a degenerate schedule cannot spin
// forever. At a biweekly cadence this covers roughly 380 years either way.
const maxAnchorSteps = 10000

// reconstructPayPeriods derives the count most recent completed pay periods
// from the schedule anchor, oldest first. A pay period starts on a pay date
// and spans frequency days inclusive; a period is completed once its end date
// is not after asOf. Consecutive results are contiguous and non-overlapping.
func reconstructPayPeriods(schedule *entity.PaySchedule, count int, asOf time.Time) ([]valueobject.PayPeriod, error) {
	if schedule == nil {
		return nil, domainerror.NewAnalysisError(
			domainerror.ErrCodeScheduleNotConfigured,
			"pay schedule not configured",
			domainerror.ErrPayScheduleNotConfigured,
		)
	}

	freqDays := schedule.Frequency.Days()
	if freqDays == 0 {
		return nil, domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidFrequency,
			"pay frequency must be 'weekly' or 'biweekly'",
			domainerror.ErrInvalidPayFrequency,
		)
	}

	anchor := valueobject.NormalizeToMidnightUTC(schedule.LastPayDate)
	today := valueobject.NormalizeToMidnightUTC(asOf)

	// Advance a past anchor to the latest pay date whose period has fully
	// elapsed, then walk a future anchor backward until its period end is no
	// longer ahead of asOf. Both walks share one step ceiling.
	steps := 0
	for {
		next := anchor.AddDate(0, 0, freqDays)
		if periodEndFor(next, freqDays).After(today) {
			break
		}
		anchor = next
		if steps++; steps > maxAnchorSteps {
			return nil, newScheduleNotConvergedError()
		}
	}
	for periodEndFor(anchor, freqDays).After(today) {
		anchor = anchor.AddDate(0, 0, -freqDays)
		if steps++; steps > maxAnchorSteps {
			return nil, newScheduleNotConvergedError()
		}
	}

	// anchor now starts the most recent completed period. Fill backward so
	// the result is chronological.
	periods := make([]valueobject.PayPeriod, count)
	for i := count - 1; i >= 0; i-- {
		period, err := valueobject.NewPayPeriod(anchor, periodEndFor(anchor, freqDays))
		if err != nil {
			return nil, domainerror.NewAnalysisError(
				domainerror.ErrCodeAnalysisInternal,
				"failed to construct pay period",
				err,
			)
		}
		periods[i] = period
		anchor = anchor.AddDate(0, 0, -freqDays)
	}

	return periods, nil
}

// periodEndFor returns the inclusive end date of the period starting at the
// given pay date.
func periodEndFor(payDate time.Time, freqDays int) time.Time {
	return payDate.AddDate(0, 0, freqDays-1)
}

func newScheduleNotConvergedError() *domainerror.AnalysisError {
	return domainerror.NewAnalysisError(
		domainerror.ErrCodeScheduleNotConverged,
		"no completed pay period found within the iteration ceiling",
		domainerror.ErrScheduleNotConverged,
	)
}
