// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testSchedule(frequency valueobject.PayFrequency, lastPayDate time.Time) *entity.PaySchedule {
	return &entity.PaySchedule{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Frequency:   frequency,
		LastPayDate: lastPayDate,
	}
}

func TestReconstructPayPeriods_BiweeklyRecentAnchor(t *testing.T) {
	// Last pay 2025-01-03, biweekly. As of 2025-02-01 the two most recent
	// completed periods are Jan 3-16 and Jan 17-30, oldest first.
	schedule := testSchedule(valueobject.PayFrequencyBiweekly, date(2025, time.January, 3))

	periods, err := reconstructPayPeriods(schedule, 2, date(2025, time.February, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}

	expected := []struct {
		start time.Time
		end   time.Time
	}{
		{date(2025, time.January, 3), date(2025, time.January, 16)},
		{date(2025, time.January, 17), date(2025, time.January, 30)},
	}

	for i, want := range expected {
		if !periods[i].StartDate.Equal(want.start) {
			t.Errorf("period %d: expected start %s, got %s", i, want.start, periods[i].StartDate)
		}
		if !periods[i].EndDate.Equal(want.end) {
			t.Errorf("period %d: expected end %s, got %s", i, want.end, periods[i].EndDate)
		}
	}
}

func TestReconstructPayPeriods_ContiguousAndCompleted(t *testing.T) {
	tests := []struct {
		name      string
		frequency valueobject.PayFrequency
		lastPay   time.Time
		asOf      time.Time
		count     int
	}{
		{
			name:      "weekly recent anchor",
			frequency: valueobject.PayFrequencyWeekly,
			lastPay:   date(2025, time.March, 7),
			asOf:      date(2025, time.June, 15),
			count:     6,
		},
		{
			name:      "biweekly anchor years in the past",
			frequency: valueobject.PayFrequencyBiweekly,
			lastPay:   date(2020, time.January, 10),
			asOf:      date(2025, time.June, 15),
			count:     6,
		},
		{
			name:      "biweekly anchor in the future",
			frequency: valueobject.PayFrequencyBiweekly,
			lastPay:   date(2025, time.September, 5),
			asOf:      date(2025, time.June, 15),
			count:     4,
		},
		{
			name:      "periods extending before the anchor",
			frequency: valueobject.PayFrequencyBiweekly,
			lastPay:   date(2025, time.January, 3),
			asOf:      date(2025, time.February, 1),
			count:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := testSchedule(tt.frequency, tt.lastPay)

			periods, err := reconstructPayPeriods(schedule, tt.count, tt.asOf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(periods) != tt.count {
				t.Fatalf("expected %d periods, got %d", tt.count, len(periods))
			}

			freqDays := tt.frequency.Days()
			for i, period := range periods {
				if got := period.Days(); got != freqDays {
					t.Errorf("period %d: expected %d days, got %d", i, freqDays, got)
				}
				if period.EndDate.After(tt.asOf) {
					t.Errorf("period %d: end %s is after asOf %s", i, period.EndDate, tt.asOf)
				}
				if i > 0 {
					wantStart := periods[i-1].EndDate.AddDate(0, 0, 1)
					if !period.StartDate.Equal(wantStart) {
						t.Errorf("period %d: expected start %s (contiguous), got %s", i, wantStart, period.StartDate)
					}
				}
			}

			// The period after the newest one must still be incomplete,
			// otherwise the walk stopped one step early.
			nextEnd := periods[len(periods)-1].EndDate.AddDate(0, 0, freqDays)
			if !nextEnd.After(tt.asOf) {
				t.Errorf("expected the following period (ending %s) to be incomplete as of %s", nextEnd, tt.asOf)
			}
		})
	}
}

func TestReconstructPayPeriods_AsOfBoundary(t *testing.T) {
	schedule := testSchedule(valueobject.PayFrequencyBiweekly, date(2025, time.January, 3))

	// A period ending exactly on asOf is completed.
	t.Run("asOf equals period end", func(t *testing.T) {
		periods, err := reconstructPayPeriods(schedule, 1, date(2025, time.January, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !periods[0].StartDate.Equal(date(2025, time.January, 17)) {
			t.Errorf("expected start 2025-01-17, got %s", periods[0].StartDate)
		}
	})

	// One day earlier the same period is still open.
	t.Run("asOf one day before period end", func(t *testing.T) {
		periods, err := reconstructPayPeriods(schedule, 1, date(2025, time.January, 29))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !periods[0].StartDate.Equal(date(2025, time.January, 3)) {
			t.Errorf("expected start 2025-01-03, got %s", periods[0].StartDate)
		}
	})
}

func TestReconstructPayPeriods_NoSchedule(t *testing.T) {
	_, err := reconstructPayPeriods(nil, 6, date(2025, time.February, 1))
	if err == nil {
		t.Fatal("expected error for missing schedule")
	}

	var analysisErr *domainerror.AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("expected AnalysisError, got %T", err)
	}
	if analysisErr.Code != domainerror.ErrCodeScheduleNotConfigured {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeScheduleNotConfigured, analysisErr.Code)
	}
	if !errors.Is(err, domainerror.ErrPayScheduleNotConfigured) {
		t.Error("expected error to wrap ErrPayScheduleNotConfigured")
	}
}

func TestReconstructPayPeriods_IterationCeiling(t *testing.T) {
	tests := []struct {
		name    string
		lastPay time.Time
	}{
		{name: "anchor centuries in the past", lastPay: date(1400, time.January, 3)},
		{name: "anchor centuries in the future", lastPay: date(2600, time.January, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := testSchedule(valueobject.PayFrequencyBiweekly, tt.lastPay)

			_, err := reconstructPayPeriods(schedule, 2, date(2025, time.February, 1))
			if err == nil {
				t.Fatal("expected convergence error")
			}
			if !errors.Is(err, domainerror.ErrScheduleNotConverged) {
				t.Errorf("expected ErrScheduleNotConverged, got %v", err)
			}
		})
	}
}

func TestReconstructPayPeriods_TimeOfDayIgnored(t *testing.T) {
	// Anchor and asOf carry time-of-day; the derived periods must match the
	// pure calendar-date reconstruction.
	schedule := testSchedule(
		valueobject.PayFrequencyBiweekly,
		time.Date(2025, time.January, 3, 17, 45, 12, 0, time.UTC),
	)

	periods, err := reconstructPayPeriods(schedule, 2, time.Date(2025, time.February, 1, 8, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !periods[0].StartDate.Equal(date(2025, time.January, 3)) {
		t.Errorf("expected start 2025-01-03, got %s", periods[0].StartDate)
	}
	if !periods[1].EndDate.Equal(date(2025, time.January, 30)) {
		t.Errorf("expected end 2025-01-30, got %s", periods[1].EndDate)
	}
}
