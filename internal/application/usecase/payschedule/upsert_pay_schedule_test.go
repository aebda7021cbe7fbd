// Package payschedule contains pay schedule-related use cases.
package payschedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

type mockScheduleRepo struct {
	schedule *entity.PaySchedule
	saves    int
}

func (m *mockScheduleRepo) FindByUser(_ context.Context, _ uuid.UUID) (*entity.PaySchedule, error) {
	return m.schedule, nil
}

func (m *mockScheduleRepo) Upsert(_ context.Context, schedule *entity.PaySchedule) error {
	m.schedule = schedule
	m.saves++
	return nil
}

type mockReportCache struct {
	invalidated []uuid.UUID
}

func (m *mockReportCache) Get(_ context.Context, _ string) ([]byte, error) { return nil, nil }
func (m *mockReportCache) Set(_ context.Context, _ string, _ []byte) error { return nil }
func (m *mockReportCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	m.invalidated = append(m.invalidated, userID)
	return nil
}

func TestUpsertPaySchedule_Execute(t *testing.T) {
	repo := &mockScheduleRepo{}
	cache := &mockReportCache{}
	useCase := NewUpsertPayScheduleUseCase(repo, cache)
	userID := uuid.New()

	t.Run("creates the first schedule", func(t *testing.T) {
		output, err := useCase.Execute(context.Background(), UpsertPayScheduleInput{
			UserID:      userID,
			Frequency:   "biweekly",
			LastPayDate: time.Date(2025, time.January, 3, 15, 4, 5, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Created {
			t.Error("expected Created to be true for the first save")
		}
		if output.Schedule.Frequency != valueobject.PayFrequencyBiweekly {
			t.Errorf("expected biweekly, got %s", output.Schedule.Frequency)
		}
		// Time-of-day is stripped on save.
		want := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)
		if !output.Schedule.LastPayDate.Equal(want) {
			t.Errorf("expected normalized date %s, got %s", want, output.Schedule.LastPayDate)
		}
		if len(cache.invalidated) != 1 || cache.invalidated[0] != userID {
			t.Error("expected the user's cached reports to be invalidated")
		}
	})

	t.Run("replaces the existing schedule in place", func(t *testing.T) {
		existingID := repo.schedule.ID

		output, err := useCase.Execute(context.Background(), UpsertPayScheduleInput{
			UserID:      userID,
			Frequency:   "weekly",
			LastPayDate: time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Created {
			t.Error("expected Created to be false for a replacement")
		}
		if output.Schedule.ID != existingID {
			t.Error("expected the schedule id to be preserved on replacement")
		}
		if output.Schedule.Frequency != valueobject.PayFrequencyWeekly {
			t.Errorf("expected weekly, got %s", output.Schedule.Frequency)
		}
		if repo.saves != 2 {
			t.Errorf("expected 2 saves, got %d", repo.saves)
		}
	})
}

func TestUpsertPaySchedule_Validation(t *testing.T) {
	tests := []struct {
		name        string
		frequency   string
		lastPayDate time.Time
		expectedErr error
	}{
		{
			name:        "unknown frequency",
			frequency:   "monthly",
			lastPayDate: time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC),
			expectedErr: domainerror.ErrInvalidPayFrequency,
		},
		{
			name:        "empty frequency",
			frequency:   "",
			lastPayDate: time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC),
			expectedErr: domainerror.ErrInvalidPayFrequency,
		},
		{
			name:        "missing last pay date",
			frequency:   "weekly",
			expectedErr: domainerror.ErrInvalidLastPayDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockScheduleRepo{}
			useCase := NewUpsertPayScheduleUseCase(repo, nil)

			_, err := useCase.Execute(context.Background(), UpsertPayScheduleInput{
				UserID:      uuid.New(),
				Frequency:   tt.frequency,
				LastPayDate: tt.lastPayDate,
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
			if repo.saves != 0 {
				t.Error("expected nothing to be saved on invalid input")
			}
		})
	}
}

func TestGetPaySchedule_NotConfigured(t *testing.T) {
	useCase := NewGetPayScheduleUseCase(&mockScheduleRepo{})

	_, err := useCase.Execute(context.Background(), GetPayScheduleInput{UserID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for missing schedule")
	}

	var scheduleErr *domainerror.ScheduleError
	if !errors.As(err, &scheduleErr) {
		t.Fatalf("expected ScheduleError, got %T", err)
	}
	if scheduleErr.Code != domainerror.ErrCodePayScheduleNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodePayScheduleNotFound, scheduleErr.Code)
	}
}
