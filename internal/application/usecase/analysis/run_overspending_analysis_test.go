// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

type mockAnalysisRepo struct {
	schedule      *entity.PaySchedule
	scheduleErr   error
	categories    []*entity.BudgetCategory
	categoriesErr error
	// transactions and rangeErrs are keyed by the period start date.
	transactions map[string][]*entity.Transaction
	rangeErrs    map[string]error
	queryCount   int
}

func (m *mockAnalysisRepo) GetPaySchedule(_ context.Context, _ uuid.UUID) (*entity.PaySchedule, error) {
	m.queryCount++
	return m.schedule, m.scheduleErr
}

func (m *mockAnalysisRepo) GetActiveBudgetCategories(_ context.Context, _ uuid.UUID) ([]*entity.BudgetCategory, error) {
	m.queryCount++
	return m.categories, m.categoriesErr
}

func (m *mockAnalysisRepo) GetTransactionsInRange(_ context.Context, _ uuid.UUID, startDate, _ time.Time) ([]*entity.Transaction, error) {
	m.queryCount++
	key := startDate.Format("2006-01-02")
	if err := m.rangeErrs[key]; err != nil {
		return nil, err
	}
	return m.transactions[key], nil
}

type mockReportCache struct {
	store  map[string][]byte
	getErr error
	setErr error
}

func newMockReportCache() *mockReportCache {
	return &mockReportCache{store: make(map[string][]byte)}
}

func (m *mockReportCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.store[key], nil
}

func (m *mockReportCache) Set(_ context.Context, key string, payload []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.store[key] = payload
	return nil
}

func (m *mockReportCache) InvalidateUser(_ context.Context, _ uuid.UUID) error {
	m.store = make(map[string][]byte)
	return nil
}

// scenarioRepo builds a repo for the canonical fixture: biweekly pay anchored
// on 2025-01-03, one 600/month category, 350 spent in the second period.
func scenarioRepo() (*mockAnalysisRepo, *entity.BudgetCategory) {
	groceries := testCategory("Groceries", "600")
	return &mockAnalysisRepo{
		schedule:   testSchedule(valueobject.PayFrequencyBiweekly, date(2025, time.January, 3)),
		categories: []*entity.BudgetCategory{groceries},
		transactions: map[string][]*entity.Transaction{
			"2025-01-17": {
				testTransaction(&groceries.ID, date(2025, time.January, 20), "-350"),
			},
		},
	}, groceries
}

func runInput(periods int) RunOverspendingAnalysisInput {
	return RunOverspendingAnalysisInput{
		UserID:  uuid.New(),
		Periods: periods,
		AsOf:    date(2025, time.February, 1),
	}
}

func TestRunOverspendingAnalysis_Execute(t *testing.T) {
	repo, groceries := scenarioRepo()
	useCase := NewRunOverspendingAnalysisUseCase(repo, nil)

	output, err := useCase.Execute(context.Background(), runInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.CacheHit {
		t.Error("expected a fresh computation, got a cache hit")
	}

	report := output.Report
	if report.PayFrequency != "biweekly" {
		t.Errorf("expected frequency biweekly, got %s", report.PayFrequency)
	}
	if len(report.Periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(report.Periods))
	}

	// Oldest first: Jan 3-16 has no overshoot, Jan 17-30 overshoots by 70.
	if !report.Periods[0].StartDate.Equal(date(2025, time.January, 3)) {
		t.Errorf("expected first period to start 2025-01-03, got %s", report.Periods[0].StartDate)
	}
	if !report.Periods[0].Overspent.IsZero() {
		t.Errorf("expected first period overspent 0, got %s", report.Periods[0].Overspent)
	}
	if !report.Periods[1].Overspent.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected second period overspent 70, got %s", report.Periods[1].Overspent)
	}

	if report.Summary.PeriodsAnalyzed != 2 {
		t.Errorf("expected 2 periods analyzed, got %d", report.Summary.PeriodsAnalyzed)
	}
	if !report.Summary.TotalOverspent.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected summary total 70, got %s", report.Summary.TotalOverspent)
	}
	if len(report.Summary.ProblematicCategories) != 1 {
		t.Fatalf("expected 1 problematic category, got %d", len(report.Summary.ProblematicCategories))
	}
	if report.Summary.ProblematicCategories[0].CategoryID != groceries.ID {
		t.Error("expected Groceries as the problematic category")
	}
}

func TestRunOverspendingAnalysis_InputValidation(t *testing.T) {
	tests := []struct {
		name         string
		input        RunOverspendingAnalysisInput
		expectedCode domainerror.AnalysisErrorCode
	}{
		{
			name:         "zero periods is rejected, not defaulted",
			input:        runInput(0),
			expectedCode: domainerror.ErrCodeInvalidPeriodsRequested,
		},
		{
			name:         "negative periods",
			input:        runInput(-3),
			expectedCode: domainerror.ErrCodeInvalidPeriodsRequested,
		},
		{
			name:         "missing asOf date",
			input:        RunOverspendingAnalysisInput{UserID: uuid.New(), Periods: 6},
			expectedCode: domainerror.ErrCodeInvalidAsOfDate,
		},
	}

	repo, _ := scenarioRepo()
	useCase := NewRunOverspendingAnalysisUseCase(repo, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := repo.queryCount

			_, err := useCase.Execute(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var analysisErr *domainerror.AnalysisError
			if !errors.As(err, &analysisErr) {
				t.Fatalf("expected AnalysisError, got %T", err)
			}
			if analysisErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, analysisErr.Code)
			}
			if repo.queryCount != before {
				t.Error("expected no repository calls for invalid input")
			}
		})
	}
}

func TestRunOverspendingAnalysis_ScheduleNotConfigured(t *testing.T) {
	useCase := NewRunOverspendingAnalysisUseCase(&mockAnalysisRepo{}, nil)

	_, err := useCase.Execute(context.Background(), runInput(6))
	if err == nil {
		t.Fatal("expected error for missing schedule")
	}
	if !errors.Is(err, domainerror.ErrPayScheduleNotConfigured) {
		t.Errorf("expected ErrPayScheduleNotConfigured, got %v", err)
	}
}

func TestRunOverspendingAnalysis_QueryFailuresAbortTheRun(t *testing.T) {
	dbErr := errors.New("connection reset")

	t.Run("schedule query fails", func(t *testing.T) {
		repo, _ := scenarioRepo()
		repo.scheduleErr = dbErr
		useCase := NewRunOverspendingAnalysisUseCase(repo, nil)

		_, err := useCase.Execute(context.Background(), runInput(2))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "failed to get pay schedule") {
			t.Errorf("expected the failing query to be named, got %q", err)
		}
		if !errors.Is(err, dbErr) {
			t.Error("expected the underlying error to be wrapped")
		}
	})

	t.Run("categories query fails", func(t *testing.T) {
		repo, _ := scenarioRepo()
		repo.categoriesErr = dbErr
		useCase := NewRunOverspendingAnalysisUseCase(repo, nil)

		_, err := useCase.Execute(context.Background(), runInput(2))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "failed to get budget categories") {
			t.Errorf("expected the failing query to be named, got %q", err)
		}
	})

	t.Run("transaction query fails mid-run", func(t *testing.T) {
		repo, _ := scenarioRepo()
		repo.rangeErrs = map[string]error{"2025-01-17": dbErr}
		useCase := NewRunOverspendingAnalysisUseCase(repo, nil)

		output, err := useCase.Execute(context.Background(), runInput(2))
		if err == nil {
			t.Fatal("expected error")
		}
		if output != nil {
			t.Error("expected no partial report")
		}
		// The error names the period whose query failed.
		if !strings.Contains(err.Error(), "2025-01-17") || !strings.Contains(err.Error(), "2025-01-30") {
			t.Errorf("expected the period bounds in the error, got %q", err)
		}
	})
}

func TestRunOverspendingAnalysis_Caching(t *testing.T) {
	t.Run("second run is served from cache", func(t *testing.T) {
		repo, _ := scenarioRepo()
		cache := newMockReportCache()
		useCase := NewRunOverspendingAnalysisUseCase(repo, cache)
		input := runInput(2)

		first, err := useCase.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		queriesAfterFirst := repo.queryCount

		second, err := useCase.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !second.CacheHit {
			t.Error("expected a cache hit on the second run")
		}
		if repo.queryCount != queriesAfterFirst {
			t.Error("expected no repository calls on a cache hit")
		}

		// The cached report is identical to the computed one.
		firstJSON, _ := json.Marshal(first.Report)
		secondJSON, _ := json.Marshal(second.Report)
		if string(firstJSON) != string(secondJSON) {
			t.Error("expected identical reports from cache and computation")
		}
	})

	t.Run("different inputs use different keys", func(t *testing.T) {
		repo, _ := scenarioRepo()
		cache := newMockReportCache()
		useCase := NewRunOverspendingAnalysisUseCase(repo, cache)
		input := runInput(2)

		if _, err := useCase.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		narrower := input
		narrower.Periods = 1
		output, err := useCase.Execute(context.Background(), narrower)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.CacheHit {
			t.Error("expected a fresh computation for a different period count")
		}
		if len(output.Report.Periods) != 1 {
			t.Errorf("expected 1 period, got %d", len(output.Report.Periods))
		}
	})

	t.Run("cache read failure degrades to computation", func(t *testing.T) {
		repo, _ := scenarioRepo()
		cache := newMockReportCache()
		cache.getErr = errors.New("redis unavailable")
		useCase := NewRunOverspendingAnalysisUseCase(repo, cache)

		output, err := useCase.Execute(context.Background(), runInput(2))
		if err != nil {
			t.Fatalf("expected cache failure to be swallowed, got %v", err)
		}
		if output.CacheHit {
			t.Error("expected a fresh computation when the cache is down")
		}
	})

	t.Run("cache write failure does not fail the run", func(t *testing.T) {
		repo, _ := scenarioRepo()
		cache := newMockReportCache()
		cache.setErr = errors.New("redis unavailable")
		useCase := NewRunOverspendingAnalysisUseCase(repo, cache)

		if _, err := useCase.Execute(context.Background(), runInput(2)); err != nil {
			t.Fatalf("expected cache failure to be swallowed, got %v", err)
		}
	})

	t.Run("undecodable cached payload is recomputed", func(t *testing.T) {
		repo, _ := scenarioRepo()
		cache := newMockReportCache()
		useCase := NewRunOverspendingAnalysisUseCase(repo, cache)
		input := runInput(2)

		key := adapter.ReportCacheKey(input.UserID, input.Periods, input.AsOf)
		cache.store[key] = []byte("{not json")

		output, err := useCase.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.CacheHit {
			t.Error("expected the corrupt payload to be treated as a miss")
		}
	})
}

func TestRunOverspendingAnalysis_Deterministic(t *testing.T) {
	// The reference date is an explicit input, so two uncached runs over the
	// same data produce byte-identical reports.
	repo, _ := scenarioRepo()
	useCase := NewRunOverspendingAnalysisUseCase(repo, nil)
	input := runInput(2)

	first, err := useCase.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := useCase.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	firstJSON, _ := json.Marshal(first.Report)
	secondJSON, _ := json.Marshal(second.Report)
	if string(firstJSON) != string(secondJSON) {
		t.Error("expected identical reports for identical inputs")
	}
}
