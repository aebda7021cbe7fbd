// Package advice contains the AI savings-advice use cases.
package advice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/application/usecase/analysis"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

type mockAnalysisRepo struct {
	schedule     *entity.PaySchedule
	categories   []*entity.BudgetCategory
	transactions map[string][]*entity.Transaction
}

func (m *mockAnalysisRepo) GetPaySchedule(_ context.Context, _ uuid.UUID) (*entity.PaySchedule, error) {
	return m.schedule, nil
}

func (m *mockAnalysisRepo) GetActiveBudgetCategories(_ context.Context, _ uuid.UUID) ([]*entity.BudgetCategory, error) {
	return m.categories, nil
}

func (m *mockAnalysisRepo) GetTransactionsInRange(_ context.Context, _ uuid.UUID, startDate, _ time.Time) ([]*entity.Transaction, error) {
	return m.transactions[startDate.Format("2006-01-02")], nil
}

type mockAdviceService struct {
	available   bool
	result      *adapter.AdviceResult
	err         error
	calls       int
	lastRequest *adapter.AdviceRequest
}

func (m *mockAdviceService) GenerateSavingsAdvice(_ context.Context, request *adapter.AdviceRequest) (*adapter.AdviceResult, error) {
	m.calls++
	m.lastRequest = request
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockAdviceService) IsAvailable() bool { return m.available }

// overspendingRepo builds a repo where the period Jan 17-30 overspends the
// Groceries budget by 70 (350 spent against a 280 pro-rated allocation).
func overspendingRepo() *mockAnalysisRepo {
	groceries := &entity.BudgetCategory{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Name:            "Groceries",
		Color:           "#FF5722",
		AllocatedAmount: decimal.RequireFromString("600"),
		IsActive:        true,
	}
	return &mockAnalysisRepo{
		schedule: &entity.PaySchedule{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Frequency:   valueobject.PayFrequencyBiweekly,
			LastPayDate: time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC),
		},
		categories: []*entity.BudgetCategory{groceries},
		transactions: map[string][]*entity.Transaction{
			"2025-01-17": {
				{
					ID:         uuid.New(),
					UserID:     uuid.New(),
					Date:       time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
					Name:       "supermarket",
					Amount:     decimal.RequireFromString("-350"),
					CategoryID: &groceries.ID,
				},
			},
		},
	}
}

func adviceInput() GenerateAdviceInput {
	return GenerateAdviceInput{
		UserID:  uuid.New(),
		Periods: 2,
		AsOf:    time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateAdvice_Execute(t *testing.T) {
	service := &mockAdviceService{
		available: true,
		result:    &adapter.AdviceResult{Advice: "Plan grocery trips around your pay dates."},
	}
	useCase := NewGenerateAdviceUseCase(
		analysis.NewRunOverspendingAnalysisUseCase(overspendingRepo(), nil),
		service,
	)

	output, err := useCase.Execute(context.Background(), adviceInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Advice != "Plan grocery trips around your pay dates." {
		t.Errorf("unexpected advice: %q", output.Advice)
	}
	if output.PayFrequency != "biweekly" {
		t.Errorf("expected frequency biweekly, got %s", output.PayFrequency)
	}
	if output.PeriodsAnalyzed != 2 {
		t.Errorf("expected 2 periods analyzed, got %d", output.PeriodsAnalyzed)
	}

	// The provider request carries the report summary
	request := service.lastRequest
	if request == nil {
		t.Fatal("expected the provider to be called with a request")
	}
	if request.PayFrequency != "biweekly" {
		t.Errorf("expected request frequency biweekly, got %s", request.PayFrequency)
	}
	if request.PeriodsAnalyzed != 2 {
		t.Errorf("expected request periods 2, got %d", request.PeriodsAnalyzed)
	}
	if request.TotalOverspent != "70" {
		t.Errorf("expected request total 70, got %s", request.TotalOverspent)
	}
	if request.AverageOverspent != "35" {
		t.Errorf("expected request average 35, got %s", request.AverageOverspent)
	}
	if len(request.Categories) != 1 {
		t.Fatalf("expected 1 category in request, got %d", len(request.Categories))
	}
	cat := request.Categories[0]
	if cat.Name != "Groceries" || cat.TotalOverspent != "70" || cat.Occurrences != 1 {
		t.Errorf("unexpected category in request: %+v", cat)
	}
}

func TestGenerateAdvice_NotConfigured(t *testing.T) {
	tests := []struct {
		name    string
		service adapter.AdviceService
	}{
		{name: "nil service", service: nil},
		{name: "unavailable service", service: &mockAdviceService{available: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewGenerateAdviceUseCase(
				analysis.NewRunOverspendingAnalysisUseCase(overspendingRepo(), nil),
				tt.service,
			)

			_, err := useCase.Execute(context.Background(), adviceInput())
			if err == nil {
				t.Fatal("expected error when service is not configured")
			}
			if !errors.Is(err, domainerror.ErrAdviceServiceNotConfigured) {
				t.Errorf("expected ErrAdviceServiceNotConfigured, got %v", err)
			}

			var adviceErr *domainerror.AdviceError
			if !errors.As(err, &adviceErr) {
				t.Fatalf("expected AdviceError, got %T", err)
			}
			if adviceErr.Code != domainerror.ErrCodeAdviceNotConfigured {
				t.Errorf("expected code %s, got %s", domainerror.ErrCodeAdviceNotConfigured, adviceErr.Code)
			}
		})
	}
}

func TestGenerateAdvice_NoScheduleAbortsBeforeProvider(t *testing.T) {
	service := &mockAdviceService{available: true, result: &adapter.AdviceResult{Advice: "unused"}}
	useCase := NewGenerateAdviceUseCase(
		analysis.NewRunOverspendingAnalysisUseCase(&mockAnalysisRepo{}, nil),
		service,
	)

	_, err := useCase.Execute(context.Background(), adviceInput())
	if err == nil {
		t.Fatal("expected error when no pay schedule is configured")
	}
	if !errors.Is(err, domainerror.ErrPayScheduleNotConfigured) {
		t.Errorf("expected ErrPayScheduleNotConfigured, got %v", err)
	}
	if service.calls != 0 {
		t.Errorf("expected no provider calls, got %d", service.calls)
	}
}

func TestGenerateAdvice_ProviderErrorsAreClassified(t *testing.T) {
	providerErr := errors.New("googleapi: Error 429: resource exhausted")
	service := &mockAdviceService{available: true, err: providerErr}
	useCase := NewGenerateAdviceUseCase(
		analysis.NewRunOverspendingAnalysisUseCase(overspendingRepo(), nil),
		service,
	)

	_, err := useCase.Execute(context.Background(), adviceInput())
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}

	var adviceErr *domainerror.AdviceError
	if !errors.As(err, &adviceErr) {
		t.Fatalf("expected AdviceError, got %T", err)
	}
	if adviceErr.Code != domainerror.ErrCodeAdviceRateLimited {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeAdviceRateLimited, adviceErr.Code)
	}
	if !errors.Is(err, providerErr) {
		t.Error("expected the original provider error to stay wrapped")
	}
}
