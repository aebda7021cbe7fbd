// Package advice contains the AI savings-advice use cases.
package advice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/application/usecase/analysis"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// GenerateAdviceInput represents the input for generating savings advice.
type GenerateAdviceInput struct {
	UserID  uuid.UUID
	Periods int
	AsOf    time.Time
}

// GenerateAdviceOutput represents the generated savings advice.
type GenerateAdviceOutput struct {
	Advice          string
	PayFrequency    string
	PeriodsAnalyzed int
	AsOf            time.Time
}

// GenerateAdviceUseCase runs an overspending analysis and asks the AI
// provider for savings advice grounded in the result.
type GenerateAdviceUseCase struct {
	runAnalysis   *analysis.RunOverspendingAnalysisUseCase
	adviceService adapter.AdviceService
}

// NewGenerateAdviceUseCase creates a new GenerateAdviceUseCase instance.
// adviceService may be nil when no AI provider is configured.
func NewGenerateAdviceUseCase(
	runAnalysis *analysis.RunOverspendingAnalysisUseCase,
	adviceService adapter.AdviceService,
) *GenerateAdviceUseCase {
	return &GenerateAdviceUseCase{
		runAnalysis:   runAnalysis,
		adviceService: adviceService,
	}
}

// Execute generates savings advice over the user's recent pay periods.
func (uc *GenerateAdviceUseCase) Execute(ctx context.Context, input GenerateAdviceInput) (*GenerateAdviceOutput, error) {
	// Check service availability before doing any work
	if uc.adviceService == nil || !uc.adviceService.IsAvailable() {
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceNotConfigured,
			"advice service is not configured",
			domainerror.ErrAdviceServiceNotConfigured,
		)
	}

	// Run the analysis
	analysisOutput, err := uc.runAnalysis.Execute(ctx, analysis.RunOverspendingAnalysisInput{
		UserID:  input.UserID,
		Periods: input.Periods,
		AsOf:    input.AsOf,
	})
	if err != nil {
		return nil, err
	}
	report := analysisOutput.Report

	// Ask the provider for advice
	result, err := uc.adviceService.GenerateSavingsAdvice(ctx, buildAdviceRequest(report))
	if err != nil {
		slog.Error("Advice generation failed", "userID", input.UserID.String(), "error", err.Error())
		return nil, classifyProviderError(err)
	}

	return &GenerateAdviceOutput{
		Advice:          result.Advice,
		PayFrequency:    report.PayFrequency,
		PeriodsAnalyzed: report.Summary.PeriodsAnalyzed,
		AsOf:            report.AsOf,
	}, nil
}

// buildAdviceRequest formats the report summary for the AI provider.
func buildAdviceRequest(report *analysis.OverspendingReport) *adapter.AdviceRequest {
	categories := make([]*adapter.CategoryForAdvice, 0, len(report.Summary.ProblematicCategories))
	for _, cat := range report.Summary.ProblematicCategories {
		categories = append(categories, &adapter.CategoryForAdvice{
			Name:             cat.Name,
			TotalOverspent:   cat.TotalOverspent.String(),
			AverageOverspent: cat.AverageOverspent.String(),
			Occurrences:      cat.Occurrences,
		})
	}

	return &adapter.AdviceRequest{
		PayFrequency:     report.PayFrequency,
		PeriodsAnalyzed:  report.Summary.PeriodsAnalyzed,
		TotalOverspent:   report.Summary.TotalOverspent.String(),
		AverageOverspent: report.Summary.AverageOverspent.String(),
		Categories:       categories,
	}
}
