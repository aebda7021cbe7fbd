// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

// RunOverspendingAnalysisInput represents the input for running an
// overspending analysis.
type RunOverspendingAnalysisInput struct {
	UserID  uuid.UUID
	Periods int
	AsOf    time.Time
}

// OverspendingReport is the full result of one analysis run: the analyzed
// periods oldest first plus the cross-period summary.
type OverspendingReport struct {
	PayFrequency string
	AsOf         time.Time
	Periods      []OverspendingPeriod
	Summary      OverspendingSummary
}

// RunOverspendingAnalysisOutput represents the output of running an
// overspending analysis.
type RunOverspendingAnalysisOutput struct {
	Report   *OverspendingReport
	CacheHit bool
}

// RunOverspendingAnalysisUseCase reconstructs the user's recent completed pay
// periods and reports overspending per period and across periods.
type RunOverspendingAnalysisUseCase struct {
	analysisRepo AnalysisRepository
	reportCache  adapter.ReportCache
}

// NewRunOverspendingAnalysisUseCase creates a new RunOverspendingAnalysisUseCase instance.
// reportCache may be nil, in which case every run is computed fresh.
func NewRunOverspendingAnalysisUseCase(
	analysisRepo AnalysisRepository,
	reportCache adapter.ReportCache,
) *RunOverspendingAnalysisUseCase {
	return &RunOverspendingAnalysisUseCase{
		analysisRepo: analysisRepo,
		reportCache:  reportCache,
	}
}

// Execute runs the overspending analysis for the given user. The same input
// always yields the same report: the reference date is an explicit parameter,
// so reruns are reproducible and cacheable. Cache failures degrade to a fresh
// computation, never to an error.
func (uc *RunOverspendingAnalysisUseCase) Execute(
	ctx context.Context,
	input RunOverspendingAnalysisInput,
) (*RunOverspendingAnalysisOutput, error) {
	// Validate input
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	asOf := valueobject.NormalizeToMidnightUTC(input.AsOf)
	cacheKey := adapter.ReportCacheKey(input.UserID, input.Periods, asOf)

	// Try the cache first
	if cached := uc.lookupCachedReport(ctx, cacheKey); cached != nil {
		return &RunOverspendingAnalysisOutput{Report: cached, CacheHit: true}, nil
	}

	report, err := uc.compute(ctx, input.UserID, input.Periods, asOf)
	if err != nil {
		return nil, err
	}

	uc.storeCachedReport(ctx, cacheKey, report)

	return &RunOverspendingAnalysisOutput{Report: report}, nil
}

// compute performs the full analysis pipeline. Any query failure aborts the
// run; partial reports are never produced.
func (uc *RunOverspendingAnalysisUseCase) compute(
	ctx context.Context,
	userID uuid.UUID,
	periodCount int,
	asOf time.Time,
) (*OverspendingReport, error) {
	// Get pay schedule from repository
	schedule, err := uc.analysisRepo.GetPaySchedule(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pay schedule: %w", err)
	}

	// Reconstruct the most recent completed pay periods
	periods, err := reconstructPayPeriods(schedule, periodCount, asOf)
	if err != nil {
		return nil, err
	}

	// Get active budget categories from repository
	categories, err := uc.analysisRepo.GetActiveBudgetCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget categories: %w", err)
	}

	// Analyze each period against the same category set
	analyzed := make([]OverspendingPeriod, 0, len(periods))
	for _, period := range periods {
		transactions, err := uc.analysisRepo.GetTransactionsInRange(ctx, userID, period.StartDate, period.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to get transactions for period %s to %s: %w",
				period.StartDate.Format("2006-01-02"),
				period.EndDate.Format("2006-01-02"),
				err,
			)
		}

		analyzed = append(analyzed, analyzePeriod(period, categories, transactions))
	}

	// Roll the periods into the cross-period summary
	summary, err := summarizeOverspending(analyzed)
	if err != nil {
		return nil, err
	}

	return &OverspendingReport{
		PayFrequency: schedule.Frequency.String(),
		AsOf:         asOf,
		Periods:      analyzed,
		Summary:      *summary,
	}, nil
}

// validateInput validates the input parameters.
func (uc *RunOverspendingAnalysisUseCase) validateInput(input RunOverspendingAnalysisInput) error {
	if input.Periods <= 0 {
		return domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidPeriodsRequested,
			"periods must be a positive integer",
			domainerror.ErrInvalidPeriodsRequested,
		)
	}

	if input.AsOf.IsZero() {
		return domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidAsOfDate,
			"as-of date is required",
			domainerror.ErrInvalidAsOfDate,
		)
	}

	return nil
}

// lookupCachedReport returns the cached report for the key, or nil on a miss.
// Read and decode failures are logged and treated as misses.
func (uc *RunOverspendingAnalysisUseCase) lookupCachedReport(ctx context.Context, key string) *OverspendingReport {
	if uc.reportCache == nil {
		return nil
	}

	payload, err := uc.reportCache.Get(ctx, key)
	if err != nil {
		slog.Warn("Report cache read failed", "key", key, "error", err)
		return nil
	}
	if payload == nil {
		return nil
	}

	var report OverspendingReport
	if err := json.Unmarshal(payload, &report); err != nil {
		slog.Warn("Discarding undecodable cached report", "key", key, "error", err)
		return nil
	}

	return &report
}

// storeCachedReport writes the report to the cache. Failures are logged and
// otherwise ignored.
func (uc *RunOverspendingAnalysisUseCase) storeCachedReport(ctx context.Context, key string, report *OverspendingReport) {
	if uc.reportCache == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		slog.Error("Failed to marshal report for caching", "key", key, "error", err)
		return
	}

	if err := uc.reportCache.Set(ctx, key, payload); err != nil {
		slog.Warn("Report cache write failed", "key", key, "error", err)
	}
}
