// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/paytrack/backend/internal/application/usecase/advice"
	"github.com/paytrack/backend/internal/application/usecase/analysis"
	"github.com/paytrack/backend/internal/domain/entity"
)

// AnalysisTransactionResponse is a compact transaction reference inside an
// overspending report.
type AnalysisTransactionResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// CategoryOverspendingResponse represents one category's result within a period.
type CategoryOverspendingResponse struct {
	CategoryID           string                        `json:"category_id"`
	Name                 string                        `json:"name"`
	Color                string                        `json:"color"`
	BudgetAmount         string                        `json:"budget_amount"`
	Spent                string                        `json:"spent"`
	Overspent            string                        `json:"overspent"`
	OverspentPercentage  string                        `json:"overspent_percentage"`
	MatchingTransactions []AnalysisTransactionResponse `json:"matching_transactions"`
}

// OverspendingPeriodResponse represents one analyzed pay period.
type OverspendingPeriodResponse struct {
	StartDate           string                         `json:"start_date"`
	EndDate             string                         `json:"end_date"`
	TotalBudget         string                         `json:"total_budget"`
	TotalSpent          string                         `json:"total_spent"`
	Overspent           string                         `json:"overspent"`
	Categories          []CategoryOverspendingResponse `json:"categories"`
	BiggestTransactions []AnalysisTransactionResponse  `json:"biggest_transactions"`
}

// ProblematicCategoryResponse represents one category in the cross-period summary.
type ProblematicCategoryResponse struct {
	CategoryID       string `json:"category_id"`
	Name             string `json:"name"`
	Color            string `json:"color"`
	TotalOverspent   string `json:"total_overspent"`
	AverageOverspent string `json:"average_overspent"`
	Occurrences      int    `json:"occurrences"`
}

// OverspendingSummaryResponse represents the cross-period rollup.
type OverspendingSummaryResponse struct {
	TotalOverspent        string                        `json:"total_overspent"`
	AverageOverspent      string                        `json:"average_overspent"`
	PeriodsAnalyzed       int                           `json:"periods_analyzed"`
	ProblematicCategories []ProblematicCategoryResponse `json:"problematic_categories"`
}

// OverspendingReportResponse represents the full overspending analysis result.
type OverspendingReportResponse struct {
	PayFrequency string                       `json:"pay_frequency"`
	AsOf         string                       `json:"as_of"`
	Cached       bool                         `json:"cached"`
	Periods      []OverspendingPeriodResponse `json:"periods"`
	Summary      OverspendingSummaryResponse  `json:"summary"`
}

// AdviceResponse represents the AI savings advice for an overspending report.
type AdviceResponse struct {
	Advice          string `json:"advice"`
	PayFrequency    string `json:"pay_frequency"`
	PeriodsAnalyzed int    `json:"periods_analyzed"`
	AsOf            string `json:"as_of"`
}

// QueueDigestResponse represents the result of queueing an overspending digest.
type QueueDigestResponse struct {
	SnapshotID  string `json:"snapshot_id"`
	EmailQueued bool   `json:"email_queued"`
}

// ReportSnapshotResponse represents one persisted analysis snapshot.
type ReportSnapshotResponse struct {
	ID                 string    `json:"id"`
	AsOf               string    `json:"as_of"`
	PeriodsAnalyzed    int       `json:"periods_analyzed"`
	PayFrequency       string    `json:"pay_frequency"`
	TotalOverspent     string    `json:"total_overspent"`
	AverageOverspent   string    `json:"average_overspent"`
	ProblemCategoryIDs []string  `json:"problem_category_ids"`
	CreatedAt          time.Time `json:"created_at"`
}

// ReportHistoryResponse represents the response for listing analysis snapshots.
type ReportHistoryResponse struct {
	Snapshots []ReportSnapshotResponse `json:"snapshots"`
}

// ToOverspendingReportResponse converts an analysis output to the report DTO.
func ToOverspendingReportResponse(output *analysis.RunOverspendingAnalysisOutput) OverspendingReportResponse {
	report := output.Report

	periods := make([]OverspendingPeriodResponse, len(report.Periods))
	for i, period := range report.Periods {
		periods[i] = toOverspendingPeriodResponse(period)
	}

	return OverspendingReportResponse{
		PayFrequency: report.PayFrequency,
		AsOf:         report.AsOf.Format("2006-01-02"),
		Cached:       output.CacheHit,
		Periods:      periods,
		Summary:      toOverspendingSummaryResponse(report.Summary),
	}
}

func toOverspendingPeriodResponse(period analysis.OverspendingPeriod) OverspendingPeriodResponse {
	categories := make([]CategoryOverspendingResponse, len(period.Categories))
	for i, cat := range period.Categories {
		categories[i] = CategoryOverspendingResponse{
			CategoryID:           cat.CategoryID.String(),
			Name:                 cat.Name,
			Color:                cat.Color,
			BudgetAmount:         cat.BudgetAmount.String(),
			Spent:                cat.Spent.String(),
			Overspent:            cat.Overspent.String(),
			OverspentPercentage:  cat.OverspentPercentage.String(),
			MatchingTransactions: toAnalysisTransactionResponses(cat.MatchingTransactions),
		}
	}

	return OverspendingPeriodResponse{
		StartDate:           period.StartDate.Format("2006-01-02"),
		EndDate:             period.EndDate.Format("2006-01-02"),
		TotalBudget:         period.TotalBudget.String(),
		TotalSpent:          period.TotalSpent.String(),
		Overspent:           period.Overspent.String(),
		Categories:          categories,
		BiggestTransactions: toAnalysisTransactionResponses(period.BiggestTransactions),
	}
}

func toOverspendingSummaryResponse(summary analysis.OverspendingSummary) OverspendingSummaryResponse {
	problematic := make([]ProblematicCategoryResponse, len(summary.ProblematicCategories))
	for i, cat := range summary.ProblematicCategories {
		problematic[i] = ProblematicCategoryResponse{
			CategoryID:       cat.CategoryID.String(),
			Name:             cat.Name,
			Color:            cat.Color,
			TotalOverspent:   cat.TotalOverspent.String(),
			AverageOverspent: cat.AverageOverspent.String(),
			Occurrences:      cat.Occurrences,
		}
	}

	return OverspendingSummaryResponse{
		TotalOverspent:        summary.TotalOverspent.String(),
		AverageOverspent:      summary.AverageOverspent.String(),
		PeriodsAnalyzed:       summary.PeriodsAnalyzed,
		ProblematicCategories: problematic,
	}
}

func toAnalysisTransactionResponses(transactions []*entity.Transaction) []AnalysisTransactionResponse {
	responses := make([]AnalysisTransactionResponse, len(transactions))
	for i, txn := range transactions {
		responses[i] = AnalysisTransactionResponse{
			ID:     txn.ID.String(),
			Date:   txn.Date.Format("2006-01-02"),
			Name:   txn.Name,
			Amount: txn.Amount.String(),
		}
	}
	return responses
}

// ToAdviceResponse converts an advice output to the advice DTO.
func ToAdviceResponse(output *advice.GenerateAdviceOutput) AdviceResponse {
	return AdviceResponse{
		Advice:          output.Advice,
		PayFrequency:    output.PayFrequency,
		PeriodsAnalyzed: output.PeriodsAnalyzed,
		AsOf:            output.AsOf.Format("2006-01-02"),
	}
}

// ToQueueDigestResponse converts a digest output to the digest DTO.
func ToQueueDigestResponse(output *analysis.QueueDigestOutput) QueueDigestResponse {
	return QueueDigestResponse{
		SnapshotID:  output.SnapshotID.String(),
		EmailQueued: output.EmailQueued,
	}
}

// ToReportHistoryResponse converts snapshots to the history DTO.
func ToReportHistoryResponse(snapshots []*entity.ReportSnapshot) ReportHistoryResponse {
	responses := make([]ReportSnapshotResponse, len(snapshots))
	for i, snapshot := range snapshots {
		ids := make([]string, len(snapshot.ProblemCategoryIDs))
		for j, id := range snapshot.ProblemCategoryIDs {
			ids[j] = id.String()
		}

		responses[i] = ReportSnapshotResponse{
			ID:                 snapshot.ID.String(),
			AsOf:               snapshot.AsOf.Format("2006-01-02"),
			PeriodsAnalyzed:    snapshot.PeriodsAnalyzed,
			PayFrequency:       snapshot.PayFrequency,
			TotalOverspent:     snapshot.TotalOverspent.String(),
			AverageOverspent:   snapshot.AverageOverspent.String(),
			ProblemCategoryIDs: ids,
			CreatedAt:          snapshot.CreatedAt,
		}
	}

	return ReportHistoryResponse{Snapshots: responses}
}
