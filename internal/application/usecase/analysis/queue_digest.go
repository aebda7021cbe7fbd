// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// QueueDigestInput represents the input for queueing an overspending digest.
type QueueDigestInput struct {
	UserID  uuid.UUID
	Periods int
	AsOf    time.Time
}

// QueueDigestOutput represents the output of queueing an overspending digest.
type QueueDigestOutput struct {
	SnapshotID  uuid.UUID
	EmailQueued bool
}

// QueueDigestUseCase runs an overspending analysis, persists a snapshot of the
// result, and queues a digest email to the user.
type QueueDigestUseCase struct {
	runAnalysis  *RunOverspendingAnalysisUseCase
	userRepo     adapter.UserRepository
	snapshotRepo adapter.ReportSnapshotRepository
	emailService adapter.EmailService
}

// NewQueueDigestUseCase creates a new QueueDigestUseCase instance.
// emailService may be nil, in which case the snapshot is still persisted but
// no email is queued.
func NewQueueDigestUseCase(
	runAnalysis *RunOverspendingAnalysisUseCase,
	userRepo adapter.UserRepository,
	snapshotRepo adapter.ReportSnapshotRepository,
	emailService adapter.EmailService,
) *QueueDigestUseCase {
	return &QueueDigestUseCase{
		runAnalysis:  runAnalysis,
		userRepo:     userRepo,
		snapshotRepo: snapshotRepo,
		emailService: emailService,
	}
}

// Execute runs the analysis and queues the digest email.
func (uc *QueueDigestUseCase) Execute(ctx context.Context, input QueueDigestInput) (*QueueDigestOutput, error) {
	// Find the user and check their notification preference
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			err,
		)
	}
	if !user.EmailNotifications {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeNotificationsDisabled,
			"email notifications are disabled for this user",
			domainerror.ErrEmailNotificationsDisabled,
		)
	}

	// Run the analysis
	analysisOutput, err := uc.runAnalysis.Execute(ctx, RunOverspendingAnalysisInput{
		UserID:  input.UserID,
		Periods: input.Periods,
		AsOf:    input.AsOf,
	})
	if err != nil {
		return nil, err
	}
	report := analysisOutput.Report

	// Persist a snapshot of this run
	snapshot := entity.NewReportSnapshot(
		input.UserID,
		report.AsOf,
		report.Summary.PeriodsAnalyzed,
		report.PayFrequency,
		report.Summary.TotalOverspent,
		report.Summary.AverageOverspent,
		problemCategoryIDs(report.Summary),
	)
	if err := uc.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist report snapshot: %w", err)
	}

	// Queue the digest email
	if uc.emailService == nil {
		slog.Info("Digest snapshot persisted (email service not configured)",
			"userID", input.UserID, "snapshotID", snapshot.ID)
		return &QueueDigestOutput{SnapshotID: snapshot.ID}, nil
	}

	if err := uc.emailService.QueueOverspendingDigest(ctx, buildDigestInput(user, report)); err != nil {
		return nil, fmt.Errorf("failed to queue digest email: %w", err)
	}

	return &QueueDigestOutput{SnapshotID: snapshot.ID, EmailQueued: true}, nil
}

// problemCategoryIDs extracts the ranked problem category IDs from the summary.
func problemCategoryIDs(summary OverspendingSummary) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(summary.ProblematicCategories))
	for _, cat := range summary.ProblematicCategories {
		ids = append(ids, cat.CategoryID)
	}
	return ids
}

// buildDigestInput formats the report for the digest email template.
func buildDigestInput(user *entity.User, report *OverspendingReport) adapter.QueueOverspendingDigestInput {
	categories := make([]adapter.DigestCategory, 0, len(report.Summary.ProblematicCategories))
	for _, cat := range report.Summary.ProblematicCategories {
		categories = append(categories, adapter.DigestCategory{
			Name:             cat.Name,
			TotalOverspent:   cat.TotalOverspent.StringFixed(2),
			AverageOverspent: cat.AverageOverspent.StringFixed(2),
			Occurrences:      cat.Occurrences,
		})
	}

	return adapter.QueueOverspendingDigestInput{
		UserID:           user.ID.String(),
		UserEmail:        user.Email,
		UserName:         user.Name,
		PayFrequency:     report.PayFrequency,
		PeriodsAnalyzed:  report.Summary.PeriodsAnalyzed,
		TotalOverspent:   report.Summary.TotalOverspent.StringFixed(2),
		AverageOverspent: report.Summary.AverageOverspent.StringFixed(2),
		Categories:       categories,
	}
}
