// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueOverspendingDigest queues an overspending digest email.
func (s *Service) QueueOverspendingDigest(ctx context.Context, input adapter.QueueOverspendingDigestInput) error {
	subject := fmt.Sprintf("Your %s overspending digest - PayTrack", input.PayFrequency)

	// Categories nest as plain maps so the JSONB roundtrip stays lossless
	categories := make([]map[string]interface{}, 0, len(input.Categories))
	for _, cat := range input.Categories {
		categories = append(categories, map[string]interface{}{
			"name":              cat.Name,
			"total_overspent":   cat.TotalOverspent,
			"average_overspent": cat.AverageOverspent,
			"occurrences":       cat.Occurrences,
		})
	}

	templateData := map[string]interface{}{
		"user_name":         input.UserName,
		"pay_frequency":     input.PayFrequency,
		"periods_analyzed":  input.PeriodsAnalyzed,
		"total_overspent":   input.TotalOverspent,
		"average_overspent": input.AverageOverspent,
		"categories":        categories,
		"report_url":        fmt.Sprintf("%s/analysis/overspending", s.appBaseURL),
	}

	job := entity.NewEmailJob(
		entity.TemplateOverspendingDigest,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue overspending digest email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
