// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueOverspendingDigest queues an overspending digest email.
	QueueOverspendingDigest(ctx context.Context, input QueueOverspendingDigestInput) error
}

// QueueOverspendingDigestInput represents the input for queueing an overspending digest email.
type QueueOverspendingDigestInput struct {
	UserID           string
	UserEmail        string
	UserName         string
	PayFrequency     string
	PeriodsAnalyzed  int
	TotalOverspent   string
	AverageOverspent string
	Categories       []DigestCategory
}

// DigestCategory represents one problematic category rendered in the digest email.
type DigestCategory struct {
	Name             string
	TotalOverspent   string
	AverageOverspent string
	Occurrences      int
}
