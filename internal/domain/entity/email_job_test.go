// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"testing"
	"time"
)

func newTestJob() *EmailJob {
	return NewEmailJob(TemplateOverspendingDigest, "ana@example.com", "Ana", "Subject", nil)
}

func TestNewEmailJob_Defaults(t *testing.T) {
	job := newTestJob()

	if job.Status != EmailStatusPending {
		t.Errorf("expected status %s, got %s", EmailStatusPending, job.Status)
	}
	if job.Attempts != 0 {
		t.Errorf("expected 0 attempts, got %d", job.Attempts)
	}
	if job.MaxAttempts != 3 {
		t.Errorf("expected 3 max attempts, got %d", job.MaxAttempts)
	}
	if job.ProcessedAt != nil {
		t.Error("expected no processed timestamp on a new job")
	}
}

func TestEmailJob_MarkSent(t *testing.T) {
	job := newTestJob()

	job.MarkSent("resend-123")

	if job.Status != EmailStatusSent {
		t.Errorf("expected status %s, got %s", EmailStatusSent, job.Status)
	}
	if job.ResendID != "resend-123" {
		t.Errorf("expected resend id to be recorded, got %q", job.ResendID)
	}
	if job.ProcessedAt == nil {
		t.Error("expected processed timestamp to be set")
	}
}

func TestEmailJob_RetryBackoffSchedule(t *testing.T) {
	// Failures back off 1 minute, then 5 minutes, then give up.
	job := newTestJob()
	sendErr := errors.New("503 service unavailable")

	job.MarkFailed(sendErr, false)
	if job.Status != EmailStatusPending {
		t.Fatalf("expected first failure to stay pending, got %s", job.Status)
	}
	firstDelay := time.Until(job.ScheduledAt)
	if firstDelay < 50*time.Second || firstDelay > 70*time.Second {
		t.Errorf("expected roughly 1 minute backoff, got %v", firstDelay)
	}
	if job.LastError != sendErr.Error() {
		t.Errorf("expected last error recorded, got %q", job.LastError)
	}

	job.MarkFailed(sendErr, false)
	if job.Status != EmailStatusPending {
		t.Fatalf("expected second failure to stay pending, got %s", job.Status)
	}
	secondDelay := time.Until(job.ScheduledAt)
	if secondDelay < 4*time.Minute || secondDelay > 6*time.Minute {
		t.Errorf("expected roughly 5 minute backoff, got %v", secondDelay)
	}

	job.MarkFailed(sendErr, false)
	if job.Status != EmailStatusFailed {
		t.Errorf("expected third failure to exhaust attempts, got %s", job.Status)
	}
	if job.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", job.Attempts)
	}
	if job.ProcessedAt == nil {
		t.Error("expected processed timestamp on a dead job")
	}
}

func TestEmailJob_PermanentFailureSkipsRetries(t *testing.T) {
	job := newTestJob()

	job.MarkFailed(errors.New("422 validation error"), true)

	if job.Status != EmailStatusFailed {
		t.Errorf("expected permanent failure on the first attempt, got %s", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", job.Attempts)
	}
}

func TestEmailJob_IsReadyToProcess(t *testing.T) {
	tests := []struct {
		name  string
		setup func(job *EmailJob)
		want  bool
	}{
		{
			name:  "pending job scheduled in the past",
			setup: func(job *EmailJob) { job.ScheduledAt = time.Now().UTC().Add(-time.Second) },
			want:  true,
		},
		{
			name:  "pending job scheduled in the future",
			setup: func(job *EmailJob) { job.ScheduledAt = time.Now().UTC().Add(time.Hour) },
			want:  false,
		},
		{
			name: "sent job",
			setup: func(job *EmailJob) {
				job.ScheduledAt = time.Now().UTC().Add(-time.Second)
				job.MarkSent("resend-123")
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := newTestJob()
			tt.setup(job)

			if got := job.IsReadyToProcess(); got != tt.want {
				t.Errorf("expected ready=%v, got %v", tt.want, got)
			}
		})
	}
}
