package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/integration/email/templates"
)

// mockQueue is an in-memory EmailQueueRepository for worker tests.
type mockQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (m *mockQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var pending []*entity.EmailJob
	for _, job := range m.jobs {
		if job.IsReadyToProcess() {
			pending = append(pending, job)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (m *mockQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	return m.jobs[id], nil
}

func (m *mockQueue) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var jobs []*entity.EmailJob
	for _, job := range m.jobs {
		if job.RecipientEmail == email {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (m *mockQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func queueDigest(t *testing.T, queue *mockQueue) *entity.EmailJob {
	t.Helper()

	service := NewService(queue, "https://app.paytrack.dev")
	input := adapter.QueueOverspendingDigestInput{
		UserID:           uuid.New().String(),
		UserEmail:        "ana@example.com",
		UserName:         "Ana",
		PayFrequency:     "biweekly",
		PeriodsAnalyzed:  6,
		TotalOverspent:   "180.50",
		AverageOverspent: "30.08",
		Categories: []adapter.DigestCategory{
			{Name: "Groceries", TotalOverspent: "120.50", AverageOverspent: "20.08", Occurrences: 4},
			{Name: "Dining Out", TotalOverspent: "60", AverageOverspent: "10", Occurrences: 2},
		},
	}
	if err := service.QueueOverspendingDigest(context.Background(), input); err != nil {
		t.Fatalf("failed to queue digest: %v", err)
	}

	jobs, err := queue.GetByRecipient(context.Background(), input.UserEmail)
	if err != nil || len(jobs) != 1 {
		t.Fatalf("expected one queued job, got %d (err: %v)", len(jobs), err)
	}
	return jobs[0]
}

func TestWorker_SendsOverspendingDigest(t *testing.T) {
	queue := newMockQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	job := queueDigest(t, queue)

	worker.ProcessNow(context.Background())

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
	}

	sent := sender.SentEmails[0]
	if sent.To != "ana@example.com" {
		t.Errorf("expected recipient ana@example.com, got %s", sent.To)
	}
	if !strings.Contains(sent.Subject, "biweekly overspending digest") {
		t.Errorf("expected digest subject, got %q", sent.Subject)
	}
	for _, want := range []string{"Ana", "180.50", "30.08", "Groceries", "Dining Out"} {
		if !strings.Contains(sent.HTML, want) {
			t.Errorf("expected HTML body to contain %q", want)
		}
		if !strings.Contains(sent.Text, want) {
			t.Errorf("expected text body to contain %q", want)
		}
	}
	if !strings.Contains(sent.HTML, "https://app.paytrack.dev/analysis/overspending") {
		t.Error("expected HTML body to link to the full report")
	}

	updated, _ := queue.GetByID(context.Background(), job.ID)
	if updated.Status != entity.EmailStatusSent {
		t.Errorf("expected job status %s, got %s", entity.EmailStatusSent, updated.Status)
	}
	if updated.ResendID == "" {
		t.Error("expected resend ID to be recorded on the job")
	}
}

func TestWorker_DigestWithoutOverspending(t *testing.T) {
	queue := newMockQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	service := NewService(queue, "https://app.paytrack.dev")
	input := adapter.QueueOverspendingDigestInput{
		UserID:           uuid.New().String(),
		UserEmail:        "leo@example.com",
		UserName:         "Leo",
		PayFrequency:     "monthly",
		PeriodsAnalyzed:  3,
		TotalOverspent:   "0",
		AverageOverspent: "0",
		Categories:       nil,
	}
	if err := service.QueueOverspendingDigest(context.Background(), input); err != nil {
		t.Fatalf("failed to queue digest: %v", err)
	}

	worker.ProcessNow(context.Background())

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
	}
	if !strings.Contains(sender.SentEmails[0].Text, "stayed within budget") {
		t.Errorf("expected congratulation copy for a clean report, got %q", sender.SentEmails[0].Text)
	}
}

func TestWorker_RetriesTemporaryFailure(t *testing.T) {
	queue := newMockQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("503 service unavailable"), false)
	worker := newTestWorker(t, queue, sender)

	job := queueDigest(t, queue)

	worker.ProcessNow(context.Background())

	updated, _ := queue.GetByID(context.Background(), job.ID)
	if updated.Status != entity.EmailStatusPending {
		t.Errorf("expected job back to pending for retry, got %s", updated.Status)
	}
	if updated.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", updated.Attempts)
	}
	if !updated.ScheduledAt.After(time.Now().UTC().Add(30 * time.Second)) {
		t.Errorf("expected backoff before retry, got scheduled_at %v", updated.ScheduledAt)
	}
}

func TestWorker_PermanentFailureStopsRetries(t *testing.T) {
	queue := newMockQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("422 validation error"), true)
	worker := newTestWorker(t, queue, sender)

	job := queueDigest(t, queue)

	worker.ProcessNow(context.Background())

	updated, _ := queue.GetByID(context.Background(), job.ID)
	if updated.Status != entity.EmailStatusFailed {
		t.Errorf("expected job failed permanently, got %s", updated.Status)
	}
	if updated.LastError == "" {
		t.Error("expected last error to be recorded")
	}
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	queue := newMockQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	job := entity.NewEmailJob("nonexistent_template", "ana@example.com", "Ana", "Subject", nil)
	if err := queue.Create(context.Background(), job); err != nil {
		t.Fatalf("failed to queue job: %v", err)
	}

	worker.ProcessNow(context.Background())

	if len(sender.SentEmails) != 0 {
		t.Fatalf("expected no emails sent, got %d", len(sender.SentEmails))
	}

	updated, _ := queue.GetByID(context.Background(), job.ID)
	if updated.Status != entity.EmailStatusFailed {
		t.Errorf("expected unknown template to fail permanently, got %s", updated.Status)
	}
}
