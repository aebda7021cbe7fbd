// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

type mockUserRepo struct {
	user *entity.User
	err  error
}

func (m *mockUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (m *mockUserRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, domainerror.ErrUserNotFound
	}
	return m.user, nil
}
func (m *mockUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, domainerror.ErrUserNotFound
	}
	return m.user, nil
}
func (m *mockUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }
func (m *mockUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return m.user != nil, nil
}

type mockSnapshotRepo struct {
	created []*entity.ReportSnapshot
	err     error
}

func (m *mockSnapshotRepo) Create(_ context.Context, snapshot *entity.ReportSnapshot) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, snapshot)
	return nil
}

func (m *mockSnapshotRepo) FindByUser(_ context.Context, _ uuid.UUID, _ int) ([]*entity.ReportSnapshot, error) {
	return m.created, nil
}

type mockEmailService struct {
	queued []adapter.QueueOverspendingDigestInput
	err    error
}

func (m *mockEmailService) QueueOverspendingDigest(_ context.Context, input adapter.QueueOverspendingDigestInput) error {
	if m.err != nil {
		return m.err
	}
	m.queued = append(m.queued, input)
	return nil
}

func digestUser() *entity.User {
	return &entity.User{
		ID:                 uuid.New(),
		Email:              "ana@example.com",
		Name:               "Ana",
		EmailNotifications: true,
	}
}

func TestQueueDigest_Execute(t *testing.T) {
	repo, _ := scenarioRepo()
	user := digestUser()
	userRepo := &mockUserRepo{user: user}
	snapshotRepo := &mockSnapshotRepo{}
	emailService := &mockEmailService{}

	useCase := NewQueueDigestUseCase(
		NewRunOverspendingAnalysisUseCase(repo, nil),
		userRepo,
		snapshotRepo,
		emailService,
	)

	output, err := useCase.Execute(context.Background(), QueueDigestInput{
		UserID:  user.ID,
		Periods: 2,
		AsOf:    date(2025, time.February, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.EmailQueued {
		t.Error("expected the digest email to be queued")
	}

	if len(snapshotRepo.created) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snapshotRepo.created))
	}
	snapshot := snapshotRepo.created[0]
	if snapshot.UserID != user.ID {
		t.Error("expected the snapshot to belong to the user")
	}
	if snapshot.PeriodsAnalyzed != 2 {
		t.Errorf("expected 2 periods analyzed, got %d", snapshot.PeriodsAnalyzed)
	}
	if snapshot.PayFrequency != "biweekly" {
		t.Errorf("expected frequency biweekly, got %s", snapshot.PayFrequency)
	}
	if len(snapshot.ProblemCategoryIDs) != 1 {
		t.Errorf("expected 1 problem category id, got %d", len(snapshot.ProblemCategoryIDs))
	}

	if len(emailService.queued) != 1 {
		t.Fatalf("expected 1 queued email, got %d", len(emailService.queued))
	}
	email := emailService.queued[0]
	if email.UserEmail != user.Email {
		t.Errorf("expected recipient %s, got %s", user.Email, email.UserEmail)
	}
	if email.TotalOverspent != "70.00" {
		t.Errorf("expected total 70.00, got %s", email.TotalOverspent)
	}
	if len(email.Categories) != 1 || email.Categories[0].Name != "Groceries" {
		t.Error("expected Groceries in the digest categories")
	}
}

func TestQueueDigest_NotificationsDisabled(t *testing.T) {
	repo, _ := scenarioRepo()
	user := digestUser()
	user.EmailNotifications = false
	snapshotRepo := &mockSnapshotRepo{}

	useCase := NewQueueDigestUseCase(
		NewRunOverspendingAnalysisUseCase(repo, nil),
		&mockUserRepo{user: user},
		snapshotRepo,
		&mockEmailService{},
	)

	_, err := useCase.Execute(context.Background(), QueueDigestInput{
		UserID:  user.ID,
		Periods: 2,
		AsOf:    date(2025, time.February, 1),
	})
	if err == nil {
		t.Fatal("expected error when notifications are disabled")
	}
	if !errors.Is(err, domainerror.ErrEmailNotificationsDisabled) {
		t.Errorf("expected ErrEmailNotificationsDisabled, got %v", err)
	}
	if len(snapshotRepo.created) != 0 {
		t.Error("expected no snapshot when the digest is refused")
	}
}

func TestQueueDigest_UserNotFound(t *testing.T) {
	repo, _ := scenarioRepo()

	useCase := NewQueueDigestUseCase(
		NewRunOverspendingAnalysisUseCase(repo, nil),
		&mockUserRepo{},
		&mockSnapshotRepo{},
		&mockEmailService{},
	)

	_, err := useCase.Execute(context.Background(), QueueDigestInput{
		UserID:  uuid.New(),
		Periods: 2,
		AsOf:    date(2025, time.February, 1),
	})
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestQueueDigest_WithoutEmailService(t *testing.T) {
	// No email service configured: the snapshot is still persisted.
	repo, _ := scenarioRepo()
	user := digestUser()
	snapshotRepo := &mockSnapshotRepo{}

	useCase := NewQueueDigestUseCase(
		NewRunOverspendingAnalysisUseCase(repo, nil),
		&mockUserRepo{user: user},
		snapshotRepo,
		nil,
	)

	output, err := useCase.Execute(context.Background(), QueueDigestInput{
		UserID:  user.ID,
		Periods: 2,
		AsOf:    date(2025, time.February, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.EmailQueued {
		t.Error("expected no email to be queued without an email service")
	}
	if len(snapshotRepo.created) != 1 {
		t.Errorf("expected the snapshot to be persisted, got %d", len(snapshotRepo.created))
	}
}
