package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/user"
)

type MockEvaluator struct {
	AlertsForUserFunc func(ctx context.Context, userID int64, today time.Time) ([]budget.Alert, error)
}

func (m *MockEvaluator) AlertsForUser(ctx context.Context, userID int64, today time.Time) ([]budget.Alert, error) {
	return m.AlertsForUserFunc(ctx, userID, today)
}

type MockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*user.User, error)
	ListIDsFunc func(ctx context.Context) ([]int64, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (m *MockUserRepo) ListIDs(ctx context.Context) ([]int64, error) {
	return m.ListIDsFunc(ctx)
}

func (m *MockUserRepo) SetDeviceToken(ctx context.Context, userID int64, token *string) error {
	return errors.New("not implemented")
}

type MockMessenger struct {
	sent  []string
	title string
	err   error
}

func (m *MockMessenger) Send(ctx context.Context, token, title, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, token)
	m.title = title
	return nil
}

func deviceToken(s string) *string { return &s }

func TestAlertDigestJobSends(t *testing.T) {
	evaluator := &MockEvaluator{
		AlertsForUserFunc: func(ctx context.Context, userID int64, today time.Time) ([]budget.Alert, error) {
			return []budget.Alert{
				{ID: "alert-1-exceeded", Severity: budget.SeverityHigh, Message: "Has excedido el presupuesto en €20.00"},
				{ID: "alert-2-warning", Severity: budget.SeverityLow, Message: "Has usado el 85% de tu presupuesto (€85 de €100)"},
			}, nil
		},
	}
	users := &MockUserRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, DeviceToken: deviceToken("device-1")}, nil
		},
	}
	messenger := &MockMessenger{}

	job := NewAlertDigestJob(7, evaluator, users, messenger)
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(messenger.sent) != 1 || messenger.sent[0] != "device-1" {
		t.Errorf("sent to %v, want [device-1]", messenger.sent)
	}
	if messenger.title != "Tienes 2 alertas de presupuesto" {
		t.Errorf("title = %q", messenger.title)
	}
}

func TestAlertDigestJobNoAlerts(t *testing.T) {
	evaluator := &MockEvaluator{
		AlertsForUserFunc: func(ctx context.Context, userID int64, today time.Time) ([]budget.Alert, error) {
			return nil, nil
		},
	}
	messenger := &MockMessenger{}

	job := NewAlertDigestJob(7, evaluator, &MockUserRepo{}, messenger)
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(messenger.sent))
	}
}

func TestAlertDigestJobNoDevice(t *testing.T) {
	evaluator := &MockEvaluator{
		AlertsForUserFunc: func(ctx context.Context, userID int64, today time.Time) ([]budget.Alert, error) {
			return []budget.Alert{{ID: "alert-1-exceeded", Severity: budget.SeverityHigh}}, nil
		},
	}
	users := &MockUserRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id}, nil
		},
	}
	messenger := &MockMessenger{}

	job := NewAlertDigestJob(7, evaluator, users, messenger)
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(messenger.sent))
	}
}

func TestDigestJobProvider(t *testing.T) {
	users := &MockUserRepo{
		ListIDsFunc: func(ctx context.Context) ([]int64, error) {
			return []int64{1, 2, 3}, nil
		},
	}
	provider := DigestJobProvider(users, &MockEvaluator{}, &MockMessenger{})

	jobs, err := provider(context.Background())
	if err != nil {
		t.Fatalf("provider error = %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(jobs))
	}
	if jobs[1].UserID() != 2 {
		t.Errorf("jobs[1].UserID() = %d, want 2", jobs[1].UserID())
	}
}
