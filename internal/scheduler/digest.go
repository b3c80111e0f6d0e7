package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/user"
)

// Messenger delivers a push notification to one device token.
// Implemented by the Firebase Cloud Messaging client.
type Messenger interface {
	Send(ctx context.Context, token, title, body string) error
}

// AlertEvaluator produces the current budget alerts for one user.
type AlertEvaluator interface {
	AlertsForUser(ctx context.Context, userID int64, today time.Time) ([]budget.Alert, error)
}

// AlertDigestJob evaluates one user's budgets and pushes a digest
// notification when any budget is near or over its limit.
// It implements the Job interface.
type AlertDigestJob struct {
	userID    int64
	evaluator AlertEvaluator
	users     user.Repository
	messenger Messenger
}

func NewAlertDigestJob(userID int64, evaluator AlertEvaluator, users user.Repository, messenger Messenger) *AlertDigestJob {
	return &AlertDigestJob{
		userID:    userID,
		evaluator: evaluator,
		users:     users,
		messenger: messenger,
	}
}

// Execute computes the user's alerts and sends the digest. Users without a
// registered device, or with no active alerts, are skipped silently.
func (j *AlertDigestJob) Execute(ctx context.Context) error {
	alerts, err := j.evaluator.AlertsForUser(ctx, j.userID, time.Now())
	if err != nil {
		return fmt.Errorf("evaluate alerts: %w", err)
	}
	if len(alerts) == 0 {
		return nil
	}

	u, err := j.users.GetByID(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if u == nil || u.DeviceToken == nil || *u.DeviceToken == "" {
		log.Printf("Alert digest: user %d has no registered device, skipping", j.userID)
		return nil
	}

	title := "Alertas de presupuesto"
	body := alerts[0].Message
	if len(alerts) > 1 {
		title = fmt.Sprintf("Tienes %d alertas de presupuesto", len(alerts))
	}

	if err := j.messenger.Send(ctx, *u.DeviceToken, title, body); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	log.Printf("Alert digest: sent %d alerts to user %d", len(alerts), j.userID)
	return nil
}

// UserID returns the user ID for this job.
func (j *AlertDigestJob) UserID() int64 {
	return j.userID
}

// Description returns a human-readable description of this job.
func (j *AlertDigestJob) Description() string {
	return "budget alert digest"
}

// DigestJobProvider builds one digest job per registered user. Intended as
// the scheduler's JobProvider.
func DigestJobProvider(users user.Repository, evaluator AlertEvaluator, messenger Messenger) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		ids, err := users.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}

		jobs := make([]Job, 0, len(ids))
		for _, id := range ids {
			jobs = append(jobs, NewAlertDigestJob(id, evaluator, users, messenger))
		}
		return jobs, nil
	}
}
