package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/service/achievement"
)

// TaskTypeAchievementCheck identifies achievement evaluation tasks.
const TaskTypeAchievementCheck = "achievement_check"

// AchievementCheckTask evaluates a user's achievements in the background.
type AchievementCheckTask struct {
	id      uuid.UUID
	userID  uuid.UUID
	service achievement.Service
}

// Verify interface compliance at compile time
var _ Task = (*AchievementCheckTask)(nil)

// NewAchievementCheckTask creates a task that evaluates the achievements of
// the given user when executed.
func NewAchievementCheckTask(userID uuid.UUID, service achievement.Service) *AchievementCheckTask {
	return &AchievementCheckTask{
		id:      uuid.New(),
		userID:  userID,
		service: service,
	}
}

// ID implements Task.ID.
func (t *AchievementCheckTask) ID() uuid.UUID { return t.id }

// Type implements Task.Type.
func (t *AchievementCheckTask) Type() string { return TaskTypeAchievementCheck }

// Execute implements Task.Execute.
func (t *AchievementCheckTask) Execute(ctx context.Context) error {
	_, err := t.service.Evaluate(ctx, t.userID)
	if err != nil {
		return fmt.Errorf("achievement evaluation failed: %w", err)
	}
	return nil
}

// AchievementNotifier submits achievement checks to a runner after reviews.
// It satisfies the review service's notifier dependency without the review
// package knowing about task scheduling.
type AchievementNotifier struct {
	runner  *Runner
	service achievement.Service
	logger  *slog.Logger
}

// NewAchievementNotifier creates a notifier that enqueues achievement
// checks on the given runner.
func NewAchievementNotifier(runner *Runner, service achievement.Service, logger *slog.Logger) *AchievementNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &AchievementNotifier{
		runner:  runner,
		service: service,
		logger:  logger.With(slog.String("component", "achievement_notifier")),
	}
}

// NotifyReview enqueues an achievement check for the user. Failures are
// logged and dropped: evaluation is idempotent and the next review retries.
func (n *AchievementNotifier) NotifyReview(userID uuid.UUID) {
	task := NewAchievementCheckTask(userID, n.service)
	if err := n.runner.Submit(task); err != nil {
		n.logger.Warn("failed to enqueue achievement check",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}
