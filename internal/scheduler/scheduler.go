// Package scheduler implements the bulk entry points that cron triggers call:
// the due-quiz sweep, single notify and the failed-send retry.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mock_scheduler.go -package=mock_scheduler

const (
	DefaultSweepWindow    = 60 * time.Minute
	DefaultMaxRetries     = 3
	DefaultRetryLookback  = 24 * time.Hour
	DefaultRetryBatchSize = 500
)

var ErrInvalidStatus = errors.New("quizzes in this status are not notified")

type Quizzes interface {
	Get(ctx context.Context, id int64) (*quiz.Quiz, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]*quiz.Quiz, error)
	ListInWindow(ctx context.Context, status quiz.Status, center time.Time, window time.Duration) ([]quiz.Quiz, error)
	ListDue(ctx context.Context, status quiz.Status, cutoff time.Time) ([]quiz.Quiz, error)
}

type Users interface {
	Get(ctx context.Context, id int64) (*user.User, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]*user.User, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, q *quiz.Quiz, u *user.User, opts notification.Options) notification.Result
	DispatchMany(ctx context.Context, targets []notification.Target, opts notification.Options) notification.BatchResult
	RetryMany(ctx context.Context, targets []notification.RetryTarget) notification.BatchResult
}

type FailedLogs interface {
	FindRetryable(ctx context.Context, maxRetries int, since time.Time, limit int) ([]notification.Log, error)
}

type Config struct {
	MaxRetries     int
	RetryLookback  time.Duration
	RetryBatchSize int
}

type Scheduler struct {
	quizzes    Quizzes
	users      Users
	dispatcher Dispatcher
	logs       FailedLogs
	clock      clock.Clock
	cfg        Config
	logger     *zap.Logger
}

func New(quizzes Quizzes, users Users, dispatcher Dispatcher, logs FailedLogs, clk clock.Clock, cfg Config, logger *zap.Logger) *Scheduler {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryLookback <= 0 {
		cfg.RetryLookback = DefaultRetryLookback
	}
	if cfg.RetryBatchSize <= 0 {
		cfg.RetryBatchSize = DefaultRetryBatchSize
	}
	return &Scheduler{
		quizzes:    quizzes,
		users:      users,
		dispatcher: dispatcher,
		logs:       logs,
		clock:      clk,
		cfg:        cfg,
		logger:     logger.Named("scheduler"),
	}
}

type SweepOptions struct {
	Status quiz.Status
	// Window is the half-width of the scheduled_at range around now.
	Window time.Duration
	// IncludeOverdue also picks up quizzes scheduled before now-Window that were never answered.
	IncludeOverdue bool
}

// Sweep dispatches reminders for quizzes in opts.Status that are due around now.
func (s *Scheduler) Sweep(ctx context.Context, opts SweepOptions) (notification.BatchResult, error) {
	if !opts.Status.Valid() || opts.Status == quiz.StatusDone {
		return notification.BatchResult{}, fmt.Errorf("%w: %q", ErrInvalidStatus, opts.Status)
	}
	if opts.Window <= 0 {
		opts.Window = DefaultSweepWindow
	}

	now := s.clock.Now()
	var (
		quizzes []quiz.Quiz
		err     error
	)
	if opts.IncludeOverdue {
		quizzes, err = s.quizzes.ListDue(ctx, opts.Status, now.Add(opts.Window))
	} else {
		quizzes, err = s.quizzes.ListInWindow(ctx, opts.Status, now, opts.Window)
	}
	if err != nil {
		return notification.BatchResult{}, fmt.Errorf("list %s quizzes: %w", opts.Status, err)
	}

	users, err := s.users.GetMany(ctx, ownerIDs(quizzes))
	if err != nil {
		return notification.BatchResult{}, fmt.Errorf("load quiz owners: %w", err)
	}

	targets := make([]notification.Target, 0, len(quizzes))
	for i := range quizzes {
		q := &quizzes[i]
		t := notification.Target{Quiz: q, User: users[q.UserID]}
		if t.User == nil {
			t.Err = fmt.Errorf("user %d: %w", q.UserID, user.ErrNotFound)
		}
		targets = append(targets, t)
	}

	s.logger.Info("sweep started",
		zap.String("status", string(opts.Status)),
		zap.Duration("window", opts.Window),
		zap.Bool("include_overdue", opts.IncludeOverdue),
		zap.Int("quizzes", len(targets)),
	)
	return s.dispatcher.DispatchMany(ctx, targets, notification.Options{Policy: notification.PolicySweep}), nil
}

// Notify dispatches the reminder for one quiz to its owner. force bypasses only the
// already-sent checks.
func (s *Scheduler) Notify(ctx context.Context, quizID, userID int64, force bool) (notification.Result, error) {
	q, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return notification.Result{}, err
	}
	if q.UserID != userID {
		return notification.Result{}, fmt.Errorf("quiz %d for user %d: %w", quizID, userID, quiz.ErrNotFound)
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return notification.Result{}, err
	}
	return s.dispatcher.Dispatch(ctx, q, u, notification.Options{Policy: notification.PolicySingle, Force: force}), nil
}

// RetryFailed re-sends failed notifications from the lookback period that still have retries left.
func (s *Scheduler) RetryFailed(ctx context.Context) (notification.BatchResult, error) {
	since := s.clock.Now().Add(-s.cfg.RetryLookback)
	logs, err := s.logs.FindRetryable(ctx, s.cfg.MaxRetries, since, s.cfg.RetryBatchSize)
	if err != nil {
		return notification.BatchResult{}, fmt.Errorf("find retryable notifications: %w", err)
	}

	quizIDs := make([]int64, 0, len(logs))
	userIDs := make([]int64, 0, len(logs))
	for _, l := range logs {
		quizIDs = append(quizIDs, l.QuizID)
		userIDs = append(userIDs, l.UserID)
	}
	quizzes, err := s.quizzes.GetMany(ctx, unique(quizIDs))
	if err != nil {
		return notification.BatchResult{}, fmt.Errorf("load quizzes: %w", err)
	}
	users, err := s.users.GetMany(ctx, unique(userIDs))
	if err != nil {
		return notification.BatchResult{}, fmt.Errorf("load users: %w", err)
	}

	targets := make([]notification.RetryTarget, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		t := notification.RetryTarget{Log: l, Quiz: quizzes[l.QuizID], User: users[l.UserID]}
		switch {
		case t.Quiz == nil:
			t.Err = fmt.Errorf("quiz %d: %w", l.QuizID, quiz.ErrNotFound)
		case t.User == nil:
			t.Err = fmt.Errorf("user %d: %w", l.UserID, user.ErrNotFound)
		}
		targets = append(targets, t)
	}

	s.logger.Info("retry started", zap.Int("logs", len(targets)), zap.Time("since", since))
	return s.dispatcher.RetryMany(ctx, targets), nil
}

func ownerIDs(quizzes []quiz.Quiz) []int64 {
	ids := make([]int64, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.UserID)
	}
	return unique(ids)
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
