package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
)

// Lifecycle creates quizzes and moves them through their review stages.
type Lifecycle struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewLifecycle(repo Repository, clk clock.Clock, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{repo: repo, clock: clk, logger: logger.Named("quiz")}
}

// New builds an unsaved quiz in the today stage, due now.
func New(memoID, userID int64, g Generated, now time.Time) (*Quiz, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Quiz{
		MemoID:      memoID,
		UserID:      userID,
		Type:        g.Type,
		Stem:        g.Stem,
		Answer:      g.Answer,
		Choices:     Choices(g.Choices),
		Status:      StatusToday,
		ScheduledAt: CalculateSchedule(now).Today,
	}, nil
}

func (l *Lifecycle) Create(ctx context.Context, memoID, userID int64, g Generated) (*Quiz, error) {
	q, err := New(memoID, userID, g, l.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("build quiz for memo %d: %w", memoID, err)
	}
	if err := l.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	l.logger.Info("quiz created", zap.Int64("quiz_id", q.ID), zap.Int64("memo_id", memoID), zap.String("type", string(q.Type)))
	return q, nil
}

func (l *Lifecycle) Get(ctx context.Context, id int64) (*Quiz, error) {
	q, err := l.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("quiz %d: %w", id, ErrNotFound)
	}
	return q, nil
}

// GetMany returns the quizzes that exist among ids, keyed by id.
func (l *Lifecycle) GetMany(ctx context.Context, ids []int64) (map[int64]*Quiz, error) {
	quizzes, err := l.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*Quiz, len(quizzes))
	for i := range quizzes {
		byID[quizzes[i].ID] = &quizzes[i]
	}
	return byID, nil
}

// GetForUser hides quizzes owned by someone else behind ErrNotFound.
func (l *Lifecycle) GetForUser(ctx context.Context, id, userID int64) (*Quiz, error) {
	q, err := l.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.UserID != userID {
		return nil, fmt.Errorf("quiz %d for user %d: %w", id, userID, ErrNotFound)
	}
	return q, nil
}

// Advance moves q to its next stage and reschedules it. q is updated in place on success.
func (l *Lifecycle) Advance(ctx context.Context, q *Quiz) error {
	now := l.clock.Now()
	next := q.Status.Next()
	scheduledAt := CalculateSchedule(now).For(next)

	if err := l.repo.UpdateStatus(ctx, q.ID, q.Status, next, scheduledAt); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			l.logger.Warn("quiz advanced concurrently", zap.Int64("quiz_id", q.ID), zap.String("from", string(q.Status)))
		}
		return err
	}
	l.logger.Debug("quiz advanced",
		zap.Int64("quiz_id", q.ID),
		zap.String("from", string(q.Status)),
		zap.String("to", string(next)),
		zap.Time("scheduled_at", scheduledAt),
	)
	q.Status = next
	q.ScheduledAt = scheduledAt
	return nil
}

func (l *Lifecycle) ListForUser(ctx context.Context, userID int64, statuses ...Status) ([]Quiz, error) {
	return l.repo.FindByUser(ctx, userID, statuses...)
}

func (l *Lifecycle) ListToday(ctx context.Context, userID int64) ([]Quiz, error) {
	return l.repo.FindByUser(ctx, userID, StatusToday)
}

// ListDue returns quizzes in status scheduled at or before cutoff.
func (l *Lifecycle) ListDue(ctx context.Context, status Status, cutoff time.Time) ([]Quiz, error) {
	return l.repo.FindDue(ctx, status, cutoff)
}

// ListInWindow returns quizzes in status scheduled within [center-window, center+window].
func (l *Lifecycle) ListInWindow(ctx context.Context, status Status, center time.Time, window time.Duration) ([]Quiz, error) {
	r := clock.Around(center, window)
	return l.repo.FindScheduledBetween(ctx, status, r.From, r.To)
}
