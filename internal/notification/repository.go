package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/memoquiz/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/notification/mock_repository.go -package=mock_notification

var (
	// ErrDuplicate means a successful send for the same quiz, user and day is already logged.
	ErrDuplicate = errors.New("notification already logged for this day")
	// ErrRetryConflict means another retry updated the row first.
	ErrRetryConflict = errors.New("notification log retried concurrently")
)

const selectLogs = "SELECT id, quiz_id, user_id, channel, status, retry_count, error_message, dedup_day, sent_at, updated_at FROM notification_logs"

type Repository interface {
	Create(ctx context.Context, l *Log) error
	HasSentSince(ctx context.Context, quizID, userID int64, since time.Time) (bool, error)
	HasSentInitial(ctx context.Context, quizID, userID int64) (bool, error)
	FindRetryable(ctx context.Context, maxRetries int, since time.Time, limit int) ([]Log, error)
	MarkRetried(ctx context.Context, l *Log, prevRetryCount int) error
}

type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) Create(ctx context.Context, l *Log) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notification_logs (quiz_id, user_id, channel, status, retry_count, error_message, dedup_day, sent_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		l.QuizID, l.UserID, l.Channel, l.Status, l.RetryCount, l.ErrorMessage, l.DedupDay, l.SentAt,
	)
	if err != nil {
		if database.IsDuplicateEntry(err) {
			return fmt.Errorf("quiz %d user %d: %w", l.QuizID, l.UserID, ErrDuplicate)
		}
		return fmt.Errorf("insert notification log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("LastInsertId() > %w", err)
	}
	l.ID = id
	return nil
}

// HasSentSince reports whether a successful send for the pair was logged at or after since.
func (r *DBRepository) HasSentSince(ctx context.Context, quizID, userID int64, since time.Time) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM notification_logs WHERE quiz_id = ? AND user_id = ? AND status = ? AND sent_at >= ?)",
		quizID, userID, LogStatusSent, since,
	); err != nil {
		return false, fmt.Errorf("db.GetContext(sent since) > %w", err)
	}
	return exists, nil
}

// HasSentInitial reports whether the first attempt for the pair ever succeeded.
func (r *DBRepository) HasSentInitial(ctx context.Context, quizID, userID int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM notification_logs WHERE quiz_id = ? AND user_id = ? AND status = ? AND retry_count = 0)",
		quizID, userID, LogStatusSent,
	); err != nil {
		return false, fmt.Errorf("db.GetContext(sent initial) > %w", err)
	}
	return exists, nil
}

// FindRetryable returns failed rows logged since since that have retries left and were not
// superseded by a later successful send for the same pair.
func (r *DBRepository) FindRetryable(ctx context.Context, maxRetries int, since time.Time, limit int) ([]Log, error) {
	var logs []Log
	if err := r.db.SelectContext(ctx, &logs,
		`SELECT l.id, l.quiz_id, l.user_id, l.channel, l.status, l.retry_count, l.error_message, l.dedup_day, l.sent_at, l.updated_at
FROM notification_logs l
WHERE l.status = ? AND l.retry_count < ? AND l.sent_at >= ?
AND NOT EXISTS (
	SELECT 1 FROM notification_logs s
	WHERE s.quiz_id = l.quiz_id AND s.user_id = l.user_id AND s.status = ? AND s.sent_at >= l.sent_at
)
ORDER BY l.sent_at, l.id
LIMIT ?`,
		LogStatusFailed, maxRetries, since, LogStatusSent, limit,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(retryable notification logs) > %w", err)
	}
	return logs, nil
}

// MarkRetried overwrites the row with the outcome of a retry, provided nobody else retried
// it since it was read with prevRetryCount.
func (r *DBRepository) MarkRetried(ctx context.Context, l *Log, prevRetryCount int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notification_logs SET status = ?, retry_count = ?, error_message = ?, dedup_day = ?, sent_at = ? WHERE id = ? AND retry_count = ?",
		l.Status, l.RetryCount, l.ErrorMessage, l.DedupDay, l.SentAt, l.ID, prevRetryCount,
	)
	if err != nil {
		if database.IsDuplicateEntry(err) {
			return fmt.Errorf("notification log %d: %w", l.ID, ErrDuplicate)
		}
		return fmt.Errorf("update notification log %d: %w", l.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("RowsAffected() > %w", err)
	}
	if n == 0 {
		return fmt.Errorf("notification log %d: %w", l.ID, ErrRetryConflict)
	}
	return nil
}
