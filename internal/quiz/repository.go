package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/quiz/mock_repository.go -package=mock_quiz

var (
	ErrNotFound = errors.New("quiz not found")
	// ErrStatusConflict is returned when the stored status no longer matches the expected one.
	ErrStatusConflict = errors.New("quiz status changed concurrently")
)

const selectQuizzes = "SELECT id, memo_id, user_id, type, stem, answer, choices, status, scheduled_at, created_at, updated_at FROM quizzes"

// Repository defines persistence operations for quizzes.
type Repository interface {
	Create(ctx context.Context, q *Quiz) error
	FindByID(ctx context.Context, id int64) (*Quiz, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Quiz, error)
	FindByUser(ctx context.Context, userID int64, statuses ...Status) ([]Quiz, error)
	FindDue(ctx context.Context, status Status, cutoff time.Time) ([]Quiz, error)
	FindScheduledBetween(ctx context.Context, status Status, from, to time.Time) ([]Quiz, error)
	UpdateStatus(ctx context.Context, id int64, from, to Status, scheduledAt time.Time) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) Create(ctx context.Context, q *Quiz) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO quizzes (memo_id, user_id, type, stem, answer, choices, status, scheduled_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		q.MemoID, q.UserID, q.Type, q.Stem, q.Answer, q.Choices, q.Status, q.ScheduledAt,
	)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("LastInsertId() > %w", err)
	}
	q.ID = id
	return nil
}

// FindByID returns nil without an error when the quiz does not exist.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Quiz, error) {
	var q Quiz
	if err := r.db.GetContext(ctx, &q, selectQuizzes+" WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext(quiz %d) > %w", id, err)
	}
	return &q, nil
}

func (r *DBRepository) FindByIDs(ctx context.Context, ids []int64) ([]Quiz, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(selectQuizzes+" WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	var quizzes []Quiz
	if err := r.db.SelectContext(ctx, &quizzes, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(%d quizzes by id) > %w", len(ids), err)
	}
	return quizzes, nil
}

func (r *DBRepository) FindByUser(ctx context.Context, userID int64, statuses ...Status) ([]Quiz, error) {
	query := selectQuizzes + " WHERE user_id = ?"
	args := []interface{}{userID}
	if len(statuses) > 0 {
		var err error
		query, args, err = sqlx.In(query+" AND status IN (?)", userID, statuses)
		if err != nil {
			return nil, fmt.Errorf("sqlx.In() > %w", err)
		}
	}
	query = r.db.Rebind(query + " ORDER BY scheduled_at, id")

	var quizzes []Quiz
	if err := r.db.SelectContext(ctx, &quizzes, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(quizzes of user %d) > %w", userID, err)
	}
	return quizzes, nil
}

func (r *DBRepository) FindDue(ctx context.Context, status Status, cutoff time.Time) ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.SelectContext(ctx, &quizzes,
		selectQuizzes+" WHERE status = ? AND scheduled_at <= ? ORDER BY scheduled_at, id",
		status, cutoff,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due %s quizzes) > %w", status, err)
	}
	return quizzes, nil
}

func (r *DBRepository) FindScheduledBetween(ctx context.Context, status Status, from, to time.Time) ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.SelectContext(ctx, &quizzes,
		selectQuizzes+" WHERE status = ? AND scheduled_at BETWEEN ? AND ? ORDER BY scheduled_at, id",
		status, from, to,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(%s quizzes in window) > %w", status, err)
	}
	return quizzes, nil
}

// UpdateStatus moves a quiz from one status to another only if it is still in from.
func (r *DBRepository) UpdateStatus(ctx context.Context, id int64, from, to Status, scheduledAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE quizzes SET status = ?, scheduled_at = ? WHERE id = ? AND status = ?",
		to, scheduledAt, id, from,
	)
	if err != nil {
		return fmt.Errorf("update quiz %d status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("RowsAffected() > %w", err)
	}
	if n == 0 {
		return fmt.Errorf("quiz %d is no longer %s: %w", id, from, ErrStatusConflict)
	}
	return nil
}
