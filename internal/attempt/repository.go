package attempt

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/attempt/mock_repository.go -package=mock_attempt

type Repository interface {
	Create(ctx context.Context, a *Attempt) error
	FindByUser(ctx context.Context, userID int64) ([]Attempt, error)
}

type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) Create(ctx context.Context, a *Attempt) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO attempts (quiz_id, user_id, answer, is_correct, answered_at) VALUES (?, ?, ?, ?, ?)",
		a.QuizID, a.UserID, a.Answer, a.IsCorrect, a.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("LastInsertId() > %w", err)
	}
	a.ID = id
	return nil
}

// FindByUser returns every attempt of a user, oldest first.
func (r *DBRepository) FindByUser(ctx context.Context, userID int64) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		"SELECT id, quiz_id, user_id, answer, is_correct, answered_at FROM attempts WHERE user_id = ? ORDER BY answered_at, id",
		userID,
	); err != nil {
		return nil, fmt.Errorf("db.SelectContext(attempts of user %d) > %w", userID, err)
	}
	return attempts, nil
}
