package memo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/memoquiz/internal/database"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

//go:generate mockgen -source=repository.go -destination=../mocks/memo/mock_repository.go -package=mock_memo

type Repository interface {
	FindBySourceRef(ctx context.Context, userID int64, sourceRef string) (*Memo, error)
	// CreateWithQuizzes inserts the memo and its quizzes atomically. Quiz IDs are not populated.
	CreateWithQuizzes(ctx context.Context, newMemo *Memo, quizzes []*quiz.Quiz) error
}

type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) FindBySourceRef(ctx context.Context, userID int64, sourceRef string) (*Memo, error) {
	var m Memo
	if err := r.db.GetContext(ctx, &m,
		"SELECT id, user_id, title, body, source_ref, created_at FROM memos WHERE user_id = ? AND source_ref = ?",
		userID, sourceRef,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext(memo by source) > %w", err)
	}
	return &m, nil
}

func (r *DBRepository) CreateWithQuizzes(ctx context.Context, m *Memo, quizzes []*quiz.Quiz) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO memos (user_id, title, body, source_ref) VALUES (?, ?, ?, ?)",
			m.UserID, m.Title, m.Body, m.SourceRef,
		)
		if err != nil {
			return fmt.Errorf("insert memo: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("LastInsertId() > %w", err)
		}
		m.ID = id

		if len(quizzes) == 0 {
			return nil
		}
		columns := []string{"memo_id", "user_id", "type", "stem", "answer", "choices", "status", "scheduled_at"}
		query := database.BuildMultiRowInsert("quizzes", columns, len(quizzes))
		var args []interface{}
		for _, q := range quizzes {
			q.MemoID = id
			args = append(args, q.MemoID, q.UserID, q.Type, q.Stem, q.Answer, q.Choices, q.Status, q.ScheduledAt)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert quizzes: %w", err)
		}
		return nil
	})
}
