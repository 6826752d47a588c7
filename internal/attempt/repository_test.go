package attempt

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBRepository_Create(t *testing.T) {
	answeredAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   bool
	}{
		{
			name: "inserted",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attempts (quiz_id, user_id, answer, is_correct, answered_at) VALUES (?, ?, ?, ?, ?)")).
					WithArgs(int64(1), int64(5), "Go", true, answeredAt).
					WillReturnResult(sqlmock.NewResult(11, 1))
			},
			wantID: 11,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO attempts").WillReturnError(fmt.Errorf("deadlock"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			a := &Attempt{QuizID: 1, UserID: 5, Answer: "Go", IsCorrect: true, AnsweredAt: answeredAt}
			err = NewDBRepository(sqlx.NewDb(db, "mysql")).Create(context.Background(), a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, a.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_FindByUser(t *testing.T) {
	answeredAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT id, quiz_id, user_id, answer, is_correct, answered_at FROM attempts WHERE user_id = ? ORDER BY answered_at, id")
	columns := []string{"id", "quiz_id", "user_id", "answer", "is_correct", "answered_at"}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      []Attempt
		wantErr   bool
	}{
		{
			name: "attempts across quizzes",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(int64(5)).
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow(1, 1, 5, "Go", true, answeredAt).
						AddRow(2, 3, 5, "False", false, answeredAt.Add(time.Hour)))
			},
			want: []Attempt{
				{ID: 1, QuizID: 1, UserID: 5, Answer: "Go", IsCorrect: true, AnsweredAt: answeredAt},
				{ID: 2, QuizID: 3, UserID: 5, Answer: "False", IsCorrect: false, AnsweredAt: answeredAt.Add(time.Hour)},
			},
		},
		{
			name: "no attempts",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(columns))
			},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnError(fmt.Errorf("connection reset"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			got, err := NewDBRepository(sqlx.NewDb(db, "mysql")).FindByUser(context.Background(), 5)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
