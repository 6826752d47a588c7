// Package attempt records learners' answers and advances the quiz they answered.
package attempt

import "time"

// Attempt maps the attempts table. Rows are append-only.
type Attempt struct {
	ID         int64     `db:"id"`
	QuizID     int64     `db:"quiz_id"`
	UserID     int64     `db:"user_id"`
	Answer     string    `db:"answer"`
	IsCorrect  bool      `db:"is_correct"`
	AnsweredAt time.Time `db:"answered_at"`
}
