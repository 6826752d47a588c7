// Package memo stores reading memos and turns them into quizzes.
package memo

import "time"

type Memo struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	SourceRef string    `db:"source_ref"`
	CreatedAt time.Time `db:"created_at"`
}
