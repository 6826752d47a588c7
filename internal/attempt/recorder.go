package attempt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

//go:generate mockgen -source=recorder.go -destination=../mocks/attempt/mock_recorder.go -package=mock_attempt

// MaxAnswerRunes caps the stored answer. Longer answers are graded in full and stored truncated.
const MaxAnswerRunes = 1000

// Lifecycle is the part of the quiz lifecycle the recorder drives.
type Lifecycle interface {
	GetForUser(ctx context.Context, id, userID int64) (*quiz.Quiz, error)
	Advance(ctx context.Context, q *quiz.Quiz) error
}

type Result struct {
	Attempt         *Attempt
	IsCorrect       bool
	CanonicalAnswer string
	Status          quiz.Status
	ScheduledAt     time.Time
}

type Recorder struct {
	quizzes  Lifecycle
	attempts Repository
	clock    clock.Clock
	logger   *zap.Logger
}

func NewRecorder(quizzes Lifecycle, attempts Repository, clk clock.Clock, logger *zap.Logger) *Recorder {
	return &Recorder{quizzes: quizzes, attempts: attempts, clock: clk, logger: logger.Named("attempt")}
}

// Record stores the answer and advances the quiz to its next stage whether or not the answer was correct.
// A blank answer is recorded as incorrect.
func (r *Recorder) Record(ctx context.Context, quizID, userID int64, rawAnswer string) (*Result, error) {
	q, err := r.quizzes.GetForUser(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	answer := strings.TrimSpace(rawAnswer)
	a := &Attempt{
		QuizID:     q.ID,
		UserID:     userID,
		Answer:     truncateRunes(answer, MaxAnswerRunes),
		IsCorrect:  answer != "" && IsCorrect(q, answer),
		AnsweredAt: r.clock.Now(),
	}
	if err := r.attempts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("record attempt for quiz %d: %w", q.ID, err)
	}

	if err := r.quizzes.Advance(ctx, q); err != nil {
		if !errors.Is(err, quiz.ErrStatusConflict) {
			return nil, fmt.Errorf("advance quiz %d: %w", q.ID, err)
		}
		// Another answer advanced the quiz first. Report where it is now.
		if q, err = r.quizzes.GetForUser(ctx, quizID, userID); err != nil {
			return nil, err
		}
	}

	r.logger.Info("attempt recorded",
		zap.Int64("quiz_id", q.ID),
		zap.Int64("user_id", userID),
		zap.Bool("correct", a.IsCorrect),
		zap.String("status", string(q.Status)),
	)
	return &Result{
		Attempt:         a,
		IsCorrect:       a.IsCorrect,
		CanonicalAnswer: q.Answer,
		Status:          q.Status,
		ScheduledAt:     q.ScheduledAt,
	}, nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// IsCorrect grades an answer. Cloze answers must match exactly after trimming;
// true/false answers are compared after case-insensitive normalization.
func IsCorrect(q *quiz.Quiz, answer string) bool {
	answer = strings.TrimSpace(answer)
	switch q.Type {
	case quiz.TypeTrueFalse:
		normalized, ok := quiz.NormalizeTrueFalse(answer)
		return ok && normalized == q.Answer
	default:
		return answer == strings.TrimSpace(q.Answer)
	}
}
