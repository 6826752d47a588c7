// Package notification delivers quiz reminders over a messaging channel and keeps the
// append-only log that deduplicates them.
package notification

import (
	"fmt"
	"time"
)

type Channel string

const ChannelLine Channel = "line"

type LogStatus string

const (
	LogStatusSent   LogStatus = "sent"
	LogStatusFailed LogStatus = "failed"
)

// Log maps notification_logs. One row is written per delivery attempt and only the retry job
// updates it afterwards.
type Log struct {
	ID           int64     `db:"id"`
	QuizID       int64     `db:"quiz_id"`
	UserID       int64     `db:"user_id"`
	Channel      Channel   `db:"channel"`
	Status       LogStatus `db:"status"`
	RetryCount   int       `db:"retry_count"`
	ErrorMessage *string   `db:"error_message"`
	// DedupDay is the local day of a non-forced successful send. It backs a unique index
	// on (quiz_id, user_id, dedup_day).
	DedupDay  *time.Time `db:"dedup_day"`
	SentAt    time.Time  `db:"sent_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

type SkipReason string

const (
	ReasonQuizDone       SkipReason = "quiz_done"
	ReasonDisabled       SkipReason = "disabled"
	ReasonUnlinked       SkipReason = "unlinked"
	ReasonOutsideWindow  SkipReason = "outside_window"
	ReasonInvalidTime    SkipReason = "invalid_notification_time"
	ReasonAlreadySent    SkipReason = "already_sent"
	ReasonAlreadyRetried SkipReason = "already_retried"
)

// Result describes what happened to a single dispatch. Err is set for failures and for
// sends whose log row could not be written.
type Result struct {
	QuizID  int64
	UserID  int64
	Outcome Outcome
	Reason  SkipReason
	Log     *Log
	Err     error
}

func (r Result) String() string {
	switch r.Outcome {
	case OutcomeSkipped:
		return fmt.Sprintf("quiz %d user %d: skipped (%s)", r.QuizID, r.UserID, r.Reason)
	case OutcomeFailed:
		return fmt.Sprintf("quiz %d user %d: failed: %v", r.QuizID, r.UserID, r.Err)
	}
	return fmt.Sprintf("quiz %d user %d: %s", r.QuizID, r.UserID, r.Outcome)
}

// Policy selects how already-sent notifications are detected.
type Policy int

const (
	// PolicySweep skips pairs that already received a notification since local midnight.
	PolicySweep Policy = iota
	// PolicySingle skips pairs that ever received a first-attempt notification.
	PolicySingle
)

type Options struct {
	Policy Policy
	// Force bypasses the already-sent checks. Every other eligibility rule still applies.
	Force bool
}
