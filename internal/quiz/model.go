// Package quiz holds the quiz model and its review-stage lifecycle.
package quiz

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the review stage of a quiz.
type Status string

const (
	StatusToday Status = "today"
	StatusDay1  Status = "day1"
	StatusDay7  Status = "day7"
	StatusDone  Status = "done"
)

// Next returns the stage that follows s. Done is terminal.
func (s Status) Next() Status {
	switch s {
	case StatusToday:
		return StatusDay1
	case StatusDay1:
		return StatusDay7
	default:
		return StatusDone
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusToday, StatusDay1, StatusDay7, StatusDone:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown quiz status %q", s)
	}
	return st, nil
}

type Type string

const (
	TypeCloze     Type = "cloze"
	TypeTrueFalse Type = "true_false"
)

func (t Type) Valid() bool {
	return t == TypeCloze || t == TypeTrueFalse
}

// Choices is stored as a nullable JSON array.
type Choices []string

func (c Choices) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(c))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(choices) > %w", err)
	}
	return string(b), nil
}

func (c *Choices) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported choices column type %T", src)
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("json.Unmarshal(choices) > %w", err)
	}
	*c = out
	return nil
}

// Quiz maps the quizzes table.
type Quiz struct {
	ID          int64     `db:"id"`
	MemoID      int64     `db:"memo_id"`
	UserID      int64     `db:"user_id"`
	Type        Type      `db:"type"`
	Stem        string    `db:"stem"`
	Answer      string    `db:"answer"`
	Choices     Choices   `db:"choices"`
	Status      Status    `db:"status"`
	ScheduledAt time.Time `db:"scheduled_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Generated is a question produced from memo text.
type Generated struct {
	Type    Type
	Stem    string
	Answer  string
	Choices []string
}

// Validate checks the generated question and canonicalizes true/false answers.
func (g *Generated) Validate() error {
	if !g.Type.Valid() {
		return fmt.Errorf("unknown quiz type %q", g.Type)
	}
	if strings.TrimSpace(g.Stem) == "" {
		return fmt.Errorf("quiz stem is empty")
	}
	if strings.TrimSpace(g.Answer) == "" {
		return fmt.Errorf("quiz answer is empty")
	}
	if g.Type == TypeTrueFalse {
		canonical, ok := NormalizeTrueFalse(g.Answer)
		if !ok {
			return fmt.Errorf("true_false answer must be True or False, got %q", g.Answer)
		}
		g.Answer = canonical
	}
	return nil
}

const (
	AnswerTrue  = "True"
	AnswerFalse = "False"
)

// NormalizeTrueFalse maps a case-insensitive true/false answer to its literal token.
func NormalizeTrueFalse(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return AnswerTrue, true
	case "false":
		return AnswerFalse, true
	}
	return "", false
}
