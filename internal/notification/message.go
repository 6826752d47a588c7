package notification

import (
	"fmt"
	"unicode/utf8"

	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

// Message is a channel-specific payload. Each channel has its own variant.
type Message interface {
	Channel() Channel
}

// LineMessage renders as a buttons template with a single link action.
type LineMessage struct {
	AltText     string
	Title       string
	Text        string
	ButtonLabel string
	URL         string
}

func (LineMessage) Channel() Channel { return ChannelLine }

const (
	lineTitleLimit = 40
	// Buttons templates with a title accept at most 60 characters of text.
	lineTextLimit = 60
)

var stageTitles = map[quiz.Status]string{
	quiz.StatusToday: "今日のクイズ",
	quiz.StatusDay1:  "1日後の復習クイズ",
	quiz.StatusDay7:  "1週間後の復習クイズ",
}

// StageTitle is the heading shown for a quiz in the given stage.
func StageTitle(status quiz.Status) string {
	if title, ok := stageTitles[status]; ok {
		return title
	}
	return "復習クイズ"
}

// BuildMessage renders the reminder for q on channel ch, linking to link.
func BuildMessage(ch Channel, q *quiz.Quiz, link string) (Message, error) {
	switch ch {
	case ChannelLine:
		title := StageTitle(q.Status)
		return LineMessage{
			AltText:     title + ": " + truncate(q.Stem, 200),
			Title:       truncate(title, lineTitleLimit),
			Text:        truncate(q.Stem, lineTextLimit),
			ButtonLabel: "クイズに答える",
			URL:         link,
		}, nil
	}
	return nil, fmt.Errorf("unsupported channel %q", ch)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
