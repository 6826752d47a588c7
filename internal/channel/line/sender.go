package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/at-ishikawa/memoquiz/internal/notification"
)

// Sender pushes reminders as a buttons template linking to the quiz page.
type Sender struct {
	api        API
	senderName string
}

func NewSender(api API, senderName string) *Sender {
	return &Sender{api: api, senderName: senderName}
}

func (s *Sender) Channel() notification.Channel {
	return notification.ChannelLine
}

// Send pushes msg to the LINE user to. When LINE rejects the template, the reminder is
// sent again as plain text with the link inline.
func (s *Sender) Send(ctx context.Context, to string, msg notification.Message) error {
	m, ok := msg.(notification.LineMessage)
	if !ok {
		return fmt.Errorf("unsupported message %T for line", msg)
	}

	err := s.api.PushMessage(ctx, to, s.withSender(templateMessage(m)))
	var apiErr *linebot.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusBadRequest {
		return err
	}
	return s.api.PushMessage(ctx, to, s.withSender(TextMessage(m)))
}

func (s *Sender) withSender(m interface {
	WithSender(*linebot.Sender) linebot.SendingMessage
}) linebot.SendingMessage {
	if s.senderName == "" {
		return m.(linebot.SendingMessage)
	}
	return m.WithSender(&linebot.Sender{Name: s.senderName})
}

func templateMessage(m notification.LineMessage) *linebot.TemplateMessage {
	buttons := linebot.NewButtonsTemplate("", m.Title, m.Text, linebot.NewURIAction(m.ButtonLabel, m.URL))
	return linebot.NewTemplateMessage(m.AltText, buttons)
}

// TextMessage renders m as plain text for clients and replies that cannot show templates.
func TextMessage(m notification.LineMessage) *linebot.TextMessage {
	return linebot.NewTextMessage(m.Title + "\n" + m.Text + "\n" + m.URL)
}
