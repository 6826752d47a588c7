package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

//go:generate mockgen -source=webhook.go -destination=../../mocks/line/mock_webhook.go -package=mock_line

// ErrInvalidRequest is returned for webhook calls with a bad signature or body.
var ErrInvalidRequest = errors.New("invalid webhook request")

type UserService interface {
	FindOrCreate(ctx context.Context, accountID, displayName string) (*user.User, bool, error)
	UpdateSettings(ctx context.Context, id int64, settings user.Settings) (*user.User, error)
}

type QuizLister interface {
	ListToday(ctx context.Context, userID int64) ([]quiz.Quiz, error)
	ListForUser(ctx context.Context, userID int64, statuses ...quiz.Status) ([]quiz.Quiz, error)
}

type Linker interface {
	QuizLink(tok string) string
}

const maxQuizzesPerReply = 10

var (
	quizKeywords   = []string{"quiz", "今日のクイズ"}
	notifyTimeExpr = regexp.MustCompile(`^通知\s*(\d{1,2}:\d{2})$`)
)

// Webhook handles follow events and the text commands learners send to the bot.
type Webhook struct {
	api      API
	users    UserService
	quizzes  QuizLister
	tokens   notification.TokenIssuer
	links    Linker
	clock    clock.Clock
	location *time.Location
	logger   *zap.Logger
}

func NewWebhook(api API, users UserService, quizzes QuizLister, tokens notification.TokenIssuer, links Linker, clk clock.Clock, loc *time.Location, logger *zap.Logger) *Webhook {
	return &Webhook{
		api:      api,
		users:    users,
		quizzes:  quizzes,
		tokens:   tokens,
		links:    links,
		clock:    clk,
		location: loc,
		logger:   logger.Named("line_webhook"),
	}
}

// Handle verifies req and processes every event in it. Failures of single events are
// logged and do not fail the request, so LINE does not redeliver the whole batch.
func (w *Webhook) Handle(ctx context.Context, req *http.Request) error {
	events, err := w.api.ParseRequest(req)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			return fmt.Errorf("%w: signature mismatch", ErrInvalidRequest)
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	for _, event := range events {
		if err := w.handleEvent(ctx, event); err != nil {
			w.logger.Error("failed to handle line event", zap.String("type", string(event.Type)), zap.Error(err))
		}
	}
	return nil
}

func (w *Webhook) handleEvent(ctx context.Context, event *linebot.Event) error {
	if event.Source == nil || event.Source.UserID == "" {
		return nil
	}
	accountID := event.Source.UserID

	switch event.Type {
	case linebot.EventTypeFollow:
		return w.handleFollow(ctx, event.ReplyToken, accountID)
	case linebot.EventTypeMessage:
		message, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			return nil
		}
		return w.handleText(ctx, event.ReplyToken, accountID, strings.TrimSpace(message.Text))
	}
	return nil
}

func (w *Webhook) handleFollow(ctx context.Context, replyToken, accountID string) error {
	displayName := ""
	if profile, err := w.api.GetProfile(ctx, accountID); err != nil {
		w.logger.Warn("failed to get line profile", zap.Error(err))
	} else {
		displayName = profile.DisplayName
	}

	u, created, err := w.users.FindOrCreate(ctx, accountID, displayName)
	if err != nil {
		return err
	}
	if created {
		w.logger.Info("line user linked", zap.Int64("user_id", u.ID))
	}
	return w.reply(ctx, replyToken, fmt.Sprintf("友だち追加ありがとうございます！毎日 %s にクイズをお届けします。\n「今日のクイズ」と送るといつでもクイズを受け取れます。", u.NotificationTime))
}

func (w *Webhook) handleText(ctx context.Context, replyToken, accountID, text string) error {
	u, _, err := w.users.FindOrCreate(ctx, accountID, "")
	if err != nil {
		return err
	}

	switch {
	case isQuizKeyword(text):
		return w.replyTodayQuizzes(ctx, replyToken, u)
	case text == "通知オフ", text == "通知オン":
		enabled := text == "通知オン"
		if _, err := w.users.UpdateSettings(ctx, u.ID, user.Settings{Enabled: &enabled}); err != nil {
			return err
		}
		if enabled {
			return w.reply(ctx, replyToken, "クイズの通知をオンにしました。")
		}
		return w.reply(ctx, replyToken, "クイズの通知をオフにしました。")
	case notifyTimeExpr.MatchString(text):
		hhmm := notifyTimeExpr.FindStringSubmatch(text)[1]
		updated, err := w.users.UpdateSettings(ctx, u.ID, user.Settings{Time: &hhmm})
		if errors.Is(err, clock.ErrInvalidTimeOfDay) {
			return w.reply(ctx, replyToken, "時刻は 07:30 のように HH:MM 形式で送ってください。")
		}
		if err != nil {
			return err
		}
		return w.reply(ctx, replyToken, fmt.Sprintf("通知時刻を %s に変更しました。", updated.NotificationTime))
	}
	return nil
}

// replyTodayQuizzes lists the user's new quizzes, then the reviews due by the end of the local day.
func (w *Webhook) replyTodayQuizzes(ctx context.Context, replyToken string, u *user.User) error {
	quizzes, err := w.quizzes.ListToday(ctx, u.ID)
	if err != nil {
		return err
	}
	reviews, err := w.quizzes.ListForUser(ctx, u.ID, quiz.StatusDay1, quiz.StatusDay7)
	if err != nil {
		return err
	}
	quizzes = append(quizzes, reviews...)
	endOfDay := clock.EndOfDay(w.clock.Now(), w.location)

	var lines []string
	for i := range quizzes {
		q := &quizzes[i]
		if q.ScheduledAt.After(endOfDay) {
			continue
		}
		if len(lines) == maxQuizzesPerReply {
			break
		}
		tok, err := w.tokens.Issue(q.ID, u.ID)
		if err != nil {
			return fmt.Errorf("issue token for quiz %d: %w", q.ID, err)
		}
		lines = append(lines, fmt.Sprintf("%d. %s\n%s", len(lines)+1, truncateRunes(q.Stem, 40), w.links.QuizLink(tok)))
	}
	if len(lines) == 0 {
		return w.reply(ctx, replyToken, "今日のクイズはありません。")
	}
	return w.reply(ctx, replyToken, "今日のクイズ\n\n"+strings.Join(lines, "\n\n"))
}

func (w *Webhook) reply(ctx context.Context, replyToken, text string) error {
	if replyToken == "" {
		return nil
	}
	return w.api.ReplyMessage(ctx, replyToken, linebot.NewTextMessage(text))
}

func isQuizKeyword(text string) bool {
	for _, k := range quizKeywords {
		if strings.EqualFold(text, k) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
