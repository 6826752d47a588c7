package notification

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

const (
	DefaultTolerance   = 30 * time.Minute
	DefaultSendTimeout = 10 * time.Second
	DefaultMaxErrors   = 20

	maxErrorMessageLength = 1000
)

var tracer = otel.Tracer("github.com/at-ishikawa/memoquiz/internal/notification")

type Config struct {
	Tolerance   time.Duration
	Location    *time.Location
	SendTimeout time.Duration
	// QuizURL is the learner-facing quiz page; the token is appended as ?token=.
	QuizURL string
	// MaxErrors bounds BatchResult.Errors.
	MaxErrors int
	// RatePerSecond limits channel calls across the process. Zero disables the limit.
	RatePerSecond int
}

type Dispatcher struct {
	logs    Repository
	sender  Sender
	tokens  TokenIssuer
	claimer Claimer
	clock   clock.Clock
	limiter *rate.Limiter
	cfg     Config
	logger  *zap.Logger
}

func NewDispatcher(logs Repository, sender Sender, tokens TokenIssuer, claimer Claimer, clk clock.Clock, cfg Config, logger *zap.Logger) (*Dispatcher, error) {
	if _, err := url.ParseRequestURI(cfg.QuizURL); err != nil {
		return nil, fmt.Errorf("invalid quiz url %q: %w", cfg.QuizURL, err)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = DefaultMaxErrors
	}
	if claimer == nil {
		claimer = NopClaimer{}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RatePerSecond)
	}
	return &Dispatcher{
		logs:    logs,
		sender:  sender,
		tokens:  tokens,
		claimer: claimer,
		clock:   clk,
		limiter: limiter,
		cfg:     cfg,
		logger:  logger.Named("dispatcher"),
	}, nil
}

// Dispatch sends the reminder for q to u unless an eligibility rule says otherwise.
// Every attempt that reaches the channel leaves exactly one log row. It never panics.
func (d *Dispatcher) Dispatch(ctx context.Context, q *quiz.Quiz, u *user.User, opts Options) (res Result) {
	if q == nil || u == nil {
		return Result{Outcome: OutcomeFailed, Err: errors.New("quiz and user are required")}
	}
	res = Result{QuizID: q.ID, UserID: u.ID}

	ctx, span := tracer.Start(ctx, "notification.Dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("quiz.id", q.ID),
		attribute.Int64("user.id", u.ID),
		attribute.Bool("notification.force", opts.Force),
	)
	defer func() {
		if r := recover(); r != nil {
			res.Outcome, res.Reason, res.Err = OutcomeFailed, "", fmt.Errorf("dispatch panicked: %v", r)
			d.logger.Error("dispatch panicked", zap.Int64("quiz_id", q.ID), zap.Int64("user_id", u.ID), zap.Any("panic", r))
		}
		span.SetAttributes(attribute.String("notification.outcome", string(res.Outcome)))
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
	}()

	now := d.clock.Now()
	if reason, ok := d.eligible(q, u, now, true); !ok {
		return res.skip(reason)
	}

	day := clock.Day(now, d.cfg.Location)
	var claimed string
	if !opts.Force {
		sent, err := d.alreadySent(ctx, q, u, now, opts.Policy)
		if err != nil {
			return res.fail(err)
		}
		if sent {
			return res.skip(ReasonAlreadySent)
		}
		key, ok := d.claim(ctx, q.ID, u.ID, now, day)
		if !ok {
			return res.skip(ReasonAlreadySent)
		}
		claimed = key
	}

	sendErr := d.deliver(ctx, q, u)
	if sendErr != nil && claimed != "" {
		d.release(ctx, claimed)
	}

	l := &Log{
		QuizID:  q.ID,
		UserID:  u.ID,
		Channel: d.sender.Channel(),
		SentAt:  d.clock.Now(),
	}
	d.applyOutcome(l, sendErr, day, !opts.Force)

	if err := d.logs.Create(ctx, l); err != nil {
		if errors.Is(err, ErrDuplicate) {
			d.logger.Warn("notification already logged for today", zap.Int64("quiz_id", q.ID), zap.Int64("user_id", u.ID))
			return res.skip(ReasonAlreadySent)
		}
		d.logger.Error("failed to write notification log", zap.Int64("quiz_id", q.ID), zap.Int64("user_id", u.ID), zap.Error(err))
		res.Outcome = outcomeOf(sendErr)
		res.Err = fmt.Errorf("write notification log: %w", err)
		if sendErr != nil {
			res.Err = errors.Join(sendErr, res.Err)
		}
		return res
	}

	res.Log = l
	res.Outcome = outcomeOf(sendErr)
	res.Err = sendErr
	d.logResult(res)
	return res
}

// Retry re-sends a failed notification and updates its log row in place.
// The delivery time window is not checked again; the other eligibility rules are.
func (d *Dispatcher) Retry(ctx context.Context, failed *Log, q *quiz.Quiz, u *user.User) (res Result) {
	if failed == nil || q == nil || u == nil {
		return Result{Outcome: OutcomeFailed, Err: errors.New("log, quiz and user are required")}
	}
	res = Result{QuizID: q.ID, UserID: u.ID}

	ctx, span := tracer.Start(ctx, "notification.Retry")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("notification_log.id", failed.ID),
		attribute.Int("notification_log.retry_count", failed.RetryCount),
	)
	defer func() {
		if r := recover(); r != nil {
			res.Outcome, res.Reason, res.Err = OutcomeFailed, "", fmt.Errorf("retry panicked: %v", r)
			d.logger.Error("retry panicked", zap.Int64("log_id", failed.ID), zap.Any("panic", r))
		}
		span.SetAttributes(attribute.String("notification.outcome", string(res.Outcome)))
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
	}()

	now := d.clock.Now()
	if reason, ok := d.eligible(q, u, now, false); !ok {
		return res.skip(reason)
	}
	sent, err := d.logs.HasSentSince(ctx, q.ID, u.ID, clock.StartOfDay(failed.SentAt, d.cfg.Location))
	if err != nil {
		return res.fail(err)
	}
	if sent {
		return res.skip(ReasonAlreadySent)
	}
	day := clock.Day(now, d.cfg.Location)
	key, ok := d.claim(ctx, q.ID, u.ID, now, day)
	if !ok {
		return res.skip(ReasonAlreadySent)
	}

	sendErr := d.deliver(ctx, q, u)
	if sendErr != nil {
		d.release(ctx, key)
	}

	updated := *failed
	updated.RetryCount = failed.RetryCount + 1
	updated.SentAt = d.clock.Now()
	updated.ErrorMessage = nil
	updated.DedupDay = nil
	d.applyOutcome(&updated, sendErr, day, true)

	if err := d.logs.MarkRetried(ctx, &updated, failed.RetryCount); err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			return res.skip(ReasonAlreadySent)
		case errors.Is(err, ErrRetryConflict):
			return res.skip(ReasonAlreadyRetried)
		}
		d.logger.Error("failed to update notification log", zap.Int64("log_id", failed.ID), zap.Error(err))
		res.Outcome = outcomeOf(sendErr)
		res.Err = fmt.Errorf("update notification log: %w", err)
		if sendErr != nil {
			res.Err = errors.Join(sendErr, res.Err)
		}
		return res
	}

	res.Log = &updated
	res.Outcome = outcomeOf(sendErr)
	res.Err = sendErr
	d.logResult(res)
	return res
}

func (d *Dispatcher) eligible(q *quiz.Quiz, u *user.User, now time.Time, checkWindow bool) (SkipReason, bool) {
	if q.Status == quiz.StatusDone {
		return ReasonQuizDone, false
	}
	if !u.NotificationEnabled {
		return ReasonDisabled, false
	}
	if !u.Linked() {
		return ReasonUnlinked, false
	}
	if !checkWindow {
		return "", true
	}
	within, err := clock.WithinTolerance(now, u.NotificationTime, d.cfg.Tolerance, d.cfg.Location)
	if err != nil {
		d.logger.Warn("user has an invalid notification time", zap.Int64("user_id", u.ID), zap.String("notification_time", u.NotificationTime))
		return ReasonInvalidTime, false
	}
	if !within {
		return ReasonOutsideWindow, false
	}
	return "", true
}

func (d *Dispatcher) alreadySent(ctx context.Context, q *quiz.Quiz, u *user.User, now time.Time, policy Policy) (bool, error) {
	if policy == PolicySingle {
		return d.logs.HasSentInitial(ctx, q.ID, u.ID)
	}
	return d.logs.HasSentSince(ctx, q.ID, u.ID, clock.StartOfDay(now, d.cfg.Location))
}

// claim reserves today's slot for the pair. A claim store outage does not block sending.
func (d *Dispatcher) claim(ctx context.Context, quizID, userID int64, now, day time.Time) (string, bool) {
	key := claimKey(quizID, userID, day)
	ttl := clock.EndOfDay(now, d.cfg.Location).Sub(now) + time.Second
	ok, err := d.claimer.Claim(ctx, key, ttl)
	if err != nil {
		d.logger.Warn("send claim unavailable, relying on the log index", zap.String("key", key), zap.Error(err))
		return "", true
	}
	return key, ok
}

func (d *Dispatcher) release(ctx context.Context, key string) {
	if err := d.claimer.Release(context.WithoutCancel(ctx), key); err != nil {
		d.logger.Warn("failed to release send claim", zap.String("key", key), zap.Error(err))
	}
}

func (d *Dispatcher) deliver(ctx context.Context, q *quiz.Quiz, u *user.User) error {
	tok, err := d.tokens.Issue(q.ID, u.ID)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	msg, err := BuildMessage(d.sender.Channel(), q, d.QuizLink(tok))
	if err != nil {
		return err
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()
	return d.send(sendCtx, u.ChannelAccountID, msg)
}

func (d *Dispatcher) send(ctx context.Context, to string, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sender panicked: %v", r)
		}
	}()
	if err := d.sender.Send(ctx, to, msg); err != nil {
		return fmt.Errorf("send via %s: %w", d.sender.Channel(), err)
	}
	return nil
}

// QuizLink returns the deep link that opens the quiz page with tok.
func (d *Dispatcher) QuizLink(tok string) string {
	u, err := url.Parse(d.cfg.QuizURL)
	if err != nil {
		return d.cfg.QuizURL + "?token=" + url.QueryEscape(tok)
	}
	query := u.Query()
	query.Set("token", tok)
	u.RawQuery = query.Encode()
	return u.String()
}

func (d *Dispatcher) applyOutcome(l *Log, sendErr error, day time.Time, dedup bool) {
	if sendErr != nil {
		msg := truncate(sendErr.Error(), maxErrorMessageLength)
		l.Status = LogStatusFailed
		l.ErrorMessage = &msg
		return
	}
	l.Status = LogStatusSent
	if dedup {
		l.DedupDay = &day
	}
}

func (d *Dispatcher) logResult(res Result) {
	fields := []zap.Field{
		zap.Int64("quiz_id", res.QuizID),
		zap.Int64("user_id", res.UserID),
		zap.String("outcome", string(res.Outcome)),
	}
	if res.Log != nil {
		fields = append(fields, zap.Int64("log_id", res.Log.ID), zap.Int("retry_count", res.Log.RetryCount))
	}
	if res.Err != nil {
		d.logger.Warn("notification failed", append(fields, zap.Error(res.Err))...)
		return
	}
	d.logger.Info("notification sent", fields...)
}

func (r Result) skip(reason SkipReason) Result {
	r.Outcome = OutcomeSkipped
	r.Reason = reason
	return r
}

func (r Result) fail(err error) Result {
	r.Outcome = OutcomeFailed
	r.Err = err
	return r
}

func outcomeOf(sendErr error) Outcome {
	if sendErr != nil {
		return OutcomeFailed
	}
	return OutcomeSent
}
