package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	mock_notification "github.com/at-ishikawa/memoquiz/internal/mocks/notification"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

var jst = time.FixedZone("JST", 9*60*60)

type fixture struct {
	logs    *mock_notification.MockRepository
	sender  *mock_notification.MockSender
	tokens  *mock_notification.MockTokenIssuer
	claimer *mock_notification.MockClaimer
	clock   *clock.Fake
	d       *notification.Dispatcher
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		logs:    mock_notification.NewMockRepository(ctrl),
		sender:  mock_notification.NewMockSender(ctrl),
		tokens:  mock_notification.NewMockTokenIssuer(ctrl),
		claimer: mock_notification.NewMockClaimer(ctrl),
		clock:   clock.NewFake(now),
	}
	f.sender.EXPECT().Channel().Return(notification.ChannelLine).AnyTimes()

	d, err := notification.NewDispatcher(f.logs, f.sender, f.tokens, f.claimer, f.clock, notification.Config{
		Tolerance: 30 * time.Minute,
		Location:  jst,
		QuizURL:   "https://quiz.example.com/quiz",
		MaxErrors: 2,
	}, zap.NewNop())
	require.NoError(t, err)
	f.d = d
	return f
}

// expectSend sets up a first-attempt send that succeeds.
func (f *fixture) expectSend(quizID, userID int64, to string) {
	f.logs.EXPECT().HasSentSince(gomock.Any(), quizID, userID, gomock.Any()).Return(false, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.tokens.EXPECT().Issue(quizID, userID).Return("tok", nil)
	f.sender.EXPECT().Send(gomock.Any(), to, gomock.Any()).Return(nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *notification.Log) error {
		l.ID = quizID * 100
		return nil
	})
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, jst)
}

func todayQuiz(id, userID int64) *quiz.Quiz {
	return &quiz.Quiz{ID: id, UserID: userID, Type: quiz.TypeCloze, Stem: "A ___ is cheap", Answer: "goroutine", Status: quiz.StatusToday}
}

func learner(id int64) *user.User {
	return &user.User{ID: id, ChannelAccountID: "U5", NotificationEnabled: true, NotificationTime: "09:00"}
}

func TestDispatcher_DispatchWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want notification.Outcome
	}{
		{name: "preferred time", now: at(9, 0), want: notification.OutcomeSent},
		{name: "lower bound is inclusive", now: at(8, 30), want: notification.OutcomeSent},
		{name: "upper bound is inclusive", now: at(9, 30), want: notification.OutcomeSent},
		{name: "one minute early", now: at(8, 29), want: notification.OutcomeSkipped},
		{name: "one minute late", now: at(9, 31), want: notification.OutcomeSkipped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.now)
			if tt.want == notification.OutcomeSent {
				f.expectSend(1, 5, "U5")
			}

			res := f.d.Dispatch(context.Background(), todayQuiz(1, 5), learner(5), notification.Options{})
			assert.Equal(t, tt.want, res.Outcome)
			if tt.want == notification.OutcomeSkipped {
				assert.Equal(t, notification.ReasonOutsideWindow, res.Reason)
			}
		})
	}
}

func TestDispatcher_DispatchWindowAcrossMidnight(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 11, 0, 10, 0, 0, jst))
	u := learner(5)
	u.NotificationTime = "23:50"
	f.expectSend(1, 5, "U5")

	res := f.d.Dispatch(context.Background(), todayQuiz(1, 5), u, notification.Options{})
	assert.Equal(t, notification.OutcomeSent, res.Outcome)
}

func TestDispatcher_DispatchEligibility(t *testing.T) {
	tests := []struct {
		name   string
		quiz   func() *quiz.Quiz
		user   func() *user.User
		reason notification.SkipReason
	}{
		{
			name: "done quiz",
			quiz: func() *quiz.Quiz {
				q := todayQuiz(1, 5)
				q.Status = quiz.StatusDone
				return q
			},
			user:   func() *user.User { return learner(5) },
			reason: notification.ReasonQuizDone,
		},
		{
			name: "notifications disabled",
			quiz: func() *quiz.Quiz { return todayQuiz(1, 5) },
			user: func() *user.User {
				u := learner(5)
				u.NotificationEnabled = false
				return u
			},
			reason: notification.ReasonDisabled,
		},
		{
			name: "no channel account",
			quiz: func() *quiz.Quiz { return todayQuiz(1, 5) },
			user: func() *user.User {
				u := learner(5)
				u.ChannelAccountID = ""
				return u
			},
			reason: notification.ReasonUnlinked,
		},
		{
			name: "unparseable notification time",
			quiz: func() *quiz.Quiz { return todayQuiz(1, 5) },
			user: func() *user.User {
				u := learner(5)
				u.NotificationTime = "9am"
				return u
			},
			reason: notification.ReasonInvalidTime,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, at(9, 0))

			res := f.d.Dispatch(context.Background(), tt.quiz(), tt.user(), notification.Options{Force: true})
			assert.Equal(t, notification.OutcomeSkipped, res.Outcome)
			assert.Equal(t, tt.reason, res.Reason)
			assert.Nil(t, res.Log)
		})
	}
}

func TestDispatcher_DispatchSent(t *testing.T) {
	now := at(9, 5)
	f := newFixture(t, now)

	f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), at(0, 0)).Return(false, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), "1:5:2026-03-10", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) (bool, error) {
			assert.Greater(t, ttl, 14*time.Hour)
			assert.LessOrEqual(t, ttl, 15*time.Hour)
			return true, nil
		})
	f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
	f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, msg notification.Message) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			line, ok := msg.(notification.LineMessage)
			require.True(t, ok)
			assert.Equal(t, "https://quiz.example.com/quiz?token=tok", line.URL)
			assert.Equal(t, "今日のクイズ", line.Title)
			return nil
		})
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *notification.Log) error {
		assert.Equal(t, notification.LogStatusSent, l.Status)
		assert.Equal(t, notification.ChannelLine, l.Channel)
		assert.Equal(t, 0, l.RetryCount)
		assert.Nil(t, l.ErrorMessage)
		require.NotNil(t, l.DedupDay)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *l.DedupDay)
		assert.Equal(t, now, l.SentAt)
		l.ID = 7
		return nil
	})

	res := f.d.Dispatch(context.Background(), todayQuiz(1, 5), learner(5), notification.Options{})
	require.NoError(t, res.Err)
	assert.Equal(t, notification.OutcomeSent, res.Outcome)
	assert.Equal(t, int64(7), res.Log.ID)
}

func TestDispatcher_DispatchTwiceSendsOnce(t *testing.T) {
	f := newFixture(t, at(9, 0))
	gomock.InOrder(
		f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil),
		f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(true, nil),
	)
	f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
	f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil).Times(1)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	first := f.d.Dispatch(context.Background(), todayQuiz(1, 5), learner(5), notification.Options{})
	f.clock.Advance(10 * time.Minute)
	second := f.d.Dispatch(context.Background(), todayQuiz(1, 5), learner(5), notification.Options{})

	assert.Equal(t, notification.OutcomeSent, first.Outcome)
	assert.Equal(t, notification.OutcomeSkipped, second.Outcome)
	assert.Equal(t, notification.ReasonAlreadySent, second.Reason)
}

func TestDispatcher_DispatchDedup(t *testing.T) {
	tests := []struct {
		name       string
		opts       notification.Options
		setup      func(f *fixture)
		wantOut    notification.Outcome
		wantReason notification.SkipReason
		wantErr    bool
	}{
		{
			name: "sent earlier today",
			setup: func(f *fixture) {
				f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(true, nil)
			},
			wantOut:    notification.OutcomeSkipped,
			wantReason: notification.ReasonAlreadySent,
		},
		{
			name: "single policy checks the first attempt",
			opts: notification.Options{Policy: notification.PolicySingle},
			setup: func(f *fixture) {
				f.logs.EXPECT().HasSentInitial(gomock.Any(), int64(1), int64(5)).Return(true, nil)
			},
			wantOut:    notification.OutcomeSkipped,
			wantReason: notification.ReasonAlreadySent,
		},
		{
			name: "claim held by another dispatcher",
			setup: func(f *fixture) {
				f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
				f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantOut:    notification.OutcomeSkipped,
			wantReason: notification.ReasonAlreadySent,
		},
		{
			name: "claim store outage still sends",
			setup: func(f *fixture) {
				f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
				f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("dial tcp: connection refused"))
				f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
				f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil)
				f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantOut: notification.OutcomeSent,
		},
		{
			name: "unique index rejects a concurrent duplicate",
			setup: func(f *fixture) {
				f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
				f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
				f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil)
				f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(notification.ErrDuplicate)
			},
			wantOut:    notification.OutcomeSkipped,
			wantReason: notification.ReasonAlreadySent,
		},
		{
			name: "dedup lookup failure",
			setup: func(f *fixture) {
				f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, errors.New("too many connections"))
			},
			wantOut: notification.OutcomeFailed,
			wantErr: true,
		},
		{
			name: "force bypasses the already-sent checks",
			opts: notification.Options{Force: true},
			setup: func(f *fixture) {
				f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
				f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil)
				f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *notification.Log) error {
					assert.Equal(t, notification.LogStatusSent, l.Status)
					assert.Nil(t, l.DedupDay)
					return nil
				})
			},
			wantOut: notification.OutcomeSent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, at(9, 0))
			tt.setup(f)

			res := f.d.Dispatch(context.Background(), todayQuiz(1, 5), learner(5), tt.opts)
			assert.Equal(t, tt.wantOut, res.Outcome)
			assert.Equal(t, tt.wantReason, res.Reason)
			if tt.wantErr {
				assert.Error(t, res.Err)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestDispatcher_DispatchFailures(t *testing.T) {
	tests := []struct {
		name    string
		send    func(ctx context.Context, to string, msg notification.Message) error
		wantMsg string
	}{
		{
			name: "channel error",
			send: func(context.Context, string, notification.Message) error {
				return errors.New("line: 429 too many requests")
			},
			wantMsg: "429 too many requests",
		},
		{
			name: "channel panic",
			send: func(context.Context, string, notification.Message) error {
				panic("nil client")
			},
			wantMsg: "sender panicked: nil client",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, at(9, 0))
			f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
			f.claimer.EXPECT().Claim(gomock.Any(), "1:5:2026-03-10", gomock.Any()).Return(true, nil)
			f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
			f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).DoAndReturn(tt.send)
			f.claimer.EXPECT().Release(gomock.Any(), "1:5:2026-03-10").Return(nil)
			f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *notification.Log) error {
				assert.Equal(t, notification.LogStatusFailed, l.Status)
				require.NotNil(t, l.ErrorMessage)
				assert.Contains(t, *l.ErrorMessage, tt.wantMsg)
				assert.Nil(t, l.DedupDay)
				return nil
			})

			res := f.d.Dispatch(context.Background(), todayQuiz(1, 5), learner(5), notification.Options{})
			assert.Equal(t, notification.OutcomeFailed, res.Outcome)
			assert.ErrorContains(t, res.Err, tt.wantMsg)
			require.NotNil(t, res.Log)
		})
	}
}

func TestDispatcher_DispatchLogWriteFailure(t *testing.T) {
	f := newFixture(t, at(9, 0))
	f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
	f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("read-only replica"))

	res := f.d.Dispatch(context.Background(), todayQuiz(1, 5), learner(5), notification.Options{})
	assert.Equal(t, notification.OutcomeSent, res.Outcome)
	assert.ErrorContains(t, res.Err, "write notification log")
}

func TestDispatcher_Retry(t *testing.T) {
	failedAt := at(9, 0)
	failedMsg := "timeout"
	failedLog := func(retryCount int) *notification.Log {
		return &notification.Log{ID: 70, QuizID: 1, UserID: 5, Channel: notification.ChannelLine, Status: notification.LogStatusFailed, RetryCount: retryCount, ErrorMessage: &failedMsg, SentAt: failedAt}
	}

	t.Run("resends outside the window and updates the row", func(t *testing.T) {
		now := at(11, 0)
		f := newFixture(t, now)
		f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), at(0, 0)).Return(false, nil)
		f.claimer.EXPECT().Claim(gomock.Any(), "1:5:2026-03-10", gomock.Any()).Return(true, nil)
		f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
		f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil)
		f.logs.EXPECT().MarkRetried(gomock.Any(), gomock.Any(), 1).DoAndReturn(func(_ context.Context, l *notification.Log, _ int) error {
			assert.Equal(t, int64(70), l.ID)
			assert.Equal(t, 2, l.RetryCount)
			assert.Equal(t, notification.LogStatusSent, l.Status)
			assert.Nil(t, l.ErrorMessage)
			assert.NotNil(t, l.DedupDay)
			assert.Equal(t, now, l.SentAt)
			return nil
		})

		original := failedLog(1)
		res := f.d.Retry(context.Background(), original, todayQuiz(1, 5), learner(5))
		require.NoError(t, res.Err)
		assert.Equal(t, notification.OutcomeSent, res.Outcome)
		assert.Equal(t, 2, res.Log.RetryCount)
		assert.Equal(t, 1, original.RetryCount)
	})

	t.Run("failed retry keeps the row failed", func(t *testing.T) {
		f := newFixture(t, at(11, 0))
		f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
		f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
		f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(errors.New("502 bad gateway"))
		f.claimer.EXPECT().Release(gomock.Any(), gomock.Any()).Return(nil)
		f.logs.EXPECT().MarkRetried(gomock.Any(), gomock.Any(), 0).DoAndReturn(func(_ context.Context, l *notification.Log, _ int) error {
			assert.Equal(t, 1, l.RetryCount)
			assert.Equal(t, notification.LogStatusFailed, l.Status)
			assert.Contains(t, *l.ErrorMessage, "502 bad gateway")
			return nil
		})

		res := f.d.Retry(context.Background(), failedLog(0), todayQuiz(1, 5), learner(5))
		assert.Equal(t, notification.OutcomeFailed, res.Outcome)
	})

	t.Run("already delivered by a later sweep", func(t *testing.T) {
		f := newFixture(t, at(11, 0))
		f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(true, nil)

		res := f.d.Retry(context.Background(), failedLog(0), todayQuiz(1, 5), learner(5))
		assert.Equal(t, notification.ReasonAlreadySent, res.Reason)
	})

	t.Run("concurrent retry wins", func(t *testing.T) {
		f := newFixture(t, at(11, 0))
		f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
		f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
		f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil)
		f.logs.EXPECT().MarkRetried(gomock.Any(), gomock.Any(), 0).Return(notification.ErrRetryConflict)

		res := f.d.Retry(context.Background(), failedLog(0), todayQuiz(1, 5), learner(5))
		assert.Equal(t, notification.OutcomeSkipped, res.Outcome)
		assert.Equal(t, notification.ReasonAlreadyRetried, res.Reason)
	})

	t.Run("quiz finished since the failure", func(t *testing.T) {
		f := newFixture(t, at(11, 0))
		q := todayQuiz(1, 5)
		q.Status = quiz.StatusDone

		res := f.d.Retry(context.Background(), failedLog(0), q, learner(5))
		assert.Equal(t, notification.ReasonQuizDone, res.Reason)
	})
}

func TestDispatcher_QuizLink(t *testing.T) {
	f := newFixture(t, at(9, 0))
	assert.Equal(t, "https://quiz.example.com/quiz?token=a.b-c_d", f.d.QuizLink("a.b-c_d"))
}

func TestNewDispatcher_InvalidURL(t *testing.T) {
	_, err := notification.NewDispatcher(nil, nil, nil, nil, clock.Real(), notification.Config{QuizURL: "not a url"}, zap.NewNop())
	assert.Error(t, err)
}
