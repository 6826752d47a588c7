package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/assets"
	"github.com/at-ishikawa/memoquiz/internal/attempt"
	"github.com/at-ishikawa/memoquiz/internal/channel/line"
	"github.com/at-ishikawa/memoquiz/internal/clock"
	mock_server "github.com/at-ishikawa/memoquiz/internal/mocks/server"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/scheduler"
	"github.com/at-ishikawa/memoquiz/internal/server"
	"github.com/at-ishikawa/memoquiz/internal/token"
)

const testAPIKey = "operator-key"

var testNow = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	scheduler *mock_server.MockScheduler
	quizzes   *mock_server.MockQuizzes
	answers   *mock_server.MockAnswers
	webhook   *mock_server.MockWebhook
	tokens    *token.Service
	clock     *clock.Fake
	router    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	clk := clock.NewFake(testNow)
	tokens, err := token.NewService("server-test-secret", token.WithClock(clk))
	require.NoError(t, err)

	f := &fixture{
		scheduler: mock_server.NewMockScheduler(ctrl),
		quizzes:   mock_server.NewMockQuizzes(ctrl),
		answers:   mock_server.NewMockAnswers(ctrl),
		webhook:   mock_server.NewMockWebhook(ctrl),
		tokens:    tokens,
		clock:     clk,
	}
	srv := server.New(f.scheduler, tokens, f.quizzes, f.answers, f.webhook, zap.NewNop())
	f.router = srv.Router(server.Config{APIKey: testAPIKey})
	return f
}

func (f *fixture) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) operator(method, path string, body any) *httptest.ResponseRecorder {
	return f.do(method, path, body, map[string]string{server.HeaderAPIKey: testAPIKey})
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, rec.Code, env.Code)
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestServer_APIKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "missing key", headers: nil},
		{name: "wrong key", headers: map[string]string{server.HeaderAPIKey: "nope"}},
		{name: "key with extra suffix", headers: map[string]string{server.HeaderAPIKey: testAPIKey + "x"}},
	}
	paths := []string{
		"/api/notifications/notify",
		"/api/notifications/sweep",
		"/api/notifications/retry",
		"/api/tokens/verify",
	}

	for _, tt := range tests {
		for _, path := range paths {
			t.Run(tt.name+" "+path, func(t *testing.T) {
				f := newFixture(t)
				// No scheduler expectations: nothing may run.
				rec := f.do(http.MethodPost, path, map[string]any{"quiz_id": 1, "user_id": 1, "status": "today"}, tt.headers)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				env := decode(t, rec, nil)
				assert.Equal(t, "invalid api key", env.Message)
			})
		}
	}

	t.Run("empty configured key rejects everything", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		srv := server.New(nil, nil, nil, nil, nil, zap.NewNop())
		router := srv.Router(server.Config{})
		req := httptest.NewRequest(http.MethodPost, "/api/notifications/retry", nil)
		req.Header.Set(server.HeaderAPIKey, "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestServer_Notify(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(f *fixture)
		wantStatus int
		want       server.NotifyResponse
	}{
		{
			name: "sent",
			body: map[string]any{"quiz_id": 5, "user_id": 1},
			setup: func(f *fixture) {
				f.scheduler.EXPECT().Notify(gomock.Any(), int64(5), int64(1), false).Return(notification.Result{
					QuizID: 5, UserID: 1, Outcome: notification.OutcomeSent, Log: &notification.Log{ID: 42},
				}, nil)
			},
			wantStatus: http.StatusOK,
			want:       server.NotifyResponse{QuizID: 5, UserID: 1, Outcome: notification.OutcomeSent, LogID: 42},
		},
		{
			name: "forced and skipped",
			body: map[string]any{"quiz_id": 5, "user_id": 1, "force": true},
			setup: func(f *fixture) {
				f.scheduler.EXPECT().Notify(gomock.Any(), int64(5), int64(1), true).Return(notification.Result{
					QuizID: 5, UserID: 1, Outcome: notification.OutcomeSkipped, Reason: notification.ReasonDisabled,
				}, nil)
			},
			wantStatus: http.StatusOK,
			want:       server.NotifyResponse{QuizID: 5, UserID: 1, Outcome: notification.OutcomeSkipped, Reason: notification.ReasonDisabled},
		},
		{
			name: "channel failure is still a structured 200",
			body: map[string]any{"quiz_id": 5, "user_id": 1},
			setup: func(f *fixture) {
				f.scheduler.EXPECT().Notify(gomock.Any(), int64(5), int64(1), false).Return(notification.Result{
					QuizID: 5, UserID: 1, Outcome: notification.OutcomeFailed, Err: errors.New("line: 500"),
				}, nil)
			},
			wantStatus: http.StatusOK,
			want:       server.NotifyResponse{QuizID: 5, UserID: 1, Outcome: notification.OutcomeFailed, Error: "line: 500"},
		},
		{
			name:       "missing ids",
			body:       map[string]any{"quiz_id": 5},
			setup:      func(f *fixture) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown quiz",
			body: map[string]any{"quiz_id": 9, "user_id": 1},
			setup: func(f *fixture) {
				f.scheduler.EXPECT().Notify(gomock.Any(), int64(9), int64(1), false).
					Return(notification.Result{}, fmt.Errorf("quiz 9: %w", quiz.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			rec := f.operator(http.MethodPost, "/api/notifications/notify", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				decode(t, rec, nil)
				return
			}
			var got server.NotifyResponse
			decode(t, rec, &got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServer_Sweep(t *testing.T) {
	t.Run("passes options and returns the batch summary", func(t *testing.T) {
		f := newFixture(t)
		f.scheduler.EXPECT().Sweep(gomock.Any(), scheduler.SweepOptions{
			Status:         quiz.StatusDay1,
			Window:         60 * time.Minute,
			IncludeOverdue: true,
		}).Return(notification.BatchResult{
			Total: 3, Successful: 1, Failed: 1, Skipped: 1,
			SkipReasons: map[notification.SkipReason]int{notification.ReasonAlreadySent: 1},
			Errors:      []string{"quiz 2 user 7: failed: boom"},
		}, nil)

		rec := f.operator(http.MethodPost, "/api/notifications/sweep", map[string]any{
			"status": "day1", "window_minutes": 60, "include_overdue": true,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var got notification.BatchResult
		decode(t, rec, &got)
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 1, got.Failed)
		assert.Equal(t, []string{"quiz 2 user 7: failed: boom"}, got.Errors)
		assert.Equal(t, 1, got.SkipReasons[notification.ReasonAlreadySent])
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)
		rec := f.operator(http.MethodPost, "/api/notifications/sweep", map[string]any{"status": "day3"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("done is rejected by the scheduler", func(t *testing.T) {
		f := newFixture(t)
		f.scheduler.EXPECT().Sweep(gomock.Any(), gomock.Any()).
			Return(notification.BatchResult{}, fmt.Errorf("%w: %q", scheduler.ErrInvalidStatus, "done"))

		rec := f.operator(http.MethodPost, "/api/notifications/sweep", map[string]any{"status": "done"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("listing failure", func(t *testing.T) {
		f := newFixture(t)
		f.scheduler.EXPECT().Sweep(gomock.Any(), gomock.Any()).
			Return(notification.BatchResult{}, errors.New("db down"))

		rec := f.operator(http.MethodPost, "/api/notifications/sweep", map[string]any{"status": "today"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decode(t, rec, nil)
		assert.NotContains(t, env.Message, "db down")
	})
}

func TestServer_Retry(t *testing.T) {
	f := newFixture(t)
	f.scheduler.EXPECT().RetryFailed(gomock.Any()).Return(notification.BatchResult{Total: 2, Successful: 2, Errors: []string{}}, nil)

	rec := f.operator(http.MethodPost, "/api/notifications/retry", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got notification.BatchResult
	decode(t, rec, &got)
	assert.Equal(t, 2, got.Successful)
}

func TestServer_VerifyToken(t *testing.T) {
	f := newFixture(t)
	valid, err := f.tokens.Issue(5, 1)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		rec := f.operator(http.MethodPost, "/api/tokens/verify", map[string]string{"token": valid})
		require.Equal(t, http.StatusOK, rec.Code)
		var got server.VerifyTokenResponse
		decode(t, rec, &got)
		assert.True(t, got.Valid)
		assert.Equal(t, int64(5), got.QuizID)
		assert.Equal(t, int64(1), got.UserID)
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, got.ExpiresAt.Equal(testNow.Add(24*time.Hour)))
	})

	t.Run("malformed", func(t *testing.T) {
		rec := f.operator(http.MethodPost, "/api/tokens/verify", map[string]string{"token": "abc"})
		require.Equal(t, http.StatusOK, rec.Code)
		var got server.VerifyTokenResponse
		decode(t, rec, &got)
		assert.False(t, got.Valid)
		assert.Equal(t, "malformed", got.Reason)
	})

	t.Run("expired", func(t *testing.T) {
		f.clock.Set(testNow.Add(25 * time.Hour))
		defer f.clock.Set(testNow)

		rec := f.operator(http.MethodPost, "/api/tokens/verify", map[string]string{"token": valid})
		var got server.VerifyTokenResponse
		decode(t, rec, &got)
		assert.False(t, got.Valid)
		assert.Equal(t, "expired", got.Reason)
	})
}

func TestServer_GetQuiz(t *testing.T) {
	q := &quiz.Quiz{
		ID: 5, UserID: 1, Type: quiz.TypeCloze, Stem: "Goroutines communicate over ___.",
		Answer: "channels", Status: quiz.StatusToday, ScheduledAt: testNow,
	}

	t.Run("returns the question without the answer", func(t *testing.T) {
		f := newFixture(t)
		tok, err := f.tokens.Issue(5, 1)
		require.NoError(t, err)
		f.quizzes.EXPECT().GetForUser(gomock.Any(), int64(5), int64(1)).Return(q, nil)

		rec := f.do(http.MethodGet, "/quiz?token="+tok, nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "channels")
		var got server.QuizResponse
		decode(t, rec, &got)
		assert.Equal(t, q.Stem, got.Stem)
		assert.Equal(t, quiz.StatusToday, got.Status)
	})

	t.Run("every token problem looks the same", func(t *testing.T) {
		f := newFixture(t)
		expired, err := f.tokens.Issue(5, 1)
		require.NoError(t, err)
		f.clock.Advance(24*time.Hour + time.Second)

		for _, tok := range []string{"", "garbage", expired, expired[:len(expired)-2] + "xx"} {
			rec := f.do(http.MethodGet, "/quiz?token="+tok, nil, nil)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			env := decode(t, rec, nil)
			assert.Equal(t, server.MsgQuizForbidden, env.Message)
		}
	})

	t.Run("deleted quiz", func(t *testing.T) {
		f := newFixture(t)
		tok, err := f.tokens.Issue(5, 1)
		require.NoError(t, err)
		f.quizzes.EXPECT().GetForUser(gomock.Any(), int64(5), int64(1)).Return(nil, quiz.ErrNotFound)

		rec := f.do(http.MethodGet, "/quiz?token="+tok, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_GetQuizPage(t *testing.T) {
	page, err := assets.ParseQuizPageTemplate("", zap.NewNop())
	require.NoError(t, err)
	newPageFixture := func(t *testing.T) *fixture {
		f := newFixture(t)
		srv := server.New(f.scheduler, f.tokens, f.quizzes, f.answers, f.webhook, zap.NewNop()).WithQuizPage(page)
		f.router = srv.Router(server.Config{APIKey: testAPIKey})
		return f
	}
	browser := map[string]string{"Accept": "text/html,application/xhtml+xml"}

	t.Run("renders the question for browsers", func(t *testing.T) {
		f := newPageFixture(t)
		tok, err := f.tokens.Issue(5, 1)
		require.NoError(t, err)
		f.quizzes.EXPECT().GetForUser(gomock.Any(), int64(5), int64(1)).Return(&quiz.Quiz{
			ID: 5, UserID: 1, Type: quiz.TypeTrueFalse, Stem: "Channels are safe for concurrent use.",
			Answer: quiz.AnswerTrue, Choices: []string{quiz.AnswerTrue, quiz.AnswerFalse}, Status: quiz.StatusDay1,
		}, nil)

		rec := f.do(http.MethodGet, "/quiz?token="+tok, nil, browser)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		body := rec.Body.String()
		assert.Contains(t, body, "Channels are safe for concurrent use.")
		assert.Contains(t, body, notification.StageTitle(quiz.StatusDay1))
		assert.Contains(t, body, `value="`+quiz.AnswerFalse+`"`)
	})

	t.Run("token problems render the error page", func(t *testing.T) {
		f := newPageFixture(t)

		rec := f.do(http.MethodGet, "/quiz?token=garbage", nil, browser)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), server.MsgQuizForbidden)
	})

	t.Run("json clients still get json", func(t *testing.T) {
		f := newPageFixture(t)

		rec := f.do(http.MethodGet, "/quiz?token=garbage", nil, map[string]string{"Accept": "application/json"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		env := decode(t, rec, nil)
		assert.Equal(t, server.MsgQuizForbidden, env.Message)
	})
}

func TestServer_Answer(t *testing.T) {
	next := testNow.Add(24 * time.Hour)

	tests := []struct {
		name       string
		answer     string
		quizID     int64
		badToken   bool
		setup      func(f *fixture)
		wantStatus int
	}{
		{
			name:   "correct",
			answer: "channels",
			setup: func(f *fixture) {
				f.answers.EXPECT().Record(gomock.Any(), int64(5), int64(1), "channels").Return(&attempt.Result{
					Attempt: &attempt.Attempt{ID: 3}, IsCorrect: true, CanonicalAnswer: "channels",
					Status: quiz.StatusDay1, ScheduledAt: next,
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "token matches the posted quiz",
			answer: "channels",
			quizID: 5,
			setup: func(f *fixture) {
				f.answers.EXPECT().Record(gomock.Any(), int64(5), int64(1), "channels").Return(&attempt.Result{
					Attempt: &attempt.Attempt{ID: 3}, IsCorrect: true, CanonicalAnswer: "channels",
					Status: quiz.StatusDay1, ScheduledAt: next,
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "token issued for another quiz",
			answer:     "channels",
			quizID:     6,
			setup:      func(f *fixture) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "quiz already done",
			answer: "x",
			setup: func(f *fixture) {
				f.answers.EXPECT().Record(gomock.Any(), int64(5), int64(1), "x").Return(nil, quiz.ErrStatusConflict)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid token",
			answer:     "channels",
			badToken:   true,
			setup:      func(f *fixture) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			tok, err := f.tokens.Issue(5, 1)
			require.NoError(t, err)
			if tt.badToken {
				tok += "x"
			}

			body := map[string]any{"token": tok, "answer": tt.answer}
			if tt.quizID != 0 {
				body["quiz_id"] = tt.quizID
			}
			rec := f.do(http.MethodPost, "/quiz/answer", body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got server.AnswerResponse
			decode(t, rec, &got)
			assert.Equal(t, server.AnswerResponse{
				AttemptID: 3, IsCorrect: true, CorrectAnswer: "channels",
				Status: quiz.StatusDay1, NextScheduledAt: next,
			}, got)
		})
	}
}

func TestServer_LineWebhook(t *testing.T) {
	t.Run("acknowledged", func(t *testing.T) {
		f := newFixture(t)
		f.webhook.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil)
		rec := f.do(http.MethodPost, "/line/webhook", map[string]any{"events": []any{}}, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newFixture(t)
		f.webhook.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: signature mismatch", line.ErrInvalidRequest))
		rec := f.do(http.MethodPost, "/line/webhook", map[string]any{"events": []any{}}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(server.HeaderRequestID))
}

func TestServer_RequestIDPropagates(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthz", nil, map[string]string{server.HeaderRequestID: "req-1"})
	assert.Equal(t, "req-1", rec.Header().Get(server.HeaderRequestID))
}
