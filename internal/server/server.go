// Package server exposes the operator, learner and LINE webhook HTTP surfaces.
package server

import (
	"context"
	"html/template"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/attempt"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/scheduler"
	"github.com/at-ishikawa/memoquiz/internal/token"
)

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_server.go -package=mock_server

type Scheduler interface {
	Sweep(ctx context.Context, opts scheduler.SweepOptions) (notification.BatchResult, error)
	Notify(ctx context.Context, quizID, userID int64, force bool) (notification.Result, error)
	RetryFailed(ctx context.Context) (notification.BatchResult, error)
}

type Tokens interface {
	Verify(tokenString string) (token.Subject, error)
	Authorize(tokenString string, quizID int64) (token.Subject, error)
}

type Quizzes interface {
	GetForUser(ctx context.Context, id, userID int64) (*quiz.Quiz, error)
}

type Answers interface {
	Record(ctx context.Context, quizID, userID int64, rawAnswer string) (*attempt.Result, error)
}

type Webhook interface {
	Handle(ctx context.Context, req *http.Request) error
}

type Config struct {
	APIKey string
	// ServiceName enables otelgin tracing when set.
	ServiceName string
	// Sentry installs the sentry-go gin middleware. sentry.Init must have been called.
	Sentry bool
}

type Server struct {
	page      *template.Template
	scheduler Scheduler
	tokens    Tokens
	quizzes   Quizzes
	answers   Answers
	webhook   Webhook
	logger    *zap.Logger
}

func New(sched Scheduler, tokens Tokens, quizzes Quizzes, answers Answers, webhook Webhook, logger *zap.Logger) *Server {
	return &Server{
		scheduler: sched,
		tokens:    tokens,
		quizzes:   quizzes,
		answers:   answers,
		webhook:   webhook,
		logger:    logger.Named("server"),
	}
}

// WithQuizPage makes GET /quiz render page for browsers. It must be registered as assets.QuizPageName.
func (s *Server) WithQuizPage(page *template.Template) *Server {
	s.page = page
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router(cfg Config) *gin.Engine {
	r := gin.New()
	if s.page != nil {
		r.SetHTMLTemplate(s.page)
	}
	r.Use(RequestID(), AccessLog(s.logger), Recovery(s.logger))
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if cfg.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", s.Health)

	api := r.Group("/api", APIKey(cfg.APIKey))
	{
		api.POST("/notifications/notify", s.Notify)
		api.POST("/notifications/sweep", s.Sweep)
		api.POST("/notifications/retry", s.Retry)
		api.POST("/tokens/verify", s.VerifyToken)
	}

	r.GET("/quiz", s.GetQuiz)
	r.POST("/quiz/answer", s.Answer)

	if s.webhook != nil {
		r.POST("/line/webhook", s.LineWebhook)
	}
	return r
}

func (s *Server) Health(c *gin.Context) {
	Success(c, gin.H{"status": "ok"})
}
