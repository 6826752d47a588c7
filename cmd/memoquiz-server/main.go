package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/memoquiz/internal/assets"
	"github.com/at-ishikawa/memoquiz/internal/attempt"
	"github.com/at-ishikawa/memoquiz/internal/bootstrap"
	"github.com/at-ishikawa/memoquiz/internal/channel/line"
	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/config"
	"github.com/at-ishikawa/memoquiz/internal/database"
	"github.com/at-ishikawa/memoquiz/internal/logger"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/scheduler"
	"github.com/at-ishikawa/memoquiz/internal/server"
	"github.com/at-ishikawa/memoquiz/internal/telemetry"
	"github.com/at-ishikawa/memoquiz/internal/token"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "memoquiz-server",
		Short:         "Memo quiz notification HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if err := cfg.RequireServerSecrets(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger.New() > %w", err)
	}
	app := bootstrap.New(log)
	app.AddShutdownHook("logger", func(context.Context) error {
		_ = log.Sync()
		return nil
	})

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("telemetry.Setup() > %w", err)
	}
	app.AddShutdownHook("telemetry", tel.Shutdown)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook("database", func(context.Context) error { return db.Close() })

	var claimer notification.Claimer = notification.NopClaimer{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.AddShutdownHook("redis", func(context.Context) error { return rdb.Close() })
		claimer = notification.NewRedisClaimer(rdb)
	} else {
		log.Warn("redis is not configured; relying on the notification log unique index for dedup")
	}

	handler, err := newHandler(cfg, db, claimer, tel, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      h2c.NewHandler(handler, &http2.Server{}),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	app.AddShutdownHook("http", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// newHandler wires the services behind the HTTP routes.
func newHandler(cfg *config.Config, db *sqlx.DB, claimer notification.Claimer, tel *telemetry.Telemetry, log *zap.Logger) (http.Handler, error) {
	clk := clock.Real()
	loc := cfg.Notification.Location()

	tokens, err := token.NewService(cfg.Token.Secret, token.WithTTL(cfg.Token.TTL()))
	if err != nil {
		return nil, fmt.Errorf("token.NewService() > %w", err)
	}

	lineClient, err := line.NewClient(cfg.Line.ChannelSecret, cfg.Line.ChannelToken)
	if err != nil {
		return nil, fmt.Errorf("line.NewClient() > %w", err)
	}

	quizURL, err := url.JoinPath(cfg.Server.PublicBaseURL, cfg.Notification.QuizPath)
	if err != nil {
		return nil, fmt.Errorf("invalid public base url: %w", err)
	}

	quizzes := quiz.NewLifecycle(quiz.NewDBRepository(db), clk, log)
	users := user.NewService(user.NewDBRepository(db), log)
	logs := notification.NewDBRepository(db)
	recorder := attempt.NewRecorder(quizzes, attempt.NewDBRepository(db), clk, log)

	dispatcher, err := notification.NewDispatcher(logs, line.NewSender(lineClient, cfg.Line.SenderName), tokens, claimer, clk, notification.Config{
		Tolerance:     cfg.Notification.Tolerance(),
		Location:      loc,
		SendTimeout:   cfg.Notification.SendTimeout(),
		QuizURL:       quizURL,
		MaxErrors:     cfg.Notification.MaxErrors,
		RatePerSecond: cfg.Notification.RatePerSecond,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("notification.NewDispatcher() > %w", err)
	}

	sched := scheduler.New(quizzes, users, dispatcher, logs, clk, scheduler.Config{
		MaxRetries:    cfg.Notification.MaxRetries,
		RetryLookback: cfg.Notification.RetryLookback(),
	}, log)

	webhook := line.NewWebhook(lineClient, users, quizzes, tokens, dispatcher, clk, loc, log)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	page, err := assets.ParseQuizPageTemplate(cfg.Server.QuizTemplate, log)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseQuizPageTemplate() > %w", err)
	}
	srv := server.New(sched, tokens, quizzes, recorder, webhook, log).WithQuizPage(page)
	return srv.Router(server.Config{
		APIKey:      cfg.Server.APIKey,
		ServiceName: serviceName(cfg, tel),
		Sentry:      tel.SentryEnabled(),
	}), nil
}

func serviceName(cfg *config.Config, tel *telemetry.Telemetry) string {
	if !tel.TracingEnabled() {
		return ""
	}
	return cfg.Telemetry.ServiceName
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
