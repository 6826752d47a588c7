package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/memoquiz/internal/quiz"

	"github.com/at-ishikawa/memoquiz/internal/scheduler"
	"github.com/at-ishikawa/memoquiz/internal/server"
	"github.com/at-ishikawa/memoquiz/internal/trigger"
)

func newTriggerClient() (*trigger.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loadConfig() > %w", err)
	}
	if cfg.Server.APIKey == "" {
		return nil, fmt.Errorf("MEMOQUIZ_API_KEY environment variable is required")
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return trigger.NewClient(cfg.Client.ServerURL, cfg.Server.APIKey, cfg.Client.Timeout(), cfg.Client.RetryAttempts, log), nil
}

// StageFlag accepts the quiz stages a sweep can notify.
type StageFlag quiz.Status

// Set implements pflag.Value.
func (s *StageFlag) Set(v string) error {
	st, err := quiz.ParseStatus(v)
	if err != nil {
		return err
	}
	switch st {
	case quiz.StatusToday, quiz.StatusDay1, quiz.StatusDay7:
		*s = StageFlag(st)
		return nil
	}
	return fmt.Errorf("invalid value %q, valid values are %q, %q or %q", v, quiz.StatusToday, quiz.StatusDay1, quiz.StatusDay7)
}

// String implements pflag.Value.
func (s *StageFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *StageFlag) Type() string {
	return "stage"
}

var _ pflag.Value = (*StageFlag)(nil)

func newSweepCommand() *cobra.Command {
	var (
		status         = StageFlag(quiz.StatusToday)
		windowMinutes  int
		includeOverdue bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Notify every quiz of a stage scheduled around now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newTriggerClient()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			result, err := client.Sweep(cmd.Context(), server.SweepRequest{
				Status:         status.String(),
				WindowMinutes:  windowMinutes,
				IncludeOverdue: includeOverdue,
			})
			if err != nil {
				return err
			}
			printBatchResult(cmd.OutOrStdout(), "Sweep "+status.String(), result)
			return nil
		},
	}

	cmd.Flags().Var(&status, "status", "quiz stage to notify: today, day1 or day7")
	cmd.Flags().IntVar(&windowMinutes, "window", int(scheduler.DefaultSweepWindow.Minutes()), "half-width in minutes of the scheduled_at range around now")
	cmd.Flags().BoolVar(&includeOverdue, "include-overdue", false, "also notify unanswered quizzes scheduled before the window")
	return cmd
}

func newNotifyCommand() *cobra.Command {
	var (
		quizID int64
		userID int64
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send the notification for one quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newTriggerClient()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			result, err := client.Notify(cmd.Context(), server.NotifyRequest{QuizID: quizID, UserID: userID, Force: force})
			if err != nil {
				return err
			}
			printNotifyResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&quizID, "quiz", 0, "quiz id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().BoolVar(&force, "force", false, "send even if a notification was already sent today")
	_ = cmd.MarkFlagRequired("quiz")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newRetryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Resend recent failed notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newTriggerClient()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			result, err := client.Retry(cmd.Context())
			if err != nil {
				return err
			}
			printBatchResult(cmd.OutOrStdout(), "Retry", result)
			return nil
		},
	}
}
