package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memoquiz/internal/attempt"
	"github.com/at-ishikawa/memoquiz/internal/cli"
	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/database"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

func newReviewCommand() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Answer today's quizzes in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			clk := clock.Real()
			quizzes := quiz.NewLifecycle(quiz.NewDBRepository(db), clk, log)
			recorder := attempt.NewRecorder(quizzes, attempt.NewDBRepository(db), clk, log)

			review := cli.NewReviewCLI(quizzes, recorder, clk, cfg.Notification.Location(), userID, os.Stdin, cmd.OutOrStdout())
			_, err = review.Run(cmd.Context())
			return err
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
