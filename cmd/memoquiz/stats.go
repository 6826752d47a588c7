package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memoquiz/internal/attempt"
	"github.com/at-ishikawa/memoquiz/internal/database"
	"github.com/at-ishikawa/memoquiz/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	var userID int64
	var filter statistics.Filter

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly answer statistics for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.Month != 0 && filter.Year == 0 {
				return fmt.Errorf("--month requires --year")
			}
			if filter.Month < 0 || filter.Month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			attempts, err := attempt.NewDBRepository(db).FindByUser(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("FindByUser() > %w", err)
			}
			result := statistics.Calculate(attempts, cfg.Notification.Location(), filter)
			printStatistics(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().IntVar(&filter.Year, "year", 0, "only show this year")
	cmd.Flags().IntVar(&filter.Month, "month", 0, "only show this month of --year")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
