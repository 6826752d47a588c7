package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/config"
	"github.com/at-ishikawa/memoquiz/internal/logger"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "memoquiz",
		Short:         "Turn reading memos into spaced-repetition quizzes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCommand.AddCommand(newMigrateCommand())
	rootCommand.AddCommand(newImportCommand())
	rootCommand.AddCommand(newSweepCommand())
	rootCommand.AddCommand(newNotifyCommand())
	rootCommand.AddCommand(newRetryCommand())
	rootCommand.AddCommand(newTokenCommand())
	rootCommand.AddCommand(newReviewCommand())
	rootCommand.AddCommand(newStatsCommand())
	return rootCommand
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if debugMode {
		level = "debug"
	}
	return logger.New(level, "console")
}
