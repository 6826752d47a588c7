package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/database"
	"github.com/at-ishikawa/memoquiz/internal/datasync"
	"github.com/at-ishikawa/memoquiz/internal/inference"
	"github.com/at-ishikawa/memoquiz/internal/inference/openai"
	"github.com/at-ishikawa/memoquiz/internal/memo"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

func newImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.yml>",
		Short: "Import memos and their quizzes from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file, err := datasync.LoadFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = log.Sync()
			}()

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			var generator quiz.Generator
			if cfg.OpenAI.APIKey != "" {
				openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.MaxRetryAttempts, log)
				defer func() {
					_ = openaiClient.Close()
				}()
				generator = openaiClient
				if cfg.OpenAI.CacheDir != "" {
					generator = inference.NewFileCache(openaiClient, cfg.OpenAI.CacheDir, log)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Using OpenAI (model: %s) for memos without quizzes\n", openaiClient.GetModel())
			}

			memos := memo.NewService(memo.NewDBRepository(db), generator, clock.Real(), log)
			users := user.NewService(user.NewDBRepository(db), log)
			importer := datasync.NewImporter(memos, users, cmd.OutOrStdout())

			result, err := importer.Import(ctx, file, datasync.ImportOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}
			printImportResult(cmd.OutOrStdout(), result, dryRun)
			if result.Failed > 0 {
				return fmt.Errorf("%d memos failed to import", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	return cmd
}
