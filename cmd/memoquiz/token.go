package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memoquiz/internal/token"
)

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect quiz access tokens",
	}
	cmd.AddCommand(newTokenIssueCommand())
	cmd.AddCommand(newTokenVerifyCommand())
	return cmd
}

func loadTokenService() (*token.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loadConfig() > %w", err)
	}
	if cfg.Token.Secret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET environment variable is required")
	}
	return token.NewService(cfg.Token.Secret, token.WithTTL(cfg.Token.TTL()))
}

func newTokenIssueCommand() *cobra.Command {
	var quizID, userID int64

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a token granting a user access to one quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quizID <= 0 || userID <= 0 {
				return errors.New("--quiz and --user must be positive")
			}
			tokens, err := loadTokenService()
			if err != nil {
				return err
			}
			tok, err := tokens.Issue(quizID, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().Int64Var(&quizID, "quiz", 0, "quiz id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	return cmd
}

func newTokenVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Check a token's signature and expiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := loadTokenService()
			if err != nil {
				return err
			}
			subject, err := tokens.Verify(args[0])
			if err != nil {
				return err
			}
			printSubject(cmd.OutOrStdout(), subject)
			return nil
		},
	}
}
