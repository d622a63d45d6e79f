package main

import (
	"fmt"
	"time"

	"github.com/Dan9191/budget-hub/internal/config"
	"github.com/Dan9191/budget-hub/internal/middleware"
	"github.com/spf13/cobra"
)

var (
	flagSubject string
	flagTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an operator token for the job API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		token, err := middleware.IssueToken(cfg.JWTSecret, flagSubject, flagTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&flagSubject, "subject", "operator", "Operator name recorded with manual runs")
	tokenCmd.Flags().DurationVar(&flagTTL, "ttl", time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
