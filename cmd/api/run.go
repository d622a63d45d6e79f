package main

import (
	"fmt"

	"github.com/Dan9191/budget-hub/internal/jobs"
	"github.com/spf13/cobra"
)

var (
	flagMonth int
	flagYear  int
)

var runCmd = &cobra.Command{
	Use:       "run <recurring|rollover|allocation>",
	Short:     "Run one job now and print its result",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{jobs.JobRecurring, jobs.JobRollover, jobs.JobAllocation},
	RunE:      runJob,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		a.log.Info("Schema is up to date")
		return a.repo.Close()
	},
}

func init() {
	runCmd.Flags().IntVar(&flagMonth, "month", 0, "Rollover month (1-12), defaults to the current month")
	runCmd.Flags().IntVar(&flagYear, "year", 0, "Rollover year, defaults to the current year")
	rootCmd.AddCommand(runCmd, migrateCmd)
}

func runJob(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.repo.Close()

	resp, err := a.runner.Run(cmd.Context(), args[0], flagMonth, flagYear)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Body)
	if !resp.OK() {
		return fmt.Errorf("%s job failed with status %d", args[0], resp.StatusCode)
	}
	return nil
}
