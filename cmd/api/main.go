package main

import (
	"context"
	"os"

	"github.com/Dan9191/budget-hub/internal/config"
	"github.com/Dan9191/budget-hub/internal/jobs"
	"github.com/Dan9191/budget-hub/internal/notify"
	"github.com/Dan9191/budget-hub/internal/repository"
	"github.com/Dan9191/budget-hub/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "budgethub",
	Short: "Budget Hub batch jobs: recurring transactions, budget rollover and saving goals",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the wired process: one store handle shared by every engine
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	repo   *repository.Repository
	runner *jobs.Runner
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// bootstrap loads configuration, opens and migrates the database and wires
// the engines behind the job runner.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel)

	repo, err := repository.Open(ctx, cfg.DBDriver, cfg.DBConn)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}

	var mailer notify.Mailer
	if cfg.EmailEnabled() {
		mailer = notify.NewEmailSender(cfg, logger)
	}
	notifier := notify.NewNotifier(repo, mailer, logger)

	recurring := service.NewRecurringService(repo, notifier, logger, cfg.Location, cfg.MaxConsecutiveFailures)
	budgets := service.NewBudgetService(repo, logger)
	rollover := service.NewRolloverService(repo, budgets, logger, cfg.Location)
	allocation := service.NewAllocationService(repo, logger)

	return &app{
		cfg:    cfg,
		log:    logger,
		repo:   repo,
		runner: jobs.NewRunner(recurring, rollover, allocation, logger),
	}, nil
}
