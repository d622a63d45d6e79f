package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/budget-hub/internal/handler"
	"github.com/Dan9191/budget-hub/internal/jobs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the job scheduler and the operator HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.repo.Close()

	scheduler := jobs.NewScheduler(a.runner, a.log, a.cfg.Location)
	if err := scheduler.Register(jobs.Specs{
		Recurring:  a.cfg.RecurringCron,
		Rollover:   a.cfg.RolloverCron,
		Allocation: a.cfg.AllocationCron,
	}); err != nil {
		return err
	}
	scheduler.Start()

	h := handler.NewHandler(a.runner, a.log)
	addr := fmt.Sprintf(":%s", a.cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Router(a.cfg.JWTSecret),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // manual job runs answer when the run ends
	}

	return serveUntilDone(ctx, a.log, server, scheduler)
}

// serveUntilDone runs server until ctx is cancelled or the listener fails,
// then shuts down the server and waits for running jobs. A listener failure
// is returned after shutdown completes.
func serveUntilDone(ctx context.Context, log *logrus.Logger, server *http.Server, scheduler *jobs.Scheduler) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			log.Errorf("Server failed: %v", err)
			serveErr = fmt.Errorf("http server on %s: %w", server.Addr, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown: %v", err)
	}
	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("Running jobs did not finish before shutdown timeout")
	}
	return serveErr
}
