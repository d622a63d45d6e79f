// Package jobs holds the scheduler entry points of the batch pipeline. Each
// entry point runs one engine and turns its outcome into a status code and a
// JSON body; none of them carries business logic.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Dan9191/budget-hub/internal/service"
	"github.com/sirupsen/logrus"
)

// Job names accepted by Runner.Run
const (
	JobRecurring  = "recurring"
	JobRollover   = "rollover"
	JobAllocation = "allocation"
)

// Response is what an entry point hands back to its trigger
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// OK reports whether the run succeeded
func (r Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type generationBody struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Stats   service.GenerationStats `json:"stats"`
}

type countsBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// Generator is the recurring transaction engine
type Generator interface {
	GenerateRecurringTransactions(ctx context.Context) (*service.GenerationStats, error)
}

// Roller is the budget rollover engine
type Roller interface {
	PerformMonthlyRollover(ctx context.Context, month, year int) (*service.RolloverStats, error)
}

// Allocator is the saving goal allocation engine
type Allocator interface {
	AllocateSavings(ctx context.Context) (*service.AllocationStats, error)
}

// Runner exposes the engines as trigger handlers
type Runner struct {
	generator Generator
	roller    Roller
	allocator Allocator
	log       *logrus.Logger
}

// NewRunner initializes the entry points
func NewRunner(generator Generator, roller Roller, allocator Allocator, log *logrus.Logger) *Runner {
	return &Runner{generator: generator, roller: roller, allocator: allocator, log: log}
}

// RecurringHandler generates the due recurring transactions
func (r *Runner) RecurringHandler(ctx context.Context) Response {
	return r.invoke(JobRecurring, func() (any, error) {
		stats, err := r.generator.GenerateRecurringTransactions(ctx)
		if err != nil {
			return nil, err
		}
		return generationBody{
			Success: true,
			Message: fmt.Sprintf("Generated %d recurring transactions (%d failed, %d skipped)", stats.Success, stats.Failed, stats.Skipped),
			Stats:   *stats,
		}, nil
	})
}

// RolloverHandler opens the budgets of month/year; zero values select the
// current period.
func (r *Runner) RolloverHandler(ctx context.Context, month, year int) Response {
	return r.invoke(JobRollover, func() (any, error) {
		stats, err := r.roller.PerformMonthlyRollover(ctx, month, year)
		if err != nil {
			return nil, err
		}
		return countsBody{
			Success:   true,
			Message:   fmt.Sprintf("Monthly rollover for %04d-%02d completed", stats.Year, stats.Month),
			Processed: stats.Processed,
			Failed:    stats.Failed,
		}, nil
	})
}

// AllocationHandler adds the monthly allocation to saving goals
func (r *Runner) AllocationHandler(ctx context.Context) Response {
	return r.invoke(JobAllocation, func() (any, error) {
		stats, err := r.allocator.AllocateSavings(ctx)
		if err != nil {
			return nil, err
		}
		return countsBody{
			Success:   true,
			Message:   "Saving goal allocation completed",
			Processed: stats.Processed,
			Failed:    stats.Failed,
		}, nil
	})
}

// Run dispatches to the entry point called name
func (r *Runner) Run(ctx context.Context, name string, month, year int) (Response, error) {
	switch name {
	case JobRecurring:
		return r.RecurringHandler(ctx), nil
	case JobRollover:
		return r.RolloverHandler(ctx, month, year), nil
	case JobAllocation:
		return r.AllocationHandler(ctx), nil
	}
	return Response{}, fmt.Errorf("unknown job %q", name)
}

func (r *Runner) invoke(job string, fn func() (any, error)) (resp Response) {
	log := r.log.WithField("job", job)
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("Job panicked")
			resp = failure(fmt.Sprintf("%s job failed: %v", job, p))
		}
	}()

	body, err := fn()
	if err != nil {
		log.WithError(err).Error("Job failed")
		return failure(err.Error())
	}
	log.WithField("duration", time.Since(start).String()).Info("Job completed")
	return respond(http.StatusOK, body)
}

func failure(message string) Response {
	return respond(http.StatusInternalServerError, failureBody{Success: false, Message: message})
}

func respond(status int, body any) Response {
	data, err := json.Marshal(body)
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"success":false,"message":"failed to encode response"}`,
		}
	}
	return Response{StatusCode: status, Body: string(data)}
}
