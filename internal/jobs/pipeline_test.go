package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/Dan9191/budget-hub/internal/notify"
	"github.com/Dan9191/budget-hub/internal/repository"
	"github.com/Dan9191/budget-hub/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeline struct {
	repo   *repository.Repository
	runner *Runner
	hub    *models.Hub
}

func newPipeline(t *testing.T, today time.Time) *pipeline {
	t.Helper()
	ctx := context.Background()
	repo, err := repository.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "pipeline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Migrate(ctx))

	log := quietLogger()
	notifier := notify.NewNotifier(repo, nil, log)
	recurring := service.NewRecurringService(repo, notifier, log, time.UTC, 3).
		WithClock(func() time.Time { return today })
	rollover := service.NewRolloverService(repo, service.NewBudgetService(repo, log), log, time.UTC)
	allocation := service.NewAllocationService(repo, log)

	hub := &models.Hub{Name: "Home"}
	require.NoError(t, repo.CreateHub(ctx, hub))
	return &pipeline{repo: repo, runner: NewRunner(recurring, rollover, allocation, log), hub: hub}
}

func TestPipeline_RecurringFirstOccurrence(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, time.Date(2024, 2, 1, 6, 0, 0, 0, time.UTC))
	tpl := &models.RecurringTemplate{
		HubID: p.hub.ID, Description: "Rent", Amount: decimal.RequireFromString("800"),
		Type: models.TransactionExpense, FrequencyDays: 30, StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.repo.CreateTemplate(ctx, tpl))

	resp := p.runner.RecurringHandler(ctx)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	var body struct {
		Success bool                    `json:"success"`
		Stats   service.GenerationStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Stats.Success)
	assert.Equal(t, 0, body.Stats.Skipped)

	stored, err := p.repo.FindTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastGeneratedDate)
	assert.Equal(t, "2024-01-31", stored.LastGeneratedDate.Format("2006-01-02"))

	// Running again the same day generates nothing new.
	resp = p.runner.RecurringHandler(ctx)
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, 0, body.Stats.Success)
	assert.Equal(t, 1, body.Stats.Skipped)

	txns, err := p.repo.ListTransactions(ctx, p.hub.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestPipeline_AllocationCapsAtGoal(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, time.Now())
	goal := &models.SavingGoal{
		HubID: p.hub.ID, Name: "Laptop", GoalAmount: decimal.NewFromInt(1000),
		AmountSaved: decimal.NewFromInt(950), MonthlyAllocation: decimal.NewFromInt(100), AutoAllocationEnabled: true,
	}
	require.NoError(t, p.repo.CreateGoal(ctx, goal))

	resp := p.runner.AllocationHandler(ctx)
	assert.JSONEq(t, `{"success":true,"message":"Saving goal allocation completed","processed":1,"failed":0}`, resp.Body)

	stored, err := p.repo.FindGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountSaved.Equal(decimal.NewFromInt(1000)), stored.AmountSaved.String())
}

func TestPipeline_RolloverTwiceKeepsInstances(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, time.Now())
	cat := &models.BudgetCategory{HubID: p.hub.ID, Name: "Food", DefaultAmount: decimal.NewNullDecimal(decimal.NewFromInt(300)), CarryOver: true}
	require.NoError(t, p.repo.CreateCategory(ctx, cat))
	_, err := p.repo.InsertBudgetInstance(ctx, &models.BudgetInstance{
		HubID: p.hub.ID, CategoryID: cat.ID, Month: 8, Year: 2025,
		AllocatedAmount: cat.DefaultAmount, SpentAmount: decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp := p.runner.RolloverHandler(ctx, 9, 2025)
		assert.JSONEq(t, `{"success":true,"message":"Monthly rollover for 2025-09 completed","processed":1,"failed":0}`, resp.Body)
	}

	n, err := p.repo.CountBudgetInstances(ctx, p.hub.ID, 9, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sept, err := p.repo.FindBudgetInstance(ctx, p.hub.ID, cat.ID, 9, 2025)
	require.NoError(t, err)
	assert.True(t, sept.CarriedOverAmount.Equal(decimal.NewFromInt(50)), sept.CarriedOverAmount.String())
}
