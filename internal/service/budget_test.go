package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureBudgetInstances_CarryOver(t *testing.T) {
	store := newFakeBudgetStore()
	store.categories["h1"] = []models.BudgetCategory{
		{ID: "food", HubID: "h1", DefaultAmount: decimal.NewNullDecimal(dec("400")), CarryOver: true},
		{ID: "fun", HubID: "h1", DefaultAmount: decimal.NewNullDecimal(dec("100")), CarryOver: false},
		{ID: "misc", HubID: "h1", CarryOver: true},
	}
	store.instances[budgetKey{"h1", "food", 12, 2024}] = models.BudgetInstance{
		AllocatedAmount:   decimal.NewNullDecimal(dec("400")),
		CarriedOverAmount: dec("25.50"),
		SpentAmount:       dec("300"),
	}
	store.instances[budgetKey{"h1", "fun", 12, 2024}] = models.BudgetInstance{
		AllocatedAmount: decimal.NewNullDecimal(dec("100")),
		SpentAmount:     dec("10"),
	}
	store.instances[budgetKey{"h1", "misc", 12, 2024}] = models.BudgetInstance{
		SpentAmount: dec("50"),
	}
	svc := NewBudgetService(store, quietLogger())

	require.NoError(t, svc.EnsureBudgetInstances(context.Background(), "h1", 1, 2025))
	assert.Equal(t, 3, store.inserts)

	food := store.instances[budgetKey{"h1", "food", 1, 2025}]
	assert.True(t, food.CarriedOverAmount.Equal(dec("125.50")), food.CarriedOverAmount.String())
	assert.True(t, food.AllocatedAmount.Valid)
	assert.True(t, food.AllocatedAmount.Decimal.Equal(dec("400")))
	assert.True(t, food.SpentAmount.IsZero())

	fun := store.instances[budgetKey{"h1", "fun", 1, 2025}]
	assert.True(t, fun.CarriedOverAmount.IsZero(), "carry-over disabled")

	misc := store.instances[budgetKey{"h1", "misc", 1, 2025}]
	assert.False(t, misc.AllocatedAmount.Valid)
	assert.True(t, misc.CarriedOverAmount.IsZero(), "overspent budgets carry nothing")
}

func TestEnsureBudgetInstances_Idempotent(t *testing.T) {
	store := newFakeBudgetStore()
	store.categories["h1"] = []models.BudgetCategory{
		{ID: "food", HubID: "h1", DefaultAmount: decimal.NewNullDecimal(dec("400")), CarryOver: true},
	}
	store.instances[budgetKey{"h1", "food", 2, 2025}] = models.BudgetInstance{
		AllocatedAmount: decimal.NewNullDecimal(dec("400")),
		SpentAmount:     dec("100"),
	}
	svc := NewBudgetService(store, quietLogger())

	require.NoError(t, svc.EnsureBudgetInstances(context.Background(), "h1", 3, 2025))
	first := store.instances[budgetKey{"h1", "food", 3, 2025}]

	require.NoError(t, svc.EnsureBudgetInstances(context.Background(), "h1", 3, 2025))
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, first, store.instances[budgetKey{"h1", "food", 3, 2025}])
	assert.True(t, first.CarriedOverAmount.Equal(dec("300")))
}

func TestEnsureBudgetInstances_Errors(t *testing.T) {
	store := newFakeBudgetStore()
	store.listErr["h1"] = errors.New("timeout")
	svc := NewBudgetService(store, quietLogger())

	err := svc.EnsureBudgetInstances(context.Background(), "h1", 1, 2025)
	assert.ErrorContains(t, err, "timeout")

	err = svc.EnsureBudgetInstances(context.Background(), "h1", 13, 2025)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}
