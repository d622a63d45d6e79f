package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/shopspring/decimal"
)

const goalColumns = `id, hub_id, name, goal_amount, amount_saved, monthly_allocation, auto_allocation_enabled, updated_at`

// CreateGoal creates a saving goal
func (r *Repository) CreateGoal(ctx context.Context, g *models.SavingGoal) error {
	if g.GoalAmount.IsNegative() || g.AmountSaved.IsNegative() || g.MonthlyAllocation.IsNegative() {
		return apperr.E(apperr.Validation, "create goal", fmt.Errorf("amounts must not be negative"))
	}
	g.ID = newID()
	g.UpdatedAt = r.now()
	query := `
		INSERT INTO saving_goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID, g.HubID, g.Name, g.GoalAmount, g.AmountSaved, g.MonthlyAllocation, g.AutoAllocationEnabled, g.UpdatedAt)
	if err != nil {
		return storeErr("create goal", err)
	}
	return nil
}

// FindGoal retrieves a saving goal by id
func (r *Repository) FindGoal(ctx context.Context, id string) (*models.SavingGoal, error) {
	g := &models.SavingGoal{}
	err := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM saving_goals WHERE id = $1`, id).
		Scan(&g.ID, &g.HubID, &g.Name, &g.GoalAmount, &g.AmountSaved, &g.MonthlyAllocation, &g.AutoAllocationEnabled, &g.UpdatedAt)
	if err != nil {
		return nil, storeErr("find goal", err)
	}
	return g, nil
}

// AutoAllocationGoals returns every goal with auto allocation enabled, across all hubs
func (r *Repository) AutoAllocationGoals(ctx context.Context) ([]models.SavingGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM saving_goals WHERE auto_allocation_enabled = $1`, true)
	if err != nil {
		return nil, storeErr("list auto allocation goals", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []models.SavingGoal
	for rows.Next() {
		var g models.SavingGoal
		if err := rows.Scan(&g.ID, &g.HubID, &g.Name, &g.GoalAmount, &g.AmountSaved, &g.MonthlyAllocation, &g.AutoAllocationEnabled, &g.UpdatedAt); err != nil {
			return nil, storeErr("list auto allocation goals", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list auto allocation goals", err)
	}
	return goals, nil
}

// UpdateGoalSaved sets amount_saved to saved, provided it still holds
// previous. A concurrent change yields a Conflict error.
func (r *Repository) UpdateGoalSaved(ctx context.Context, id string, previous, saved decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE saving_goals
		SET amount_saved = $1, updated_at = $2
		WHERE id = $3 AND amount_saved = $4`, saved, r.now(), id, previous)
	if err != nil {
		return storeErr("update goal", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("update goal", err)
	}
	if n == 0 {
		return apperr.E(apperr.Conflict, "update goal", fmt.Errorf("goal %s changed since it was read", id))
	}
	return nil
}
