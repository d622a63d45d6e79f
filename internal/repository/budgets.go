package repository

import (
	"context"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
)

// CreateCategory creates a budget category for a hub
func (r *Repository) CreateCategory(ctx context.Context, c *models.BudgetCategory) error {
	if c.Name == "" {
		return apperr.E(apperr.Validation, "create category", nil)
	}
	c.ID = newID()
	c.CreatedAt = r.now()
	query := `
		INSERT INTO budget_categories (id, hub_id, name, default_amount, carry_over, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.HubID, c.Name, c.DefaultAmount, c.CarryOver, c.CreatedAt); err != nil {
		return storeErr("create category", err)
	}
	return nil
}

// ListBudgetCategories returns the categories of a hub
func (r *Repository) ListBudgetCategories(ctx context.Context, hubID string) ([]models.BudgetCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hub_id, name, default_amount, carry_over, created_at
		FROM budget_categories
		WHERE hub_id = $1
		ORDER BY created_at`, hubID)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []models.BudgetCategory
	for rows.Next() {
		var c models.BudgetCategory
		if err := rows.Scan(&c.ID, &c.HubID, &c.Name, &c.DefaultAmount, &c.CarryOver, &c.CreatedAt); err != nil {
			return nil, storeErr("list categories", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list categories", err)
	}
	return categories, nil
}

// FindBudgetInstance retrieves the budget of a category for one month.
// It returns a NotFound error when the period has no instance yet.
func (r *Repository) FindBudgetInstance(ctx context.Context, hubID, categoryID string, month, year int) (*models.BudgetInstance, error) {
	b := &models.BudgetInstance{}
	query := `
		SELECT id, hub_id, category_id, month, year, allocated_amount, carried_over_amount, spent_amount, created_at
		FROM budget_instances
		WHERE hub_id = $1 AND category_id = $2 AND month = $3 AND year = $4`
	err := r.db.QueryRowContext(ctx, query, hubID, categoryID, month, year).
		Scan(&b.ID, &b.HubID, &b.CategoryID, &b.Month, &b.Year, &b.AllocatedAmount, &b.CarriedOverAmount, &b.SpentAmount, &b.CreatedAt)
	if err != nil {
		return nil, storeErr("find budget instance", err)
	}
	return b, nil
}

// InsertBudgetInstance creates b unless its period already has an instance,
// in which case nothing is written and inserted is false.
func (r *Repository) InsertBudgetInstance(ctx context.Context, b *models.BudgetInstance) (inserted bool, err error) {
	if b.Month < 1 || b.Month > 12 {
		return false, apperr.E(apperr.Validation, "insert budget instance", nil)
	}
	b.ID = newID()
	b.CreatedAt = r.now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO budget_instances (id, hub_id, category_id, month, year, allocated_amount, carried_over_amount, spent_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (hub_id, category_id, month, year) DO NOTHING`,
		b.ID, b.HubID, b.CategoryID, b.Month, b.Year, b.AllocatedAmount, b.CarriedOverAmount, b.SpentAmount, b.CreatedAt)
	if err != nil {
		return false, storeErr("insert budget instance", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("insert budget instance", err)
	}
	return n > 0, nil
}

// CountBudgetInstances returns how many instances a hub has for a period
func (r *Repository) CountBudgetInstances(ctx context.Context, hubID string, month, year int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM budget_instances WHERE hub_id = $1 AND month = $2 AND year = $3`,
		hubID, month, year).Scan(&n)
	if err != nil {
		return 0, storeErr("count budget instances", err)
	}
	return n, nil
}
