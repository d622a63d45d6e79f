package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingGoal tracks money put aside towards a target. A zero GoalAmount
// means the goal has no upper bound.
type SavingGoal struct {
	ID                    string          `json:"id"`
	HubID                 string          `json:"hub_id"`
	Name                  string          `json:"name"`
	GoalAmount            decimal.Decimal `json:"goal_amount"`
	AmountSaved           decimal.Decimal `json:"amount_saved"`
	MonthlyAllocation     decimal.Decimal `json:"monthly_allocation"`
	AutoAllocationEnabled bool            `json:"auto_allocation_enabled"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// Bounded reports whether the goal has a target to cap savings at
func (g SavingGoal) Bounded() bool {
	return g.GoalAmount.IsPositive()
}

// Funded reports whether a bounded goal already reached its target
func (g SavingGoal) Funded() bool {
	return g.Bounded() && g.AmountSaved.GreaterThanOrEqual(g.GoalAmount)
}
