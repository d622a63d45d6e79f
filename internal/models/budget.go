package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetCategory is a spending category of a hub. CarryOver enables moving
// the unspent amount of one period into the next.
type BudgetCategory struct {
	ID            string              `json:"id"`
	HubID         string              `json:"hub_id"`
	Name          string              `json:"name"`
	DefaultAmount decimal.NullDecimal `json:"default_amount"`
	CarryOver     bool                `json:"carry_over"`
	CreatedAt     time.Time           `json:"created_at"`
}

// BudgetInstance is the budget of one category for one calendar month.
// At most one exists per (HubID, CategoryID, Month, Year).
type BudgetInstance struct {
	ID                string              `json:"id"`
	HubID             string              `json:"hub_id"`
	CategoryID        string              `json:"category_id"`
	Month             int                 `json:"month"`
	Year              int                 `json:"year"`
	AllocatedAmount   decimal.NullDecimal `json:"allocated_amount"`
	CarriedOverAmount decimal.Decimal     `json:"carried_over_amount"`
	SpentAmount       decimal.Decimal     `json:"spent_amount"`
	CreatedAt         time.Time           `json:"created_at"`
}

// Leftover is what remains unspent in the period, never negative
func (b BudgetInstance) Leftover() decimal.Decimal {
	total := b.CarriedOverAmount
	if b.AllocatedAmount.Valid {
		total = total.Add(b.AllocatedAmount.Decimal)
	}
	left := total.Sub(b.SpentAmount)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
