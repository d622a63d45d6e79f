package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction represents a financial transaction recorded in a hub
type Transaction struct {
	ID                  string          `json:"id"`
	HubID               string          `json:"hub_id"`
	CategoryID          string          `json:"category_id,omitempty"`
	RecurringTemplateID string          `json:"recurring_template_id,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Type                TransactionType `json:"type"`
	Description         string          `json:"description"`
	OccurredOn          time.Time       `json:"occurred_on"`
	CreatedAt           time.Time       `json:"created_at"`
}
