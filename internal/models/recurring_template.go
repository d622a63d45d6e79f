package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateStatus is the lifecycle state of a recurring template
type TemplateStatus string

const (
	TemplateActive TemplateStatus = "active"
	TemplatePaused TemplateStatus = "paused"
	TemplateFailed TemplateStatus = "failed"
)

// RecurringTemplate describes a transaction that repeats every FrequencyDays
type RecurringTemplate struct {
	ID                  string          `json:"id"`
	HubID               string          `json:"hub_id"`
	CategoryID          string          `json:"category_id,omitempty"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Type                TransactionType `json:"type"`
	FrequencyDays       int             `json:"frequency_days"`
	StartDate           time.Time       `json:"start_date"`
	LastGeneratedDate   *time.Time      `json:"last_generated_date,omitempty"`
	Status              TemplateStatus  `json:"status"`
	ConsecutiveFailures int             `json:"consecutive_failures"`
	UserLanguage        string          `json:"user_language"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
