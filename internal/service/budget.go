package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BudgetStore is the persistence used by the budget service
type BudgetStore interface {
	ListBudgetCategories(ctx context.Context, hubID string) ([]models.BudgetCategory, error)
	FindBudgetInstance(ctx context.Context, hubID, categoryID string, month, year int) (*models.BudgetInstance, error)
	InsertBudgetInstance(ctx context.Context, b *models.BudgetInstance) (bool, error)
}

// BudgetService manages monthly budget instances
type BudgetService struct {
	store BudgetStore
	log   *logrus.Logger
}

// NewBudgetService initializes a new budget service
func NewBudgetService(store BudgetStore, log *logrus.Logger) *BudgetService {
	return &BudgetService{store: store, log: log}
}

// EnsureBudgetInstances creates the missing budget instances of a hub for
// month/year. A new instance starts from the category's default amount and,
// for carry-over categories, the unspent amount of the previous month.
// Existing instances are left untouched, so calling it again for the same
// period writes nothing.
func (s *BudgetService) EnsureBudgetInstances(ctx context.Context, hubID string, month, year int) error {
	if month < 1 || month > 12 {
		return apperr.E(apperr.Validation, "ensure budget instances", fmt.Errorf("invalid month %d", month))
	}

	categories, err := s.store.ListBudgetCategories(ctx, hubID)
	if err != nil {
		return fmt.Errorf("failed to list categories of hub %s: %w", hubID, err)
	}

	prevMonth, prevYear := previousPeriod(month, year)
	for _, c := range categories {
		_, err := s.store.FindBudgetInstance(ctx, hubID, c.ID, month, year)
		if err == nil {
			continue
		}
		if !apperr.IsNotFound(err) {
			return fmt.Errorf("failed to look up budget of category %s: %w", c.ID, err)
		}

		carried := decimal.Zero
		if c.CarryOver {
			prev, err := s.store.FindBudgetInstance(ctx, hubID, c.ID, prevMonth, prevYear)
			switch {
			case err == nil:
				carried = prev.Leftover()
			case apperr.IsNotFound(err):
			default:
				return fmt.Errorf("failed to look up previous budget of category %s: %w", c.ID, err)
			}
		}

		inst := &models.BudgetInstance{
			HubID:             hubID,
			CategoryID:        c.ID,
			Month:             month,
			Year:              year,
			AllocatedAmount:   c.DefaultAmount,
			CarriedOverAmount: carried,
			SpentAmount:       decimal.Zero,
		}
		inserted, err := s.store.InsertBudgetInstance(ctx, inst)
		if err != nil {
			return fmt.Errorf("failed to create budget of category %s: %w", c.ID, err)
		}
		if inserted {
			s.log.WithFields(logrus.Fields{
				"hub_id":      hubID,
				"category_id": c.ID,
				"period":      fmt.Sprintf("%04d-%02d", year, month),
				"carried":     carried.StringFixed(2),
			}).Debug("Budget instance created")
		}
	}
	return nil
}
