package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// GoalStore is the persistence used by the allocation engine
type GoalStore interface {
	AutoAllocationGoals(ctx context.Context) ([]models.SavingGoal, error)
	UpdateGoalSaved(ctx context.Context, id string, previous, saved decimal.Decimal) error
}

// AllocationStats summarizes one allocation run
type AllocationStats struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// AllocationService moves the monthly allocation into saving goals
type AllocationService struct {
	store GoalStore
	log   *logrus.Logger
}

// NewAllocationService initializes the allocation engine
func NewAllocationService(store GoalStore, log *logrus.Logger) *AllocationService {
	return &AllocationService{store: store, log: log}
}

// NextSaved returns the saved amount of g after one monthly allocation,
// capped at the goal amount for bounded goals.
func NextSaved(g models.SavingGoal) decimal.Decimal {
	next := g.AmountSaved.Add(g.MonthlyAllocation)
	if g.Bounded() {
		return decimal.Min(next, g.GoalAmount)
	}
	return next
}

// AllocateSavings adds the monthly allocation to every auto-allocating goal.
// Goals without an allocation or already funded are skipped.
func (s *AllocationService) AllocateSavings(ctx context.Context) (*AllocationStats, error) {
	goals, err := s.store.AutoAllocationGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saving goals: %w", err)
	}

	stats := &AllocationStats{}
	for _, g := range goals {
		log := s.log.WithFields(logrus.Fields{"goal_id": g.ID, "hub_id": g.HubID})

		if !g.MonthlyAllocation.IsPositive() {
			log.Debug("Saving goal has no monthly allocation")
			continue
		}
		if g.Funded() {
			log.Debug("Saving goal already funded")
			continue
		}

		saved := NextSaved(g)
		if err := s.store.UpdateGoalSaved(ctx, g.ID, g.AmountSaved, saved); err != nil {
			log.WithError(err).Error("Failed to allocate savings")
			stats.Failed++
			continue
		}
		log.WithFields(logrus.Fields{
			"from": g.AmountSaved.String(),
			"to":   saved.String(),
		}).Info("Savings allocated")
		stats.Processed++
	}

	s.log.WithFields(logrus.Fields{
		"processed": stats.Processed,
		"failed":    stats.Failed,
	}).Info("Saving goal allocation finished")
	return stats, nil
}
