package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/sirupsen/logrus"
)

// HubStore lists the tenants a batch job iterates over
type HubStore interface {
	ListHubs(ctx context.Context) ([]models.Hub, error)
}

// BudgetEnsurer creates the budget instances of a hub for a period
type BudgetEnsurer interface {
	EnsureBudgetInstances(ctx context.Context, hubID string, month, year int) error
}

// RolloverStats summarizes one rollover run
type RolloverStats struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// RolloverService opens the budgets of a new month for every hub
type RolloverService struct {
	hubs    HubStore
	budgets BudgetEnsurer
	log     *logrus.Logger
	loc     *time.Location
	now     func() time.Time
}

// NewRolloverService initializes the rollover engine
func NewRolloverService(hubs HubStore, budgets BudgetEnsurer, log *logrus.Logger, loc *time.Location) *RolloverService {
	if loc == nil {
		loc = time.UTC
	}
	return &RolloverService{hubs: hubs, budgets: budgets, log: log, loc: loc, now: time.Now}
}

// PerformMonthlyRollover ensures budget instances exist for month/year in
// every hub. Zero month or year default to the current calendar period.
func (s *RolloverService) PerformMonthlyRollover(ctx context.Context, month, year int) (*RolloverStats, error) {
	now := s.now().In(s.loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, apperr.E(apperr.Validation, "monthly rollover", fmt.Errorf("invalid period %d/%d", month, year))
	}

	hubs, err := s.hubs.ListHubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hubs: %w", err)
	}

	stats := &RolloverStats{Month: month, Year: year}
	for _, h := range hubs {
		if err := s.budgets.EnsureBudgetInstances(ctx, h.ID, month, year); err != nil {
			s.log.WithField("hub_id", h.ID).WithError(err).Error("Failed to roll over hub budgets")
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	s.log.WithFields(logrus.Fields{
		"period":    fmt.Sprintf("%04d-%02d", year, month),
		"processed": stats.Processed,
		"failed":    stats.Failed,
	}).Info("Monthly rollover finished")
	return stats, nil
}
