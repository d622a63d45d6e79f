package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/sirupsen/logrus"
)

// TemplateStore is the persistence used by the generation engine
type TemplateStore interface {
	ActiveRecurringTemplates(ctx context.Context) ([]models.RecurringTemplate, error)
	GenerateFromTemplate(ctx context.Context, t models.RecurringTemplate, due time.Time) (bool, error)
	RecordTemplateFailure(ctx context.Context, id string, maxFailures int) (int, models.TemplateStatus, error)
}

// FailureNotifier is told when a template is moved to the failed status
type FailureNotifier interface {
	TemplateFailed(ctx context.Context, t models.RecurringTemplate, failures int, cause error) error
}

// TemplateError is the failure of a single template within a run
type TemplateError struct {
	TemplateID string `json:"templateId"`
	Error      string `json:"error"`
}

// GenerationStats summarizes one generation run
type GenerationStats struct {
	Success int             `json:"success"`
	Failed  int             `json:"failed"`
	Skipped int             `json:"skipped"`
	Errors  []TemplateError `json:"errors"`
}

// RecurringService generates transactions from recurring templates
type RecurringService struct {
	store       TemplateStore
	notifier    FailureNotifier
	log         *logrus.Logger
	loc         *time.Location
	maxFailures int
	now         func() time.Time
}

// NewRecurringService initializes the generation engine. Dates are evaluated
// in loc; a template is marked failed after maxFailures consecutive errors.
// notifier may be nil.
func NewRecurringService(store TemplateStore, notifier FailureNotifier, log *logrus.Logger, loc *time.Location, maxFailures int) *RecurringService {
	if loc == nil {
		loc = time.UTC
	}
	return &RecurringService{
		store:       store,
		notifier:    notifier,
		log:         log,
		loc:         loc,
		maxFailures: maxFailures,
		now:         time.Now,
	}
}

// WithClock replaces the time source used to decide what is due
func (s *RecurringService) WithClock(now func() time.Time) *RecurringService {
	s.now = now
	return s
}

// GenerateRecurringTransactions creates the due transaction of every active
// template. Failures of single templates are recorded in the stats and do
// not stop the run; only failing to load the templates returns an error.
func (s *RecurringService) GenerateRecurringTransactions(ctx context.Context) (*GenerationStats, error) {
	templates, err := s.store.ActiveRecurringTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active recurring templates: %w", err)
	}

	today := civilDate(s.now(), s.loc)
	stats := &GenerationStats{Errors: []TemplateError{}}
	for _, t := range templates {
		log := s.log.WithFields(logrus.Fields{"template_id": t.ID, "hub_id": t.HubID})

		if t.FrequencyDays < 1 {
			err := apperr.E(apperr.Validation, "generate", fmt.Errorf("frequency_days must be >= 1, got %d", t.FrequencyDays))
			log.WithError(err).Error("Invalid recurring template")
			stats.Failed++
			stats.Errors = append(stats.Errors, TemplateError{TemplateID: t.ID, Error: err.Error()})
			continue
		}

		due, ok := DueDate(t, today)
		if !ok {
			log.Debug("Recurring template not due yet")
			stats.Skipped++
			continue
		}

		created, err := s.store.GenerateFromTemplate(ctx, t, due)
		if err != nil {
			log.WithError(err).Error("Failed to generate recurring transaction")
			stats.Failed++
			stats.Errors = append(stats.Errors, TemplateError{TemplateID: t.ID, Error: err.Error()})
			s.recordFailure(ctx, t, err, log)
			continue
		}
		if !created {
			log.WithField("due", due.Format("2006-01-02")).Info("Recurring transaction already exists")
			stats.Skipped++
			continue
		}

		log.WithField("due", due.Format("2006-01-02")).Info("Recurring transaction generated")
		stats.Success++
	}

	s.log.WithFields(logrus.Fields{
		"success": stats.Success,
		"failed":  stats.Failed,
		"skipped": stats.Skipped,
	}).Info("Recurring transaction generation finished")
	return stats, nil
}

func (s *RecurringService) recordFailure(ctx context.Context, t models.RecurringTemplate, cause error, log *logrus.Entry) {
	failures, status, err := s.store.RecordTemplateFailure(ctx, t.ID, s.maxFailures)
	if err != nil {
		log.WithError(err).Error("Failed to record template failure")
		return
	}
	log = log.WithField("consecutive_failures", failures)
	if status != models.TemplateFailed {
		log.Warn("Recurring template failure recorded")
		return
	}

	log.Error("Recurring template moved to failed status")
	if s.notifier == nil {
		return
	}
	if err := s.notifier.TemplateFailed(ctx, t, failures, cause); err != nil {
		log.WithError(err).Error("Failed to notify hub about failed template")
	}
}
