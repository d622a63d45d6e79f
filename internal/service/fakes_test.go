package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type generated struct {
	templateID string
	due        time.Time
}

type fakeTemplateStore struct {
	templates map[string]*models.RecurringTemplate
	order     []string
	fetchErr  error
	failWrite map[string]error
	generated []generated
	seen      map[string]bool
}

func newFakeTemplateStore(templates ...models.RecurringTemplate) *fakeTemplateStore {
	f := &fakeTemplateStore{
		templates: map[string]*models.RecurringTemplate{},
		failWrite: map[string]error{},
		seen:      map[string]bool{},
	}
	for i := range templates {
		t := templates[i]
		if t.Status == "" {
			t.Status = models.TemplateActive
		}
		f.templates[t.ID] = &t
		f.order = append(f.order, t.ID)
	}
	return f
}

func (f *fakeTemplateStore) ActiveRecurringTemplates(context.Context) ([]models.RecurringTemplate, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.RecurringTemplate
	for _, id := range f.order {
		if t := f.templates[id]; t.Status == models.TemplateActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTemplateStore) GenerateFromTemplate(_ context.Context, t models.RecurringTemplate, due time.Time) (bool, error) {
	if err := f.failWrite[t.ID]; err != nil {
		return false, err
	}
	stored := f.templates[t.ID]
	stored.LastGeneratedDate = &due
	stored.ConsecutiveFailures = 0

	key := fmt.Sprintf("%s/%s", t.ID, due.Format("2006-01-02"))
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	f.generated = append(f.generated, generated{templateID: t.ID, due: due})
	return true, nil
}

func (f *fakeTemplateStore) RecordTemplateFailure(_ context.Context, id string, maxFailures int) (int, models.TemplateStatus, error) {
	t, ok := f.templates[id]
	if !ok {
		return 0, "", apperr.E(apperr.NotFound, "record template failure", errors.New("no such template"))
	}
	t.ConsecutiveFailures++
	if t.ConsecutiveFailures >= maxFailures {
		t.Status = models.TemplateFailed
	}
	return t.ConsecutiveFailures, t.Status, nil
}

type failedNotice struct {
	templateID string
	failures   int
}

type fakeNotifier struct {
	notices []failedNotice
}

func (n *fakeNotifier) TemplateFailed(_ context.Context, t models.RecurringTemplate, failures int, _ error) error {
	n.notices = append(n.notices, failedNotice{templateID: t.ID, failures: failures})
	return nil
}

type budgetKey struct {
	hubID, categoryID string
	month, year       int
}

type fakeBudgetStore struct {
	categories map[string][]models.BudgetCategory
	instances  map[budgetKey]models.BudgetInstance
	listErr    map[string]error
	inserts    int
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{
		categories: map[string][]models.BudgetCategory{},
		instances:  map[budgetKey]models.BudgetInstance{},
		listErr:    map[string]error{},
	}
}

func (f *fakeBudgetStore) ListBudgetCategories(_ context.Context, hubID string) ([]models.BudgetCategory, error) {
	if err := f.listErr[hubID]; err != nil {
		return nil, err
	}
	return f.categories[hubID], nil
}

func (f *fakeBudgetStore) FindBudgetInstance(_ context.Context, hubID, categoryID string, month, year int) (*models.BudgetInstance, error) {
	b, ok := f.instances[budgetKey{hubID, categoryID, month, year}]
	if !ok {
		return nil, apperr.E(apperr.NotFound, "find budget instance", nil)
	}
	return &b, nil
}

func (f *fakeBudgetStore) InsertBudgetInstance(_ context.Context, b *models.BudgetInstance) (bool, error) {
	key := budgetKey{b.HubID, b.CategoryID, b.Month, b.Year}
	if _, ok := f.instances[key]; ok {
		return false, nil
	}
	f.instances[key] = *b
	f.inserts++
	return true, nil
}

type fakeHubStore struct {
	hubs []models.Hub
	err  error
}

func (f *fakeHubStore) ListHubs(context.Context) ([]models.Hub, error) {
	return f.hubs, f.err
}

type fakeGoalStore struct {
	goals     map[string]*models.SavingGoal
	order     []string
	fetchErr  error
	failWrite map[string]error
}

func newFakeGoalStore(goals ...models.SavingGoal) *fakeGoalStore {
	f := &fakeGoalStore{goals: map[string]*models.SavingGoal{}, failWrite: map[string]error{}}
	for i := range goals {
		g := goals[i]
		f.goals[g.ID] = &g
		f.order = append(f.order, g.ID)
	}
	return f
}

func (f *fakeGoalStore) AutoAllocationGoals(context.Context) ([]models.SavingGoal, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.SavingGoal
	for _, id := range f.order {
		if g := f.goals[id]; g.AutoAllocationEnabled {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) UpdateGoalSaved(_ context.Context, id string, previous, saved decimal.Decimal) error {
	if err := f.failWrite[id]; err != nil {
		return err
	}
	g := f.goals[id]
	if !g.AmountSaved.Equal(previous) {
		return apperr.E(apperr.Conflict, "update goal", nil)
	}
	g.AmountSaved = saved
	return nil
}
