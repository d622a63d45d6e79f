package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
)

const templateColumns = `id, hub_id, category_id, description, amount, type, frequency_days,
	start_date, last_generated_date, status, consecutive_failures, user_language,
	created_at, updated_at`

// CreateTemplate stores a new recurring template
func (r *Repository) CreateTemplate(ctx context.Context, t *models.RecurringTemplate) error {
	if t.FrequencyDays < 1 {
		return apperr.E(apperr.Validation, "create template", fmt.Errorf("frequency_days must be >= 1, got %d", t.FrequencyDays))
	}
	if !t.Type.Valid() {
		return apperr.E(apperr.Validation, "create template", fmt.Errorf("unknown type %q", t.Type))
	}
	if t.Status == "" {
		t.Status = models.TemplateActive
	}
	if t.UserLanguage == "" {
		t.UserLanguage = "en"
	}
	t.ID = newID()
	t.StartDate = dateOnly(t.StartDate)
	t.CreatedAt = r.now()
	t.UpdatedAt = t.CreatedAt

	var last sql.NullTime
	if t.LastGeneratedDate != nil {
		last = sql.NullTime{Time: dateOnly(*t.LastGeneratedDate), Valid: true}
	}
	query := `
		INSERT INTO recurring_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.HubID, nullString(t.CategoryID), t.Description, t.Amount, string(t.Type), t.FrequencyDays,
		t.StartDate, last, string(t.Status), t.ConsecutiveFailures, t.UserLanguage,
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return storeErr("create template", err)
	}
	return nil
}

// FindTemplate retrieves a recurring template by id
func (r *Repository) FindTemplate(ctx context.Context, id string) (*models.RecurringTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM recurring_templates WHERE id = $1`, id)
	t, err := scanTemplate(row)
	if err != nil {
		return nil, storeErr("find template", err)
	}
	return t, nil
}

// ActiveRecurringTemplates returns every template with status active, across all hubs
func (r *Repository) ActiveRecurringTemplates(ctx context.Context) ([]models.RecurringTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM recurring_templates WHERE status = $1`, string(models.TemplateActive))
	if err != nil {
		return nil, storeErr("list active templates", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []models.RecurringTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, storeErr("list active templates", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list active templates", err)
	}
	return templates, nil
}

// GenerateFromTemplate records one occurrence of template t dated due. In a
// single database transaction it inserts the transaction, moves the
// template's last_generated_date to due, resets its failure counter and adds
// expenses to the matching budget instance. The transaction insert is keyed
// on (template, due): when that occurrence already exists nothing is
// inserted and created is false.
func (r *Repository) GenerateFromTemplate(ctx context.Context, t models.RecurringTemplate, due time.Time) (created bool, err error) {
	due = dateOnly(due)
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, storeErr("begin generation", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, hub_id, category_id, recurring_template_id, amount, type, description, occurred_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (recurring_template_id, occurred_on) DO NOTHING`,
		newID(), t.HubID, nullString(t.CategoryID), t.ID, t.Amount, string(t.Type), t.Description, due, now)
	if err != nil {
		return false, storeErr("insert transaction", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("insert transaction", err)
	}
	created = inserted > 0

	if _, err = tx.ExecContext(ctx, `
		UPDATE recurring_templates
		SET last_generated_date = $1, consecutive_failures = 0, updated_at = $2
		WHERE id = $3`, due, now, t.ID); err != nil {
		return false, storeErr("update template", err)
	}

	if created && t.Type == models.TransactionExpense && t.CategoryID != "" {
		if _, err = tx.ExecContext(ctx, `
			UPDATE budget_instances
			SET spent_amount = spent_amount + $1
			WHERE hub_id = $2 AND category_id = $3 AND month = $4 AND year = $5`,
			t.Amount, t.HubID, t.CategoryID, int(due.Month()), due.Year()); err != nil {
			return false, storeErr("update budget spent", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, storeErr("commit generation", err)
	}
	return created, nil
}

// RecordTemplateFailure increments the template's consecutive failure count
// and moves it to the failed status once the count reaches maxFailures. It
// returns the new count and status.
func (r *Repository) RecordTemplateFailure(ctx context.Context, id string, maxFailures int) (int, models.TemplateStatus, error) {
	var (
		failures int
		status   string
	)
	err := r.db.QueryRowContext(ctx, `
		UPDATE recurring_templates
		SET consecutive_failures = consecutive_failures + 1,
			status = CASE WHEN consecutive_failures + 1 >= $2 THEN 'failed' ELSE status END,
			updated_at = $3
		WHERE id = $1
		RETURNING consecutive_failures, status`, id, maxFailures, r.now()).
		Scan(&failures, &status)
	if err != nil {
		return 0, "", storeErr("record template failure", err)
	}
	return failures, models.TemplateStatus(status), nil
}

// ListTransactions returns the transactions of a hub, oldest first
func (r *Repository) ListTransactions(ctx context.Context, hubID string) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hub_id, category_id, recurring_template_id, amount, type, description, occurred_on, created_at
		FROM transactions
		WHERE hub_id = $1
		ORDER BY occurred_on, created_at`, hubID)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []models.Transaction
	for rows.Next() {
		var (
			t                  models.Transaction
			category, template sql.NullString
			typ                string
		)
		if err := rows.Scan(&t.ID, &t.HubID, &category, &template, &t.Amount, &typ, &t.Description, &t.OccurredOn, &t.CreatedAt); err != nil {
			return nil, storeErr("list transactions", err)
		}
		t.CategoryID = category.String
		t.RecurringTemplateID = template.String
		t.Type = models.TransactionType(typ)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list transactions", err)
	}
	return txns, nil
}

func scanTemplate(row rowScanner) (*models.RecurringTemplate, error) {
	var (
		t           models.RecurringTemplate
		category    sql.NullString
		last        sql.NullTime
		typ, status string
	)
	err := row.Scan(&t.ID, &t.HubID, &category, &t.Description, &t.Amount, &typ, &t.FrequencyDays,
		&t.StartDate, &last, &status, &t.ConsecutiveFailures, &t.UserLanguage,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.CategoryID = category.String
	t.Type = models.TransactionType(typ)
	t.Status = models.TemplateStatus(status)
	t.StartDate = dateOnly(t.StartDate)
	if last.Valid {
		d := dateOnly(last.Time)
		t.LastGeneratedDate = &d
	}
	return &t, nil
}
