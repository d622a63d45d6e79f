package repository

// schema is valid for both PostgreSQL and SQLite. Money columns are NUMERIC
// and ids are UUID strings generated by the application.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS hubs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		owner_email TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS budget_categories (
		id TEXT PRIMARY KEY,
		hub_id TEXT NOT NULL REFERENCES hubs(id),
		name TEXT NOT NULL,
		default_amount NUMERIC(12,2),
		carry_over BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS budget_instances (
		id TEXT PRIMARY KEY,
		hub_id TEXT NOT NULL REFERENCES hubs(id),
		category_id TEXT NOT NULL REFERENCES budget_categories(id),
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		year INTEGER NOT NULL,
		allocated_amount NUMERIC(12,2),
		carried_over_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		spent_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (hub_id, category_id, month, year)
	)`,
	`CREATE TABLE IF NOT EXISTS recurring_templates (
		id TEXT PRIMARY KEY,
		hub_id TEXT NOT NULL REFERENCES hubs(id),
		category_id TEXT REFERENCES budget_categories(id),
		description TEXT NOT NULL DEFAULT '',
		amount NUMERIC(12,2) NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
		frequency_days INTEGER NOT NULL CHECK (frequency_days >= 1),
		start_date DATE NOT NULL,
		last_generated_date DATE,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'paused', 'failed')),
		consecutive_failures INTEGER NOT NULL DEFAULT 0 CHECK (consecutive_failures >= 0),
		user_language TEXT NOT NULL DEFAULT 'en',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		hub_id TEXT NOT NULL REFERENCES hubs(id),
		category_id TEXT REFERENCES budget_categories(id),
		recurring_template_id TEXT REFERENCES recurring_templates(id),
		amount NUMERIC(12,2) NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
		description TEXT NOT NULL DEFAULT '',
		occurred_on DATE NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (recurring_template_id, occurred_on)
	)`,
	`CREATE TABLE IF NOT EXISTS saving_goals (
		id TEXT PRIMARY KEY,
		hub_id TEXT NOT NULL REFERENCES hubs(id),
		name TEXT NOT NULL,
		goal_amount NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (goal_amount >= 0),
		amount_saved NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (amount_saved >= 0),
		monthly_allocation NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (monthly_allocation >= 0),
		auto_allocation_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		hub_id TEXT NOT NULL REFERENCES hubs(id),
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`,
}
