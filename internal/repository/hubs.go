package repository

import (
	"context"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/Dan9191/budget-hub/internal/models"
)

// CreateHub creates a new hub in the database
func (r *Repository) CreateHub(ctx context.Context, hub *models.Hub) error {
	if hub.Name == "" {
		return apperr.E(apperr.Validation, "create hub", nil)
	}
	hub.ID = newID()
	hub.CreatedAt = r.now()
	query := `
		INSERT INTO hubs (id, name, owner_email, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, hub.ID, hub.Name, hub.OwnerEmail, hub.CreatedAt); err != nil {
		return storeErr("create hub", err)
	}
	return nil
}

// FindHub retrieves a hub by id
func (r *Repository) FindHub(ctx context.Context, id string) (*models.Hub, error) {
	hub := &models.Hub{}
	query := `
		SELECT id, name, owner_email, created_at
		FROM hubs
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&hub.ID, &hub.Name, &hub.OwnerEmail, &hub.CreatedAt)
	if err != nil {
		return nil, storeErr("find hub", err)
	}
	return hub, nil
}

// ListHubs returns every hub
func (r *Repository) ListHubs(ctx context.Context) ([]models.Hub, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, owner_email, created_at FROM hubs ORDER BY created_at`)
	if err != nil {
		return nil, storeErr("list hubs", err)
	}
	defer func() { _ = rows.Close() }()

	var hubs []models.Hub
	for rows.Next() {
		var h models.Hub
		if err := rows.Scan(&h.ID, &h.Name, &h.OwnerEmail, &h.CreatedAt); err != nil {
			return nil, storeErr("list hubs", err)
		}
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list hubs", err)
	}
	return hubs, nil
}
