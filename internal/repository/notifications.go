package repository

import (
	"context"

	"github.com/Dan9191/budget-hub/internal/models"
)

// CreateNotification stores an unread in-app notification
func (r *Repository) CreateNotification(ctx context.Context, n *models.Notification) error {
	n.ID = newID()
	n.CreatedAt = r.now()
	n.Read = false
	query := `
		INSERT INTO notifications (id, hub_id, kind, title, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query, n.ID, n.HubID, n.Kind, n.Title, n.Body, n.Read, n.CreatedAt); err != nil {
		return storeErr("create notification", err)
	}
	return nil
}

// ListNotifications returns the notifications of a hub, newest first
func (r *Repository) ListNotifications(ctx context.Context, hubID string) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hub_id, kind, title, body, is_read, created_at
		FROM notifications
		WHERE hub_id = $1
		ORDER BY created_at DESC`, hubID)
	if err != nil {
		return nil, storeErr("list notifications", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.HubID, &n.Kind, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, storeErr("list notifications", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list notifications", err)
	}
	return out, nil
}
