package models

import "time"

// Notification is an in-app message shown to the members of a hub
type Notification struct {
	ID        string    `json:"id"`
	HubID     string    `json:"hub_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
