package models

import "time"

// Hub is a tenant grouping the budgets, transactions and goals of one user
// or household
type Hub struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail string    `json:"owner_email"`
	CreatedAt  time.Time `json:"created_at"`
}
