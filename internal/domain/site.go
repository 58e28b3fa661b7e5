package domain

import "time"

// Site is the singleton site settings document. Created on first boot with
// generated defaults; editable by the authenticated author.
type Site struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
