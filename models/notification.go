package models

import "time"

// Notification is one user-facing message produced by the expiry scanner
// (e.g. "card will expire soon"). Unread notifications are surfaced on the
// home screen until the user clears them.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
