package models

import "time"

// Comment belongs to an article. UserID is empty for guest comments,
// in which case GuestName carries the display name instead.
type Comment struct {
	ID        string
	ArticleID string
	UserID    string
	GuestName string
	Body      string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
