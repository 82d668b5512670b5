package models

import "time"

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusDeleted   ArticleStatus = "deleted"
)

// ValidTransition reports whether moving from s to next follows the
// one-directional machine draft -> published -> deleted. Deleted is terminal.
func (s ArticleStatus) ValidTransition(next ArticleStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusPublished || next == StatusDeleted
	case StatusPublished:
		return next == StatusDeleted
	default:
		return false
	}
}

type Article struct {
	ID         string
	UserID     string
	Title      string
	Body       string
	Status     ArticleStatus
	CategoryID string // empty when uncategorized
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
