// Package models defines server-side data models persisted in the database.
package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is an identity record. TokenVersion is the subject's current session
// version: only tokens carrying exactly this version validate. TokenRevoked
// marks versions retired by an explicit revoke rather than a rotation.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	TokenVersion int64
	TokenRevoked bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
