// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a patient identity. Created on first login, never mutated by the
// core, never deleted.
type User struct {
	ID          string
	ExternalID  string
	DisplayName string
	CreatedAt   time.Time
}
