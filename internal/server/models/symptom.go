package models

import "time"

// SymptomLog is a single free-text symptom submission with its derived
// urgency. Append-only, like Observation.
type SymptomLog struct {
	ID       string
	UserID   string
	FreeText string
	// Urgency is the keyword-derived severity, clamped to [0, 1].
	Urgency   float64
	CreatedAt time.Time
}
