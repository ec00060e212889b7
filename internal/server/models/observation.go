package models

import "time"

// Observation is a single wound-image assessment. Rows are append-only:
// created by the event recorder, never updated, retained indefinitely.
type Observation struct {
	ID string
	// UserID is the owner of the observation.
	UserID string
	// ImagePath is an opaque handle to the stored image (local path or
	// object-storage key).
	ImagePath string
	// ProbScore is the classifier's infection probability, clamped to [0, 1]
	// before persistence.
	ProbScore float64
	// Label is "healthy" or "infected", thresholded on ProbScore.
	Label string
	// CreatedAt is server-assigned at insertion and immutable.
	CreatedAt time.Time
}
