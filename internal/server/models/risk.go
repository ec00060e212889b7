package models

import "time"

// RiskScore is one computed risk aggregation result. Every risk query appends
// a new row - risk computation is an audit-logged event, not idempotent
// storage of "current risk".
type RiskScore struct {
	ID     string
	UserID string
	// Score is the blended 0-100 risk value.
	Score int
	// Reason is a human-readable justification embedding the blend inputs.
	Reason    string
	CreatedAt time.Time
}
