// Package triage holds the pure scoring rules of the wound-monitoring core:
// keyword-based symptom urgency and probability thresholding. It has no
// collaborators so it can be tested in isolation.
package triage

import (
	"strings"

	"github.com/aegislabs/aegis-backend/internal/common"
)

// StatusInfected and StatusHealthy are the human-readable status strings
// returned with every wound assessment.
const (
	StatusInfected = "Warning: Potential Infection Detected"
	StatusHealthy  = "Healthy"

	LabelInfected = "infected"
	LabelHealthy  = "healthy"
)

// DefaultUrgency is the floor returned when no keyword matches. It reflects
// uncertainty, not confirmed health, so it is deliberately above zero.
const DefaultUrgency = 0.2

// keywordWeights maps symptom trigger words to urgency weights. Matching is
// case-insensitive substring matching on the whole text.
var keywordWeights = map[string]float64{
	"pus":       0.9,
	"fever":     0.8,
	"throbbing": 0.7,
	"dizzy":     0.6,
	"redness":   0.5,
	"pain":      0.5,
}

// ScoreSymptomText derives an urgency in [0, 1] from free text. When several
// keywords match, the maximum weight wins: a single severe symptom dominates,
// weights are never summed or averaged.
func ScoreSymptomText(text string) float64 {
	lowered := strings.ToLower(text)

	urgency := DefaultUrgency
	for keyword, weight := range keywordWeights {
		if strings.Contains(lowered, keyword) && weight > urgency {
			urgency = weight
		}
	}
	return common.Clamp01(urgency)
}

// LabelFromProb thresholds an infection probability into a label and a
// status string. A probability at or above threshold counts as infected.
func LabelFromProb(p float64, threshold float64) (status string, label string) {
	if p >= threshold {
		return StatusInfected, LabelInfected
	}
	return StatusHealthy, LabelHealthy
}
