package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/aegislabs/aegis-backend/internal/server/config"
	"github.com/aegislabs/aegis-backend/internal/server/models"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/repomanager"
)

// DefaultRiskScore and DefaultRiskReason are returned when the lookback
// window holds no data at all. The floor is deliberately above zero: absence
// of data means uncertainty, not confirmed health.
const (
	DefaultRiskScore  = 5
	DefaultRiskReason = "No recent data; default low risk."
)

// now is a seam for tests that pin the window boundary.
var now = time.Now

// RiskService is the risk aggregator: it blends the worst recent infection
// probability and the worst recent symptom urgency into a single bounded
// score, and appends the result as a new historical record on every query.
type RiskService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	windowDays    int
	weightProb    float64
	weightUrgency float64
}

// NewRiskService constructs a RiskService using repositories and server config.
func NewRiskService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *RiskService {
	return &RiskService{
		db:            db,
		repomanager:   m,
		windowDays:    cfg.RiskWindowDays,
		weightProb:    cfg.BlendWeightProb,
		weightUrgency: cfg.BlendWeightUrgency,
	}
}

// ComputeRisk aggregates the patient's recent signals into a 0-100 score
// with a human-readable reason, and persists the result as a new RiskScore
// row. The computation is idempotent for unchanged data; the persistence is
// not: every call appends an audit record.
//
// An absent user is a not-found failure: unlike the event-recorder paths,
// the entity is expected to pre-exist here.
func (s *RiskService) ComputeRisk(ctx context.Context, externalID string) (*models.RiskScore, error) {
	user, err := s.repomanager.Users(s.db).GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	since := now().Add(-time.Duration(s.windowDays) * 24 * time.Hour)

	obs, err := s.repomanager.Observations(s.db).SelectSince(ctx, user.ID, since)
	if err != nil {
		return nil, err
	}
	syms, err := s.repomanager.Symptoms(s.db).SelectSince(ctx, user.ID, since)
	if err != nil {
		return nil, err
	}

	score, reason := s.blend(obs, syms)

	record := &models.RiskScore{UserID: user.ID, Score: score, Reason: reason}
	if _, err := s.repomanager.Risks(s.db).Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// blend applies the aggregation rule set: maximum (not average) over each
// stream so the single worst recent signal drives the score, then a fixed
// weighted blend onto the 0-100 scale.
func (s *RiskService) blend(obs []*models.Observation, syms []*models.SymptomLog) (int, string) {
	if len(obs) == 0 && len(syms) == 0 {
		return DefaultRiskScore, DefaultRiskReason
	}

	var p float64 // worst recent infection prob
	for _, o := range obs {
		if v := common.Clamp01(o.ProbScore); v > p {
			p = v
		}
	}

	var u float64 // worst recent urgency
	for _, sym := range syms {
		if v := common.Clamp01(sym.Urgency); v > u {
			u = v
		}
	}

	score := int(math.Round(100 * (s.weightProb*p + s.weightUrgency*u)))
	reason := fmt.Sprintf("Blended risk from infection_prob=%.2f and symptom_urgency=%.2f.", p, u)
	return common.ClampScore(score), reason
}

// RiskHistory returns the newest persisted risk scores for a patient.
func (s *RiskService) RiskHistory(ctx context.Context, externalID string, limit int) ([]*models.RiskScore, error) {
	user, err := s.repomanager.Users(s.db).GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repomanager.Risks(s.db).SelectRecent(ctx, user.ID, limit)
}
